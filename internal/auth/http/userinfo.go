package http

import (
	"net/http"

	"github.com/renewtech/inventory-auth/internal/auth/service"
	"github.com/renewtech/inventory-auth/pkg/authsdk"
	"github.com/renewtech/inventory-auth/pkg/httpx"
)

type UserInfoHandler struct {
	UserService *service.UserService
}

// ServeHTTP returns the identity behind the calling token.
//
//	@Summary	Who am I
//	@Tags		Auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	authsdk.UserInfoResponse
//	@Failure	403	{object}	authsdk.ErrorResponse	"Missing or invalid token"
//	@Router		/v1/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	identity, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		authsdk.ErrAccessDenied.WriteError(w)
		return
	}

	user, err := h.UserService.Get(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserInfoResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
		Superuser:    user.Superuser,
		Capabilities: identity.Capabilities,
	})
}
