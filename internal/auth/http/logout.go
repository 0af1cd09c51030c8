package http

import (
	"net/http"

	"github.com/renewtech/inventory-auth/internal/auth/service"
	"github.com/renewtech/inventory-auth/pkg/authsdk"
	"github.com/renewtech/inventory-auth/pkg/httpx"
)

type LogoutHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP blacklists the calling token.
//
//	@Summary		Log out
//	@Description	Blacklists the presented access token. Repeating the call with the same token is harmless.
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		204	"Token blacklisted"
//	@Failure		403	{object}	authsdk.ErrorResponse	"Missing or invalid token"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := httpx.TokenFromContext(r.Context())
	if raw == "" {
		authsdk.ErrAccessDenied.WriteError(w)
		return
	}

	if err := h.TokenService.Logout(r.Context(), raw); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
