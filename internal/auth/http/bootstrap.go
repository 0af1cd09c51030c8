package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/renewtech/inventory-auth/internal/auth/service"
	"github.com/renewtech/inventory-auth/pkg/authsdk"
	"github.com/renewtech/inventory-auth/pkg/httpx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP creates the initial superuser on an empty deployment.
//
//	@Summary		Bootstrap the auth service
//	@Description	Creates the first superuser. Only works while no users exist and when the caller presents the bootstrap token configured at startup.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.BootstrapRequest	true	"Bootstrap token and superuser account"
//	@Success		201		{object}	authsdk.BootstrapResponse
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		403		{object}	authsdk.ErrorResponse			"Wrong token or already bootstrapped"
//	@Failure		404		{object}	authsdk.ErrorResponse			"Bootstrap not enabled"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.BootstrapService.Token == "" {
		authsdk.ErrNotFound.WithDescription("bootstrap endpoint is not enabled").WriteError(w)
		return
	}

	var req authsdk.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w)
		return
	}

	user, err := h.BootstrapService.Bootstrap(r.Context(),
		req.BootstrapToken,
		strings.TrimSpace(req.Username),
		req.Password,
		strings.TrimSpace(req.Email),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.BootstrapResponse{
		UserID:   user.ID,
		Username: user.Username,
	})
}
