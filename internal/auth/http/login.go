package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/renewtech/inventory-auth/internal/auth/service"
	"github.com/renewtech/inventory-auth/pkg/authsdk"
	"github.com/renewtech/inventory-auth/pkg/httpx"
)

type LoginHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP handles credential login.
//
//	@Summary		Log in with username and password
//	@Description	Verifies credentials and issues a signed access token. Accounts with an activated authenticator must also supply the current one-time code.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse	"Username and token bundle"
//	@Failure		400		{object}	authsdk.ErrorResponse	"Malformed request body"
//	@Failure		401		{object}	authsdk.ErrorResponse	"Invalid credentials or one-time code"
//	@Failure		429		{object}	authsdk.ErrorResponse	"Too many attempts"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		authsdk.ErrInvalidRequest.WithDescription("username and password are required").WriteError(w)
		return
	}

	user, bundle, err := h.TokenService.Login(r.Context(), req.Username, req.Password, req.OTPCode)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		Username: user.Username,
		Tokens: authsdk.TokenBundle{
			AccessToken: bundle.AccessToken,
			ExpiresAt:   bundle.ExpiresAt,
		},
	})
}
