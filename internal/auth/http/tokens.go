package http

import (
	"net/http"

	"github.com/renewtech/inventory-auth/internal/auth/service"
	"github.com/renewtech/inventory-auth/pkg/authsdk"
	"github.com/renewtech/inventory-auth/pkg/httpx"
)

type TokensHandler struct {
	TokenService *service.TokenService
	UserService  *service.UserService
}

// HandleList returns the administrative view of issued tokens.
//
//	@Summary	List issued tokens
//	@Tags		Tokens
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	authsdk.TokenListResponse
//	@Failure	403	{object}	authsdk.ErrorResponse	"Access denied"
//	@Router		/v1/tokens [get].
func (h *TokensHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.TokenService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// Usernames resolved once per distinct user, not per token.
	usernames := make(map[string]string)
	resp := authsdk.TokenListResponse{Tokens: make([]authsdk.TokenRecord, len(records))}
	for i, rec := range records {
		username, ok := usernames[rec.UserID]
		if !ok {
			if user, err := h.UserService.Get(r.Context(), rec.UserID); err == nil {
				username = user.Username
			}
			usernames[rec.UserID] = username
		}
		resp.Tokens[i] = authsdk.TokenRecord{
			ID:          rec.ID,
			UserID:      rec.UserID,
			Username:    username,
			IssuedAt:    rec.IssuedAt,
			ExpiresAt:   rec.ExpiresAt,
			Blacklisted: rec.Blacklisted,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleBlacklist revokes a token by record ID.
//
//	@Summary	Blacklist a token
//	@Tags		Tokens
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Token record ID"
//	@Success	204	"Token blacklisted"
//	@Failure	404	{object}	authsdk.ErrorResponse	"Unknown token"
//	@Router		/v1/tokens/{id}/blacklist [post].
func (h *TokensHandler) HandleBlacklist(w http.ResponseWriter, r *http.Request) {
	if err := h.TokenService.Blacklist(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
