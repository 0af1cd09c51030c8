package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/renewtech/inventory-auth/internal/auth/domain"
	"github.com/renewtech/inventory-auth/internal/auth/service"
	"github.com/renewtech/inventory-auth/pkg/authsdk"
	"github.com/renewtech/inventory-auth/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
}

func toUserResponse(u domain.User) authsdk.UserResponse {
	return authsdk.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		Superuser:    u.Superuser,
		Capabilities: domain.CapabilityNames(u.Capabilities),
		MFAEnabled:   u.MFAEnabled != nil,
		CreatedAt:    u.CreatedAt,
	}
}

// HandleRegister creates a new user account.
//
//	@Summary		Register a user
//	@Description	Creates an account with the given profile, password, and optional starting capability set. Every field is validated and failures are reported together.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		authsdk.RegisterRequest	true	"New account"
//	@Success		201		{object}	authsdk.UserResponse
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		403		{object}	authsdk.ErrorResponse			"Access denied"
//	@Router			/v1/users/register [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w)
		return
	}

	user, err := h.UserService.Register(r.Context(), service.RegisterParams{
		Username:     strings.TrimSpace(req.Username),
		Password:     req.Password,
		Email:        strings.TrimSpace(req.Email),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         strings.TrimSpace(req.Role),
		Capabilities: req.Capabilities,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleList returns every user account.
//
//	@Summary	List users
//	@Tags		Users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	authsdk.UserListResponse
//	@Failure	403	{object}	authsdk.ErrorResponse	"Access denied"
//	@Router		/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := authsdk.UserListResponse{Users: make([]authsdk.UserResponse, len(users))}
	for i, u := range users {
		resp.Users[i] = toUserResponse(u)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet returns a single user.
//
//	@Summary	Get a user
//	@Tags		Users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	authsdk.UserResponse
//	@Failure	404	{object}	authsdk.ErrorResponse	"Unknown user"
//	@Router		/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleUpdate applies a partial profile update.
//
//	@Summary		Update a user
//	@Description	Empty fields keep their current value. Setting a new password revokes every outstanding session for the account.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string						true	"User ID"
//	@Param			request	body		authsdk.UserUpdateRequest	true	"Fields to change"
//	@Success		200		{object}	authsdk.UserResponse
//	@Failure		400		{object}	authsdk.ValidationErrorResponse	"Validation failed"
//	@Failure		404		{object}	authsdk.ErrorResponse			"Unknown user"
//	@Router			/v1/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w)
		return
	}

	user, err := h.UserService.Update(r.Context(), r.PathValue("id"), service.UpdateParams{
		Email:     strings.TrimSpace(req.Email),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      strings.TrimSpace(req.Role),
		Password:  req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleDelete removes an account and its tokens.
//
//	@Summary	Delete a user
//	@Tags		Users
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path	string	true	"User ID"
//	@Success	204	"User deleted"
//	@Failure	404	{object}	authsdk.ErrorResponse	"Unknown user"
//	@Router		/v1/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
