package http

import (
	"encoding/json"
	"net/http"

	"github.com/renewtech/inventory-auth/internal/auth/domain"
	"github.com/renewtech/inventory-auth/internal/auth/service"
	"github.com/renewtech/inventory-auth/pkg/authsdk"
	"github.com/renewtech/inventory-auth/pkg/httpx"
)

type PermissionsHandler struct {
	PermissionService *service.PermissionService
}

func toPermissionsResponse(u domain.User) authsdk.PermissionsResponse {
	return authsdk.PermissionsResponse{
		Username:     u.Username,
		Superuser:    u.Superuser,
		Capabilities: domain.CapabilityNames(u.Capabilities),
	}
}

// HandleGet returns a user's capability set.
//
//	@Summary	Get a user's permissions
//	@Tags		Permissions
//	@Produce	json
//	@Security	BearerAuth
//	@Param		username	path		string	true	"Username"
//	@Success	200			{object}	authsdk.PermissionsResponse
//	@Failure	404			{object}	authsdk.ErrorResponse	"Unknown user"
//	@Router		/v1/users/{username}/permissions [get].
func (h *PermissionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.PermissionService.Get(r.Context(), r.PathValue("username"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPermissionsResponse(user))
}

// HandleUpdate mutates a user's capability set.
//
//	@Summary		Update a user's permissions
//	@Description	Applies one of add, replace, remove, or clear. A single unknown capability name fails the whole request and leaves the stored set untouched.
//	@Tags			Permissions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			username	path		string								true	"Username"
//	@Param			request		body		authsdk.PermissionsUpdateRequest	true	"Operation and capability names"
//	@Success		200			{object}	authsdk.PermissionsResponse
//	@Failure		400			{object}	authsdk.ErrorResponse	"Unknown capability or operation"
//	@Failure		404			{object}	authsdk.ErrorResponse	"Unknown user"
//	@Router			/v1/users/{username}/permissions [put].
func (h *PermissionsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req authsdk.PermissionsUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w)
		return
	}

	user, err := h.PermissionService.Update(r.Context(), r.PathValue("username"), req.Op, req.Capabilities)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toPermissionsResponse(user))
}
