package http

import (
	"encoding/json"
	"net/http"

	"github.com/renewtech/inventory-auth/internal/auth/service"
	"github.com/renewtech/inventory-auth/pkg/authsdk"
	"github.com/renewtech/inventory-auth/pkg/httpx"
)

type MFAHandler struct {
	MFAService *service.MFAService
}

// HandleEnroll begins TOTP enrollment for the calling account.
//
//	@Summary		Enroll an authenticator
//	@Description	Generates a TOTP secret and provisioning URL. The second factor stays off until activated with a current code.
//	@Tags			MFA
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.MFAEnrollResponse
//	@Failure		409	{object}	authsdk.ErrorResponse	"Authenticator already enabled"
//	@Router			/v1/mfa/totp/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	identity, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		authsdk.ErrAccessDenied.WriteError(w)
		return
	}

	enrollment, err := h.MFAService.Enroll(r.Context(), identity.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MFAEnrollResponse{
		Secret:      enrollment.Secret,
		OTPAuthURL:  enrollment.OTPAuthURL,
		Issuer:      enrollment.Issuer,
		AccountName: enrollment.Account,
	})
}

// HandleActivate confirms enrollment with a current code.
//
//	@Summary	Activate the authenticator
//	@Tags		MFA
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body	authsdk.MFAActivateRequest	true	"Current one-time code"
//	@Success	204		"Second factor activated"
//	@Failure	401		{object}	authsdk.ErrorResponse	"Code did not verify"
//	@Failure	409		{object}	authsdk.ErrorResponse	"Not enrolled or already enabled"
//	@Router		/v1/mfa/totp/activate [post].
func (h *MFAHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	identity, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		authsdk.ErrAccessDenied.WriteError(w)
		return
	}

	var req authsdk.MFAActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDecodeError(w)
		return
	}

	if err := h.MFAService.Activate(r.Context(), identity.UserID, req.Code); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove disables the second factor for the calling account.
//
//	@Summary	Remove the authenticator
//	@Tags		MFA
//	@Produce	json
//	@Security	BearerAuth
//	@Success	204	"Second factor removed"
//	@Router		/v1/mfa/totp [delete].
func (h *MFAHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	identity, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		authsdk.ErrAccessDenied.WriteError(w)
		return
	}

	if err := h.MFAService.Remove(r.Context(), identity.UserID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
