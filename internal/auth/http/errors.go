package http

import (
	"errors"
	"net/http"

	"github.com/renewtech/inventory-auth/internal/auth/domain"
	"github.com/renewtech/inventory-auth/internal/auth/service"
	"github.com/renewtech/inventory-auth/pkg/authsdk"
	"github.com/renewtech/inventory-auth/pkg/slogx"
)

// writeServiceError maps service-layer failures onto the wire error shapes.
// Unrecognised errors are logged and reported as a generic server error so
// internals never leak.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *authsdk.ValidationError
	if errors.As(err, &ve) {
		ve.WriteError(w)
		return
	}

	var unknownCap domain.ErrUnknownCapability
	if errors.As(err, &unknownCap) {
		authsdk.ErrInvalidRequest.WithDescription(unknownCap.Error()).WriteError(w)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrMFARequired):
		authsdk.ErrMFARequired.WriteError(w)
	case errors.Is(err, service.ErrInvalidOTP):
		authsdk.ErrInvalidCredentials.WithDescription(service.ErrInvalidOTP.Error()).WriteError(w)
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTokenNotFound):
		authsdk.ErrNotFound.WithDescription(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrUnknownPermissionOp):
		authsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrMFANotEnrolled),
		errors.Is(err, service.ErrMFAAlreadyEnabled):
		authsdk.ErrConflict.WithDescription(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrAlreadyBootstrapped),
		errors.Is(err, service.ErrBootstrapUnauthorized):
		authsdk.ErrAccessDenied.WithDescription(err.Error()).WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "error", err)
		authsdk.ErrServerError.WriteError(w)
	}
}

// decodeError reports a malformed JSON body.
func writeDecodeError(w http.ResponseWriter) {
	authsdk.ErrInvalidRequest.WithDescription("request body must be valid JSON").WriteError(w)
}
