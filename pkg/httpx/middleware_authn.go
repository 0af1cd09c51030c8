package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/renewtech/inventory-auth/pkg/slogx"
)

// TokenValidator resolves a raw bearer token to an authenticated identity.
// Implementations return an error describing the failure (invalid signature,
// expired, blacklisted, unknown user); the middleware surfaces that message
// inside the uniform access-denied response.
type TokenValidator interface {
	Validate(ctx context.Context, raw string) (Identity, error)
}

// AuthnMiddleware authenticates the request via the Authorization header and
// stores the resulting Identity (and the raw token) in the request context.
// Requests without a valid bearer token never reach the wrapped handler.
func AuthnMiddleware(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				WriteAccessDenied(w, "authentication credentials were not provided")
				return
			}

			identity, err := validator.Validate(r.Context(), raw)
			if err != nil {
				slogx.FromContext(r.Context()).Warn("authentication rejected",
					"error", err,
				)
				WriteAccessDenied(w, err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), CtxKeyIdentity, identity)
			ctx = context.WithValue(ctx, CtxKeyToken, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "

	header := r.Header.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", false
	}
	return token, true
}
