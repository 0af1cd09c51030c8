package httpx

import "context"

// Identity is the resolved caller of an authenticated request, passed to
// downstream handlers through the request context by AuthnMiddleware.
type Identity struct {
	UserID       string
	Username     string
	Capabilities []string
	Superuser    bool
}

// HasCapability reports whether the identity holds the named capability
// explicitly. Superuser bypass is the gate's job, not this method's.
func (id Identity) HasCapability(name string) bool {
	for _, c := range id.Capabilities {
		if c == name {
			return true
		}
	}
	return false
}

type ctxKey string

const (
	CtxKeyIdentity ctxKey = "identity"
	CtxKeyToken    ctxKey = "token" // raw bearer token, used by logout
)

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(CtxKeyIdentity).(Identity)
	return id, ok
}

// TokenFromContext returns the raw bearer token the request carried.
func TokenFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyToken).(string); ok {
		return v
	}
	return ""
}
