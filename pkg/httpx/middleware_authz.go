package httpx

import (
	"net/http"
	"strings"
)

// Policy selects how a capability requirement is evaluated when more than
// one capability is listed.
type Policy string

const (
	// PolicyAll requires every listed capability.
	PolicyAll Policy = "all"
	// PolicyAny requires at least one listed capability.
	PolicyAny Policy = "any"
)

// ParsePolicy returns the Policy named by s, defaulting to PolicyAll for
// anything unrecognised.
func ParsePolicy(s string) Policy {
	if strings.EqualFold(s, string(PolicyAny)) {
		return PolicyAny
	}
	return PolicyAll
}

// RequireCapabilities enforces the given capability requirement on every
// request. Superusers bypass the capability check entirely; everyone else
// is evaluated against their explicit capability set. Must run after
// AuthnMiddleware.
func RequireCapabilities(policy Policy, capabilities ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				WriteAccessDenied(w, "authentication credentials were not provided")
				return
			}

			if identity.Superuser || satisfies(identity, policy, capabilities) {
				next.ServeHTTP(w, r)
				return
			}

			WriteAccessDenied(w, "you do not have permission to perform this action")
		})
	}
}

// RequireAllCapabilities requires every listed capability.
func RequireAllCapabilities(capabilities ...string) Middleware {
	return RequireCapabilities(PolicyAll, capabilities...)
}

// RequireAnyCapabilities requires at least one of the listed capabilities.
func RequireAnyCapabilities(capabilities ...string) Middleware {
	return RequireCapabilities(PolicyAny, capabilities...)
}

// RequireSuperuser restricts the route to superusers.
func RequireSuperuser() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				WriteAccessDenied(w, "authentication credentials were not provided")
				return
			}
			if !identity.Superuser {
				WriteAccessDenied(w, "you do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireVerbCapabilities maps HTTP methods to capability requirements so a
// single route can gate reads and writes differently. Methods without an
// entry are denied outright.
func RequireVerbCapabilities(policy Policy, byMethod map[string][]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			capabilities, ok := byMethod[r.Method]
			if !ok {
				WriteAccessDenied(w, "you do not have permission to perform this action")
				return
			}
			RequireCapabilities(policy, capabilities...)(next).ServeHTTP(w, r)
		})
	}
}

func satisfies(identity Identity, policy Policy, capabilities []string) bool {
	if len(capabilities) == 0 {
		return true
	}

	switch policy {
	case PolicyAny:
		for _, c := range capabilities {
			if identity.HasCapability(c) {
				return true
			}
		}
		return false
	default:
		for _, c := range capabilities {
			if !identity.HasCapability(c) {
				return false
			}
		}
		return true
	}
}
