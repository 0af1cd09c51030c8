package http

import (
	"context"

	"github.com/renewtech/inventory-auth/internal/auth/domain"
	"github.com/renewtech/inventory-auth/internal/auth/service"
	"github.com/renewtech/inventory-auth/pkg/httpx"
)

// identityValidator adapts TokenService.Validate to the middleware's
// TokenValidator interface, flattening the user into a request identity.
type identityValidator struct {
	tokens *service.TokenService
}

func (v identityValidator) Validate(ctx context.Context, raw string) (httpx.Identity, error) {
	user, _, err := v.tokens.Validate(ctx, raw)
	if err != nil {
		return httpx.Identity{}, err
	}
	return httpx.Identity{
		UserID:       user.ID,
		Username:     user.Username,
		Capabilities: domain.CapabilityNames(user.Capabilities),
		Superuser:    user.Superuser,
	}, nil
}
