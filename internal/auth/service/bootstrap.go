package service

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/renewtech/inventory-auth/internal/auth/domain"
	"github.com/renewtech/inventory-auth/pkg/slogx"
)

// BootstrapService creates the initial superuser on an empty deployment.
// It refuses to run twice and requires the token configured at startup.
type BootstrapService struct {
	Users *UserService
	Token string // Pre-configured bootstrap token
}

// IsBootstrapped reports whether any users exist.
func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Users.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the first superuser. The account passes the same
// validation as any registration; it just skips the capability list, since
// superusers bypass capability checks anyway.
func (s *BootstrapService) Bootstrap(ctx context.Context, token, username, password, email string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if bootstrapped, err := s.IsBootstrapped(ctx); err != nil {
		return domain.User{}, err
	} else if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.User{}, ErrAlreadyBootstrapped
	}

	if s.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		l.Warn("unauthorized bootstrap attempt")
		return domain.User{}, ErrBootstrapUnauthorized
	}

	user, err := s.Users.Register(ctx, RegisterParams{
		Username:  username,
		Password:  password,
		Email:     email,
		FirstName: "System",
		LastName:  "Admin",
		Role:      "Administrator",
		Superuser: true,
	})
	if err != nil {
		return domain.User{}, err
	}

	l.Info("system bootstrapped", slog.String("user_id", user.ID))
	return user, nil
}
