package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/renewtech/inventory-auth/internal/auth/domain"
	"github.com/renewtech/inventory-auth/internal/auth/store"
	"github.com/renewtech/inventory-auth/pkg/cryptox"
	"github.com/renewtech/inventory-auth/pkg/idx"
	"github.com/renewtech/inventory-auth/pkg/slogx"
)

// UserService owns account lifecycle: registration, profile updates, and
// removal. Capability mutation lives in PermissionService.
type UserService struct {
	Store store.Store
}

// RegisterParams are the inputs for creating an account. Capabilities may
// be empty; a fresh account then holds no permissions until granted some.
type RegisterParams struct {
	Username     string
	Password     string
	Email        string
	FirstName    string
	LastName     string
	Role         string
	Capabilities []string
	Superuser    bool
}

// Register validates and creates a new user. Validation failures are
// reported whole as a *authsdk.ValidationError naming every bad field.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	l := slogx.FromContext(ctx)

	fe := fieldErrors{}
	validateUsername(fe, p.Username)
	validatePassword(fe, p.Password)
	validateEmail(fe, p.Email)
	validateName(fe, "first_name", p.FirstName)
	validateName(fe, "last_name", p.LastName)
	validateRole(fe, p.Role)

	caps, capErr := domain.ParseCapabilities(p.Capabilities)
	if capErr != nil {
		fe.add("capabilities", capErr.Error())
	}
	if err := fe.err(); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     p.Username,
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Role:         p.Role,
		PasswordHash: hash,
		Superuser:    p.Superuser,
		Capabilities: caps,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, fe.withConflict()
		}
		return domain.User{}, err
	}

	l.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// withConflict reports a duplicate username or email. The store's UNIQUE
// violation does not say which column collided, so both are named.
func (fe fieldErrors) withConflict() error {
	fe.add("username", "username or email already in use")
	return fe.err()
}

// UpdateParams are the mutable profile fields. Empty strings leave the
// current value in place; a non-empty Password is re-validated and rehashed.
type UpdateParams struct {
	Email     string
	FirstName string
	LastName  string
	Role      string
	Password  string
}

// Update applies a partial profile update to the user.
func (s *UserService) Update(ctx context.Context, userID string, p UpdateParams) (domain.User, error) {
	current, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	fe := fieldErrors{}
	if p.Email == "" {
		p.Email = current.Email
	} else {
		validateEmail(fe, p.Email)
	}
	if p.FirstName == "" {
		p.FirstName = current.FirstName
	} else {
		validateName(fe, "first_name", p.FirstName)
	}
	if p.LastName == "" {
		p.LastName = current.LastName
	} else {
		validateName(fe, "last_name", p.LastName)
	}
	if p.Role == "" {
		p.Role = current.Role
	} else {
		validateRole(fe, p.Role)
	}
	if p.Password != "" {
		validatePassword(fe, p.Password)
	}
	if err := fe.err(); err != nil {
		return domain.User{}, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdateProfile(ctx, userID, p.Email, p.FirstName, p.LastName, p.Role); err != nil {
			return err
		}
		if p.Password != "" {
			hash, err := cryptox.HashPassword(p.Password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			if err := tx.Users().UpdatePasswordHash(ctx, userID, hash); err != nil {
				return err
			}
			// A password change invalidates every outstanding session.
			if err := tx.Tokens().BlacklistUserTokens(ctx, userID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			fe.add("email", "email already in use")
			return domain.User{}, fe.err()
		}
		return domain.User{}, err
	}

	return s.Store.Users().GetUserByID(ctx, userID)
}

// Delete removes the user and, via schema cascade, every token issued to
// them.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	err := s.Store.Users().DeleteUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByUsername returns a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// List returns every user, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}
