package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/renewtech/inventory-auth/internal/auth/domain"
	"github.com/renewtech/inventory-auth/internal/auth/store"
	"github.com/renewtech/inventory-auth/pkg/slogx"
)

// Permission update operations.
const (
	PermissionOpAdd     = "add"
	PermissionOpReplace = "replace"
	PermissionOpRemove  = "remove"
	PermissionOpClear   = "clear"
)

// ErrUnknownPermissionOp is returned for an unrecognised op value.
var ErrUnknownPermissionOp = errors.New("unknown permission operation")

// PermissionService mutates and reads user capability sets. Every mutation
// is all-or-nothing: one unknown capability name fails the whole call and
// leaves the stored set untouched.
type PermissionService struct {
	Store store.Store
}

// Get returns the user's capability set.
func (s *PermissionService) Get(ctx context.Context, username string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// Update applies one of add, replace, remove, or clear to the user's
// capability set and returns the user with the new set.
func (s *PermissionService) Update(ctx context.Context, username, op string, names []string) (domain.User, error) {
	l := slogx.FromContext(ctx)

	// Validate the whole request before touching storage.
	var requested []domain.Capability
	if op != PermissionOpClear {
		var err error
		requested, err = domain.ParseCapabilities(names)
		if err != nil {
			return domain.User{}, err
		}
	}

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var next []domain.Capability
		switch op {
		case PermissionOpAdd:
			next = domain.AddCapabilities(user.Capabilities, requested)
		case PermissionOpReplace:
			next = requested
		case PermissionOpRemove:
			next = domain.RemoveCapabilities(user.Capabilities, requested)
		case PermissionOpClear:
			next = nil
		default:
			return fmt.Errorf("%w: %q", ErrUnknownPermissionOp, op)
		}

		if err := tx.Users().UpdateCapabilities(ctx, user.ID, next); err != nil {
			return err
		}

		user.Capabilities = next
		updated = user
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	l.Info("permissions updated",
		slog.String("username", username),
		slog.String("op", op),
		slog.Int("capability_count", len(updated.Capabilities)),
	)
	return updated, nil
}
