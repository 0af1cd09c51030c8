package store

import (
	"context"
	"errors"
	"time"

	"github.com/renewtech/inventory-auth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and a WithTx helper so multi-step operations like login (revoke
// old tokens, record the new one) stay atomic.
type Store interface {
	Users() Users
	Tokens() Tokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// ListUsers returns all users ordered by creation date (newest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates email, first_name, last_name and role, and bumps
	// updated_at.
	UpdateProfile(ctx context.Context, userID, email, firstName, lastName, role string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateCapabilities replaces the stored capability set.
	UpdateCapabilities(ctx context.Context, userID string, caps []domain.Capability) error

	// DeleteUser cascades to tokens (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)

	// UpdateMFASecret sets the pending TOTP secret for a user.
	UpdateMFASecret(ctx context.Context, userID string, secret string) error

	// EnableMFA marks TOTP as activated (sets mfa_enabled timestamp).
	EnableMFA(ctx context.Context, userID string, at time.Time) error

	// DisableMFA clears mfa_enabled and mfa_secret.
	DisableMFA(ctx context.Context, userID string) error
}

type Tokens interface {
	// CreateToken stores a new access token record.
	CreateToken(ctx context.Context, t domain.AccessToken) error

	// GetTokenByHash returns the token by its fingerprint.
	GetTokenByHash(ctx context.Context, hash string) (domain.AccessToken, error)

	// GetTokenByID returns the token by its id.
	GetTokenByID(ctx context.Context, id string) (domain.AccessToken, error)

	// ListTokens returns all token records ordered by issue date (newest first).
	ListTokens(ctx context.Context) ([]domain.AccessToken, error)

	// BlacklistToken flips blacklisted=1, sets updated_at. Blacklisting an
	// already-blacklisted token is a no-op, not an error.
	BlacklistToken(ctx context.Context, id string) error

	// BlacklistUserTokens blacklists every live token for a user. Used to
	// enforce single-session login.
	BlacklistUserTokens(ctx context.Context, userID string) error

	// DeleteExpiredTokens removes rows whose expiry has passed. Housekeeping.
	DeleteExpiredTokens(ctx context.Context, before time.Time) (int64, error)
}
