package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/renewtech/inventory-auth/internal/auth/domain"
	"github.com/renewtech/inventory-auth/internal/auth/store"
	"github.com/renewtech/inventory-auth/internal/auth/store/drivers/sqlite"
	"github.com/renewtech/inventory-auth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestUser(username string) domain.User {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.org",
		FirstName:    "Test",
		LastName:     "User",
		Role:         "Technician",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Capabilities: []domain.Capability{domain.CapReadDevices},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newTestToken(userID string) domain.AccessToken {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.AccessToken{
		ID:        idx.New().String(),
		UserID:    userID,
		TokenHash: "hash-" + idx.New().String(),
		IssuedAt:  now,
		ExpiresAt: now.Add(14 * 24 * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestUsersRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("create and fetch round trip", func(t *testing.T) {
		u := newTestUser("alice")
		require.NoError(t, s.Users().CreateUser(ctx, u))

		got, err := s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, u.Email, got.Email)
		require.Equal(t, []domain.Capability{domain.CapReadDevices}, got.Capabilities)
		require.False(t, got.Superuser)
		require.Nil(t, got.MFAEnabled)

		byID, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, got.Username, byID.Username)
	})

	t.Run("duplicate username maps to ErrAlreadyExists", func(t *testing.T) {
		dup := newTestUser("alice")
		dup.Email = "other@example.org"
		require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("duplicate email maps to ErrAlreadyExists", func(t *testing.T) {
		dup := newTestUser("alice2")
		dup.Email = "alice@example.org"
		require.ErrorIs(t, s.Users().CreateUser(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("missing user maps to ErrNotFound", func(t *testing.T) {
		_, err := s.Users().GetUserByUsername(ctx, "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)

		err = s.Users().DeleteUser(ctx, "missing-id")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("update capabilities persists sorted set", func(t *testing.T) {
		u, err := s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)

		caps := []domain.Capability{domain.CapScanDevices, domain.CapCreateDevices}
		require.NoError(t, s.Users().UpdateCapabilities(ctx, u.ID, caps))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.ElementsMatch(t, caps, got.Capabilities)
	})

	t.Run("mfa lifecycle", func(t *testing.T) {
		u, err := s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)

		require.NoError(t, s.Users().UpdateMFASecret(ctx, u.ID, "JBSWY3DPEHPK3PXP"))
		enabledAt := time.Now().UTC().Truncate(time.Second)
		require.NoError(t, s.Users().EnableMFA(ctx, u.ID, enabledAt))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got.MFAEnabled)
		require.NotNil(t, got.MFASecret)

		require.NoError(t, s.Users().DisableMFA(ctx, u.ID))
		got, err = s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Nil(t, got.MFAEnabled)
		require.Nil(t, got.MFASecret)
	})

	t.Run("is empty", func(t *testing.T) {
		empty, err := s.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.False(t, empty)
	})
}

func TestTokensRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := newTestUser("alice")
	require.NoError(t, s.Users().CreateUser(ctx, alice))

	t.Run("create and fetch by hash", func(t *testing.T) {
		tok := newTestToken(alice.ID)
		require.NoError(t, s.Tokens().CreateToken(ctx, tok))

		got, err := s.Tokens().GetTokenByHash(ctx, tok.TokenHash)
		require.NoError(t, err)
		require.Equal(t, tok.ID, got.ID)
		require.False(t, got.Blacklisted)
	})

	t.Run("blacklist is idempotent", func(t *testing.T) {
		tok := newTestToken(alice.ID)
		require.NoError(t, s.Tokens().CreateToken(ctx, tok))

		require.NoError(t, s.Tokens().BlacklistToken(ctx, tok.ID))
		require.NoError(t, s.Tokens().BlacklistToken(ctx, tok.ID))

		got, err := s.Tokens().GetTokenByID(ctx, tok.ID)
		require.NoError(t, err)
		require.True(t, got.Blacklisted)
	})

	t.Run("blacklist user tokens covers only live tokens", func(t *testing.T) {
		bob := newTestUser("bob")
		require.NoError(t, s.Users().CreateUser(ctx, bob))

		first := newTestToken(bob.ID)
		second := newTestToken(bob.ID)
		require.NoError(t, s.Tokens().CreateToken(ctx, first))
		require.NoError(t, s.Tokens().CreateToken(ctx, second))

		require.NoError(t, s.Tokens().BlacklistUserTokens(ctx, bob.ID))

		for _, id := range []string{first.ID, second.ID} {
			got, err := s.Tokens().GetTokenByID(ctx, id)
			require.NoError(t, err)
			require.True(t, got.Blacklisted)
		}
	})

	t.Run("delete expired tokens", func(t *testing.T) {
		stale := newTestToken(alice.ID)
		stale.ExpiresAt = time.Now().UTC().Add(-time.Hour)
		require.NoError(t, s.Tokens().CreateToken(ctx, stale))

		n, err := s.Tokens().DeleteExpiredTokens(ctx, time.Now().UTC())
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, int64(1))

		_, err = s.Tokens().GetTokenByID(ctx, stale.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("deleting a user cascades to tokens", func(t *testing.T) {
		carol := newTestUser("carol")
		require.NoError(t, s.Users().CreateUser(ctx, carol))

		tok := newTestToken(carol.ID)
		require.NoError(t, s.Tokens().CreateToken(ctx, tok))

		require.NoError(t, s.Users().DeleteUser(ctx, carol.ID))

		_, err := s.Tokens().GetTokenByID(ctx, tok.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser("alice")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return context.Canceled // force rollback
	})
	require.Error(t, err)

	_, err = s.Users().GetUserByUsername(ctx, "alice")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser("alice")
	tok := newTestToken(u.ID)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return tx.Tokens().CreateToken(ctx, tok)
	})
	require.NoError(t, err)

	_, err = s.Tokens().GetTokenByHash(ctx, tok.TokenHash)
	require.NoError(t, err)
}
