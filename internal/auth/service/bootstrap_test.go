package service_test

import (
	"context"
	"testing"

	"github.com/renewtech/inventory-auth/internal/auth/service"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	boot := &service.BootstrapService{Users: e.users, Token: "boot-secret"}

	t.Run("rejects wrong token", func(t *testing.T) {
		_, err := boot.Bootstrap(ctx, "wrong", "root", testPassword, "root@example.org")
		require.ErrorIs(t, err, service.ErrBootstrapUnauthorized)
	})

	t.Run("creates superuser on empty system", func(t *testing.T) {
		user, err := boot.Bootstrap(ctx, "boot-secret", "root", testPassword, "root@example.org")
		require.NoError(t, err)
		require.True(t, user.Superuser)
		require.Empty(t, user.Capabilities)

		done, err := boot.IsBootstrapped(ctx)
		require.NoError(t, err)
		require.True(t, done)
	})

	t.Run("refuses to run twice", func(t *testing.T) {
		_, err := boot.Bootstrap(ctx, "boot-secret", "root2", testPassword, "root2@example.org")
		require.ErrorIs(t, err, service.ErrAlreadyBootstrapped)
	})

	t.Run("superuser bypasses capability gates after login", func(t *testing.T) {
		user, _, err := e.tokens.Login(ctx, "root", testPassword, "")
		require.NoError(t, err)
		require.True(t, user.Superuser)
	})
}

func TestBootstrapRefusesWithoutConfiguredToken(t *testing.T) {
	e := newEnv(t)
	boot := &service.BootstrapService{Users: e.users, Token: ""}

	_, err := boot.Bootstrap(context.Background(), "", "root", testPassword, "root@example.org")
	require.ErrorIs(t, err, service.ErrBootstrapUnauthorized)
}
