package jwtx_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/renewtech/inventory-auth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestLoadOrGenerateSecretPersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "signing.key")

	first, err := jwtx.LoadOrGenerateSecret(path)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(first), jwtx.MinSecretLength)

	// A second load must return the same secret, not a fresh one. Token
	// verification across restarts depends on this.
	second, err := jwtx.LoadOrGenerateSecret(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadOrGenerateSecretRejectsCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "signing.key")
	require.NoError(t, os.WriteFile(path, []byte("!!not-base64!!"), 0600))

	_, err := jwtx.LoadOrGenerateSecret(path)
	require.Error(t, err)
}
