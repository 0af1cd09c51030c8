package jwtx_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/renewtech/inventory-auth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func testSecret() []byte {
	return bytes.Repeat([]byte{0xAB}, jwtx.MinSecretLength)
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	kc, err := jwtx.NewHS256Keychain(testSecret(), "inventory-auth")
	require.NoError(t, err)

	now := time.Now().UTC()
	claims := jwtx.NewAccessClaims("user-123", "alice", "inventory-auth", time.Hour, now)

	token, err := kc.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := kc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-123", got.Subject)
	require.Equal(t, "alice", got.Username)
	require.NotEmpty(t, got.ID, "jti should be set")
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	kc, err := jwtx.NewHS256Keychain(testSecret(), "inventory-auth")
	require.NoError(t, err)

	other, err := jwtx.NewHS256Keychain(bytes.Repeat([]byte{0xCD}, jwtx.MinSecretLength), "inventory-auth")
	require.NoError(t, err)

	token, err := kc.Sign(jwtx.NewAccessClaims("u", "bob", "inventory-auth", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = other.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	t.Parallel()

	kc, err := jwtx.NewHS256Keychain(testSecret(), "inventory-auth")
	require.NoError(t, err)

	_, err = kc.Verify("not.a.jwt")
	require.ErrorIs(t, err, jwtx.ErrMalformed)

	_, err = kc.Verify("")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}

func TestVerifyReportsExpiry(t *testing.T) {
	t.Parallel()

	kc, err := jwtx.NewHS256Keychain(testSecret(), "inventory-auth")
	require.NoError(t, err)

	// Issued two hours ago with a one-hour TTL.
	stale := jwtx.NewAccessClaims("u", "bob", "inventory-auth", time.Hour,
		time.Now().UTC().Add(-2*time.Hour))
	token, err := kc.Sign(stale)
	require.NoError(t, err)

	_, err = kc.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	t.Parallel()

	signer, err := jwtx.NewHS256Keychain(testSecret(), "someone-else")
	require.NoError(t, err)
	verifier, err := jwtx.NewHS256Keychain(testSecret(), "inventory-auth")
	require.NoError(t, err)

	token, err := signer.Sign(jwtx.NewAccessClaims("u", "bob", "someone-else", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestNewKeychainRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewHS256Keychain([]byte("short"), "inventory-auth")
	require.Error(t, err)
}
