package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/renewtech/inventory-auth/internal/auth/domain"
	"github.com/renewtech/inventory-auth/internal/auth/service"
	"github.com/renewtech/inventory-auth/pkg/jwtx"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func TestLoginAndValidate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	alice := e.register(t, "alice", "readDevices", "scanDevices")

	user, bundle, err := e.tokens.Login(ctx, "alice", testPassword, "")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.NotEmpty(t, bundle.AccessToken)
	require.WithinDuration(t, time.Now().Add(jwtx.DefaultAccessTokenTTL), bundle.ExpiresAt, time.Minute)

	got, record, err := e.tokens.Validate(ctx, bundle.AccessToken)
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.ID)
	require.Equal(t, alice.ID, record.UserID)
	require.ElementsMatch(t,
		[]domain.Capability{domain.CapReadDevices, domain.CapScanDevices},
		got.Capabilities)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.register(t, "alice")

	_, _, wrongPassword := e.tokens.Login(ctx, "alice", "Wrong!Passw0rd", "")
	_, _, unknownUser := e.tokens.Login(ctx, "mallory", testPassword, "")

	// Unknown usernames and wrong passwords are indistinguishable.
	require.ErrorIs(t, wrongPassword, service.ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, service.ErrInvalidCredentials)
}

func TestSingleSessionRevokesPriorToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.register(t, "bob", "readDevices")

	_, first, err := e.tokens.Login(ctx, "bob", testPassword, "")
	require.NoError(t, err)

	_, second, err := e.tokens.Login(ctx, "bob", testPassword, "")
	require.NoError(t, err)

	_, _, err = e.tokens.Validate(ctx, first.AccessToken)
	require.ErrorIs(t, err, service.ErrTokenBlacklisted)

	_, _, err = e.tokens.Validate(ctx, second.AccessToken)
	require.NoError(t, err)
}

func TestMultiSessionKeepsPriorToken(t *testing.T) {
	e := newEnv(t)
	e.tokens.SingleSession = false
	ctx := context.Background()

	e.register(t, "bob")

	_, first, err := e.tokens.Login(ctx, "bob", testPassword, "")
	require.NoError(t, err)
	_, second, err := e.tokens.Login(ctx, "bob", testPassword, "")
	require.NoError(t, err)

	_, _, err = e.tokens.Validate(ctx, first.AccessToken)
	require.NoError(t, err)
	_, _, err = e.tokens.Validate(ctx, second.AccessToken)
	require.NoError(t, err)
}

func TestLogout(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.register(t, "alice")
	_, bundle, err := e.tokens.Login(ctx, "alice", testPassword, "")
	require.NoError(t, err)

	require.NoError(t, e.tokens.Logout(ctx, bundle.AccessToken))

	_, _, err = e.tokens.Validate(ctx, bundle.AccessToken)
	require.ErrorIs(t, err, service.ErrTokenBlacklisted)

	// Logging out again is a no-op, not an error.
	require.NoError(t, e.tokens.Logout(ctx, bundle.AccessToken))

	// A token the service never issued cannot be logged out.
	require.ErrorIs(t, e.tokens.Logout(ctx, "never-issued"), service.ErrTokenNotFound)
}

func TestValidateFailureOrder(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	alice := e.register(t, "alice")

	t.Run("garbage is invalid", func(t *testing.T) {
		_, _, err := e.tokens.Validate(ctx, "not.a.jwt")
		require.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("tampered token is invalid", func(t *testing.T) {
		_, bundle, err := e.tokens.Login(ctx, "alice", testPassword, "")
		require.NoError(t, err)

		tampered := bundle.AccessToken[:len(bundle.AccessToken)-2] + "xx"
		_, _, err = e.tokens.Validate(ctx, tampered)
		require.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("well-signed but unrecorded token is not found", func(t *testing.T) {
		claims := jwtx.NewAccessClaims(alice.ID, "alice", "inventory-auth", time.Hour, time.Now().UTC())
		signed, err := e.keychain.Sign(claims)
		require.NoError(t, err)

		_, _, err = e.tokens.Validate(ctx, signed)
		require.ErrorIs(t, err, service.ErrTokenNotFound)
	})

	t.Run("expiry wins over blacklist", func(t *testing.T) {
		e.tokens.AccessTTL = -time.Hour
		_, bundle, err := e.tokens.Login(ctx, "alice", testPassword, "")
		require.NoError(t, err)
		e.tokens.AccessTTL = jwtx.DefaultAccessTokenTTL

		// The token is both expired and (after the next login) blacklisted;
		// expiry is reported because it is checked first.
		_, _, err = e.tokens.Validate(ctx, bundle.AccessToken)
		require.ErrorIs(t, err, service.ErrTokenExpired)

		_, _, err = e.tokens.Login(ctx, "alice", testPassword, "")
		require.NoError(t, err)

		_, _, err = e.tokens.Validate(ctx, bundle.AccessToken)
		require.ErrorIs(t, err, service.ErrTokenExpired)
	})
}

func TestBlacklistByID(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.register(t, "alice")
	_, bundle, err := e.tokens.Login(ctx, "alice", testPassword, "")
	require.NoError(t, err)

	records, err := e.tokens.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NoError(t, e.tokens.Blacklist(ctx, records[0].ID))
	_, _, err = e.tokens.Validate(ctx, bundle.AccessToken)
	require.ErrorIs(t, err, service.ErrTokenBlacklisted)

	require.ErrorIs(t, e.tokens.Blacklist(ctx, "missing-id"), service.ErrTokenNotFound)
}

func TestLoginWithTOTP(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	alice := e.register(t, "alice")

	enrollment, err := e.mfa.Enroll(ctx, alice.ID)
	require.NoError(t, err)
	require.NotEmpty(t, enrollment.Secret)
	require.Contains(t, enrollment.OTPAuthURL, "otpauth://")

	// Pending enrollment does not affect login yet.
	_, _, err = e.tokens.Login(ctx, "alice", testPassword, "")
	require.NoError(t, err)

	code, err := totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	require.NoError(t, e.mfa.Activate(ctx, alice.ID, code))

	_, _, err = e.tokens.Login(ctx, "alice", testPassword, "")
	require.ErrorIs(t, err, service.ErrMFARequired)

	_, _, err = e.tokens.Login(ctx, "alice", testPassword, "000000")
	require.ErrorIs(t, err, service.ErrInvalidOTP)

	code, err = totp.GenerateCode(enrollment.Secret, time.Now())
	require.NoError(t, err)
	_, bundle, err := e.tokens.Login(ctx, "alice", testPassword, code)
	require.NoError(t, err)
	require.NotEmpty(t, bundle.AccessToken)

	// Removing the authenticator restores password-only login.
	require.NoError(t, e.mfa.Remove(ctx, alice.ID))
	_, _, err = e.tokens.Login(ctx, "alice", testPassword, "")
	require.NoError(t, err)
}
