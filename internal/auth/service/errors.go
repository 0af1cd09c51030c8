package service

import "errors"

var (
	// ErrInvalidCredentials covers every login failure: unknown username,
	// wrong password. Callers never learn which.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrMFARequired means the credentials were right but the account has
	// an activated authenticator and no code was supplied.
	ErrMFARequired = errors.New("a one-time code is required")

	// ErrInvalidOTP means the supplied one-time code did not verify.
	ErrInvalidOTP = errors.New("invalid one-time code")

	// Token validation failures, in checking order. Each carries a
	// distinct message for the gate's denial response; all of them deny.
	ErrInvalidToken     = errors.New("token is invalid")
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenNotFound    = errors.New("token not found")
	ErrTokenBlacklisted = errors.New("token has been blacklisted")

	// ErrUserNotFound is returned when the addressed user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyBootstrapped and ErrBootstrapUnauthorized guard the
	// first-run superuser creation.
	ErrAlreadyBootstrapped   = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
)
