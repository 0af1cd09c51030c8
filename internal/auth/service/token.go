package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/renewtech/inventory-auth/internal/auth/domain"
	"github.com/renewtech/inventory-auth/internal/auth/store"
	"github.com/renewtech/inventory-auth/pkg/cryptox"
	"github.com/renewtech/inventory-auth/pkg/idx"
	"github.com/renewtech/inventory-auth/pkg/jwtx"
	"github.com/renewtech/inventory-auth/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

// TokenService issues, revokes, and validates access tokens. Every issued
// JWT also gets a database record keyed by fingerprint so tokens can be
// blacklisted before their expiry.
type TokenService struct {
	Keychain *jwtx.HS256Keychain
	Store    store.Store
	Issuer   string
	AccessTTL time.Duration

	// SingleSession revokes all of a user's live tokens when they log in
	// again, so at most one session is valid per account.
	SingleSession bool
}

// Login verifies credentials (and the one-time code for accounts with an
// activated authenticator) and issues a fresh access token. The revocation
// of prior tokens and the recording of the new one happen in one
// transaction.
func (s *TokenService) Login(ctx context.Context, username, password, otpCode string) (domain.User, domain.TokenBundle, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login failed", slog.String("username", username))
			return domain.User{}, domain.TokenBundle{}, ErrInvalidCredentials
		}
		return domain.User{}, domain.TokenBundle{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", slog.String("username", username))
		return domain.User{}, domain.TokenBundle{}, ErrInvalidCredentials
	}

	if user.MFAEnabled != nil {
		if otpCode == "" {
			return domain.User{}, domain.TokenBundle{}, ErrMFARequired
		}
		if user.MFASecret == nil || !totp.Validate(otpCode, *user.MFASecret) {
			l.Info("login failed on one-time code", slog.String("username", username))
			return domain.User{}, domain.TokenBundle{}, ErrInvalidOTP
		}
	}

	claims := jwtx.NewAccessClaims(user.ID, user.Username, s.Issuer, s.AccessTTL, now)
	signed, err := s.Keychain.Sign(claims)
	if err != nil {
		return domain.User{}, domain.TokenBundle{}, err
	}

	record := domain.AccessToken{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: cryptox.FingerprintToken(signed),
		IssuedAt:  now,
		ExpiresAt: claims.ExpiresAt.Time,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if s.SingleSession {
			if err := tx.Tokens().BlacklistUserTokens(ctx, user.ID); err != nil {
				return err
			}
		}
		return tx.Tokens().CreateToken(ctx, record)
	})
	if err != nil {
		return domain.User{}, domain.TokenBundle{}, err
	}

	l.Info("login succeeded",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, domain.TokenBundle{
		AccessToken: signed,
		ExpiresAt:   record.ExpiresAt,
	}, nil
}

// Logout blacklists the presented token. Logging out with an
// already-blacklisted token succeeds; the end state is the same.
func (s *TokenService) Logout(ctx context.Context, raw string) error {
	record, err := s.Store.Tokens().GetTokenByHash(ctx, cryptox.FingerprintToken(raw))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTokenNotFound
		}
		return err
	}
	if record.Blacklisted {
		return nil
	}
	return s.Store.Tokens().BlacklistToken(ctx, record.ID)
}

// Validate resolves a raw token to its user. Checks run in a fixed order
// so the caller sees a stable failure taxonomy: signature and issuer,
// expiry, record existence, blacklist, then the user row.
func (s *TokenService) Validate(ctx context.Context, raw string) (domain.User, domain.AccessToken, error) {
	claims, err := s.Keychain.Verify(raw)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return domain.User{}, domain.AccessToken{}, ErrTokenExpired
		}
		return domain.User{}, domain.AccessToken{}, ErrInvalidToken
	}

	record, err := s.Store.Tokens().GetTokenByHash(ctx, cryptox.FingerprintToken(raw))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.AccessToken{}, ErrTokenNotFound
		}
		return domain.User{}, domain.AccessToken{}, err
	}

	if record.Blacklisted {
		return domain.User{}, domain.AccessToken{}, ErrTokenBlacklisted
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.AccessToken{}, ErrInvalidToken
		}
		return domain.User{}, domain.AccessToken{}, err
	}

	return user, record, nil
}

// List returns every token record, newest first.
func (s *TokenService) List(ctx context.Context) ([]domain.AccessToken, error) {
	return s.Store.Tokens().ListTokens(ctx)
}

// Blacklist revokes a token by record ID.
func (s *TokenService) Blacklist(ctx context.Context, id string) error {
	err := s.Store.Tokens().BlacklistToken(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrTokenNotFound
	}
	return err
}
