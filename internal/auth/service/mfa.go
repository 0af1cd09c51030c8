package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/renewtech/inventory-auth/internal/auth/domain"
	"github.com/renewtech/inventory-auth/internal/auth/store"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var (
	ErrMFANotEnrolled    = errors.New("authenticator not enrolled")
	ErrMFAAlreadyEnabled = errors.New("authenticator already enabled")
)

// MFAService manages optional TOTP second factors. Enrollment is two-step:
// Enroll stores a pending secret, Activate confirms it with a live code.
// Until activation the login flow ignores the pending secret.
type MFAService struct {
	Store  store.Store
	Issuer string // Issuer name shown in authenticator apps
}

// Enroll generates a TOTP secret for the user and returns the provisioning
// payload. This does NOT enable the second factor yet.
func (s *MFAService) Enroll(ctx context.Context, userID string) (domain.MFAEnrollment, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.MFAEnrollment{}, ErrUserNotFound
		}
		return domain.MFAEnrollment{}, err
	}
	if user.MFAEnabled != nil {
		return domain.MFAEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.Username,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	if err := s.Store.Users().UpdateMFASecret(ctx, userID, key.Secret()); err != nil {
		return domain.MFAEnrollment{}, fmt.Errorf("failed to store TOTP secret: %w", err)
	}

	return domain.MFAEnrollment{
		Secret:     key.Secret(),
		OTPAuthURL: key.URL(),
		Issuer:     s.Issuer,
		Account:    user.Username,
	}, nil
}

// Activate verifies a current code against the pending secret and switches
// the second factor on.
func (s *MFAService) Activate(ctx context.Context, userID string, code string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if user.MFASecret == nil || *user.MFASecret == "" {
		return ErrMFANotEnrolled
	}
	if user.MFAEnabled != nil {
		return ErrMFAAlreadyEnabled
	}

	if !totp.Validate(code, *user.MFASecret) {
		return ErrInvalidOTP
	}

	return s.Store.Users().EnableMFA(ctx, userID, time.Now().UTC())
}

// Remove disables the second factor and discards the secret.
func (s *MFAService) Remove(ctx context.Context, userID string) error {
	err := s.Store.Users().DisableMFA(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
