package domain

import "time"

// AccessToken models the stored record of an issued JWT. The raw token is
// never stored; TokenHash is its deterministic fingerprint (base64url
// SHA-256) and is what validation looks up.
type AccessToken struct {
	ID          string
	UserID      string
	TokenHash   string
	IssuedAt    time.Time
	ExpiresAt   time.Time
	Blacklisted bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TokenBundle is what a successful login returns alongside the username.
type TokenBundle struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MFAEnrollment is the one-time payload returned when TOTP enrollment
// begins. The secret is shown once and never read back out of storage.
type MFAEnrollment struct {
	Secret     string // Base32 encoded secret for TOTP
	OTPAuthURL string // otpauth:// URL for QR code generation
	Issuer     string // Issuer name (the service name)
	Account    string // Account name (the username)
}
