package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// MinSecretLength is the smallest HMAC secret accepted. Shorter secrets
// undermine HS256 and are refused outright.
const MinSecretLength = 32

// Signer signs claims into compact JWT strings.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a JWT and gives you back the claims if it's legit.
// Expiry is reported separately from signature failures so callers can
// distinguish an expired session from a forged token.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256Keychain signs and verifies tokens with a single shared HMAC secret.
// The secret is loaded once at startup (see LoadOrGenerateSecret) and never
// regenerated while issued tokens are outstanding.
type HS256Keychain struct {
	secret []byte
	issuer string
}

// NewHS256Keychain validates the secret and returns a keychain usable as
// both Signer and Verifier.
func NewHS256Keychain(secret []byte, issuer string) (*HS256Keychain, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("jwtx: HS256 secret must be at least %d bytes, got %d",
			MinSecretLength, len(secret))
	}
	return &HS256Keychain{secret: secret, issuer: issuer}, nil
}

// Sign takes your claims and turns them into a signed JWT string.
func (k *HS256Keychain) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(k.secret)
}

// Verify validates the JWT string and returns its parsed Claims.
//
// Signature and structure are checked during parse; expiry and issuer are
// validated explicitly afterwards so each failure maps to its own sentinel.
func (k *HS256Keychain) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return k.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return Claims{}, ErrInvalidSig
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(k.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
