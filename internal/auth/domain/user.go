package domain

import "time"

type User struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Role         string // free-text job title, not an authorization construct
	PasswordHash string // argon2 encoded
	Superuser    bool
	Capabilities []Capability // parsed from space-delimited storage
	MFAEnabled   *time.Time   // timestamp when TOTP was activated (nullable)
	MFASecret    *string      // TOTP secret (nullable, base32 encoded)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasCapability reports explicit membership only; superuser bypass is
// decided at the gate.
func (u User) HasCapability(c Capability) bool {
	for _, have := range u.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}
