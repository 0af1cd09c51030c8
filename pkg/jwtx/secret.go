package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadOrGenerateSecret loads the HS256 signing secret from the given file,
// generating and persisting a fresh one on first run. Persisting the secret
// keeps previously issued tokens verifiable across restarts; a per-process
// secret would silently invalidate every outstanding session.
func LoadOrGenerateSecret(path string) ([]byte, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("jwtx: create secret dir: %w", err)
	}

	if raw, err := os.ReadFile(path); err == nil {
		secret, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("jwtx: decode signing secret %s: %w", path, err)
		}
		if len(secret) < MinSecretLength {
			return nil, fmt.Errorf("jwtx: signing secret %s is too short", path)
		}
		return secret, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("jwtx: read signing secret: %w", err)
	}

	secret := make([]byte, MinSecretLength)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("jwtx: generate signing secret: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(secret)
	if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
		return nil, fmt.Errorf("jwtx: persist signing secret: %w", err)
	}

	return secret, nil
}
