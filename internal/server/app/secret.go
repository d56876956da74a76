package app

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/beamhq/beam/pkg/jwtx"
)

// loadOrGenerateSecret returns the process-wide token signing secret, creating
// a fresh random one on first run. Rotating the file invalidates every
// outstanding session token.
func loadOrGenerateSecret(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) < jwtx.MinSecretLen {
			return nil, fmt.Errorf("signing secret in %s is shorter than %d bytes", path, jwtx.MinSecretLen)
		}
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	secret := make([]byte, jwtx.MinSecretLen)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return nil, fmt.Errorf("write signing secret: %w", err)
	}
	return secret, nil
}
