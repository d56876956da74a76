package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLen is the minimum signing secret length in bytes. Anything
// shorter makes HS256 brute-forceable.
const MinSecretLen = 32

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrWeakSecret  = errors.New("jwtx: signing secret too short")
)

// Verifier validates a token string and returns its claims if it's legit.
// Callers treat any returned error as "unauthenticated": bad signature,
// malformed payload and expiry are deliberately indistinguishable at the
// boundary.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Signer issues and verifies HS256 session tokens using a single
// process-wide secret. Issuance is pure: no I/O, no failure modes beyond
// construction-time secret validation.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewSigner validates the secret and returns a Signer. A short secret is a
// startup-fatal condition, not a per-request one.
func NewSigner(secret []byte, issuer string, ttl time.Duration) (*Signer, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Signer{secret: secret, issuer: issuer, ttl: ttl}, nil
}

// Issue mints a signed session token for the username and role set.
func (s *Signer) Issue(username string, roles []string) (string, error) {
	claims := NewClaims(username, roles, s.ttl, s.issuer, time.Now().UTC())
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token, returning its claims.
func (s *Signer) Verify(token string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrAlgMismatch
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, ErrAlgMismatch):
			return Claims{}, ErrAlgMismatch
		default:
			return Claims{}, ErrMalformed
		}
	}
	if !parsed.Valid {
		return Claims{}, ErrInvalidSig
	}
	return claims, nil
}
