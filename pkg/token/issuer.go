// Package token issues and validates signed bearer tokens carrying a
// subject claim. Tokens are self-contained HS256 JWTs: nothing is stored
// server-side and validity is decided purely from the token's own contents.
package token

import (
	"time"

	ledger_errors "molecule-ledger/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the validity window applied when no explicit TTL is given.
const DefaultTTL = 30 * time.Minute

// Claims is the signed payload of an access token.
type Claims struct {
	jwt.RegisteredClaims
}

// Issuer signs and verifies access tokens with a process-wide symmetric key.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures an Issuer.
type Option func(*Issuer)

// WithTTL overrides the default validity window.
func WithTTL(d time.Duration) Option {
	return func(i *Issuer) {
		if d > 0 {
			i.ttl = d
		}
	}
}

// WithClock overrides the time source. Used by tests to control expiry.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

// NewIssuer creates a token issuer. The signing secret is required.
func NewIssuer(secret []byte, opts ...Option) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, ledger_errors.ErrInvalidInput
	}

	issuer := &Issuer{
		secret: secret,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(issuer)
	}
	return issuer, nil
}

// TTL returns the issuer's default validity window.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for subject using the default TTL.
func (i *Issuer) Issue(subject string) (string, error) {
	return i.IssueWithTTL(subject, i.ttl)
}

// IssueWithTTL signs a token for subject expiring after ttl. Non-positive
// ttl values fall back to the default.
func (i *Issuer) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", ledger_errors.ErrInvalidInput
	}
	if ttl <= 0 {
		ttl = i.ttl
	}

	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return signed.SignedString(i.secret)
}

// Verify checks the signature and expiry of tokenString and returns the
// embedded subject. Malformed, tampered, and expired tokens all collapse
// into ErrInvalidToken so callers cannot distinguish the failure mode.
func (i *Issuer) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ledger_errors.ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ledger_errors.ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return "", ledger_errors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ledger_errors.ErrInvalidToken
	}

	return claims.Subject, nil
}
