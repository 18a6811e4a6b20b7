package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Status is the outcome of verifying a token. Expiry and signature
// failure are distinct cases so callers can tell them apart.
type Status int

const (
	StatusValid Status = iota
	StatusExpired
	StatusMalformed
	StatusBadSignature
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusExpired:
		return "expired"
	case StatusMalformed:
		return "malformed"
	case StatusBadSignature:
		return "bad signature"
	default:
		return "unknown"
	}
}

// ErrMalformedToken is returned by ExtractSubject when the token is not
// structurally a JWT.
var ErrMalformedToken = errors.New("malformed token")

// Service issues and verifies RS256-signed bearer tokens. It only reads
// the immutable keypair, so it is safe for concurrent use.
type Service struct {
	keys *Keys
	ttl  time.Duration
	now  func() time.Time
}

// NewService creates a token service signing with the given keys.
// ttlMillis is the token lifetime in milliseconds.
func NewService(keys *Keys, ttlMillis int64) *Service {
	return &Service{
		keys: keys,
		ttl:  time.Duration(ttlMillis) * time.Millisecond,
		now:  time.Now,
	}
}

// Issue builds a signed token for the given subject, expiring after the
// configured TTL.
func (s *Service) Issue(subject string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := t.SignedString(s.keys.Private)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token and checks its signature and expiry against
// the public key.
func (s *Service) Verify(tokenString string) Status {
	_, err := jwt.Parse(
		tokenString,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.keys.Public, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)

	switch {
	case err == nil:
		return StatusValid
	case errors.Is(err, jwt.ErrTokenExpired):
		return StatusExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return StatusBadSignature
	default:
		return StatusMalformed
	}
}

// Validate reports whether the token is well-formed, correctly signed
// and not expired.
func (s *Service) Validate(tokenString string) bool {
	return s.Verify(tokenString) == StatusValid
}

// ValidateForSubject additionally compares the token subject against an
// expected identity.
func (s *Service) ValidateForSubject(tokenString, subject string) bool {
	if !s.Validate(tokenString) {
		return false
	}
	extracted, err := s.ExtractSubject(tokenString)
	return err == nil && extracted == subject
}

// ExtractSubject returns the subject claim without verifying the
// signature or expiry. Callers must Verify first; on its own this does
// not authenticate anything.
func (s *Service) ExtractSubject(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return claims.Subject, nil
}
