package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Sorolassina/mca-api/emargement/types"
)

const (
	DefaultTTL = 30 * time.Minute
	issuer     = "mca-api/emargement"
)

// Claims binds a signing link to one record, participant, event and mode
type Claims struct {
	jwt.RegisteredClaims
	RecordID uint64     `json:"emargement_id"`
	Email    string     `json:"email"`
	EventID  uint64     `json:"evenement_id"`
	Mode     types.Mode `json:"mode"`
}

type TokenService interface {
	Issue(recordID uint64, email string, eventID uint64, mode types.Mode) (string, time.Time, error)
	// Verify checks integrity and expiry. An empty expectedMode accepts any mode.
	Verify(tok string, expectedMode types.Mode) (*Claims, error)
	TTL() time.Duration
}

type BaseTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(s *BaseTokenService)

// WithClock replaces time.Now, used to simulate expiry
func WithClock(now func() time.Time) Option {
	return func(s *BaseTokenService) {
		s.now = now
	}
}

func NewTokenService(secret []byte, ttl time.Duration, opts ...Option) (*BaseTokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &BaseTokenService{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *BaseTokenService) TTL() time.Duration {
	return s.ttl
}

func (s *BaseTokenService) Issue(recordID uint64, email string, eventID uint64, mode types.Mode) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   fmt.Sprint(recordID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		RecordID: recordID,
		Email:    types.NormalizeEmail(email),
		EventID:  eventID,
		Mode:     mode,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func (s *BaseTokenService) Verify(tok string, expectedMode types.Mode) (*Claims, error) {
	if tok == "" {
		return nil, types.NewErr(types.KindAuthorization, "token missing")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)

	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(tok, claims, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, types.WrapErr(types.KindAuthorization, err, "token expired")
		}
		return nil, types.WrapErr(types.KindAuthorization, err, "invalid token")
	}
	if !parsed.Valid {
		return nil, types.NewErr(types.KindAuthorization, "invalid token")
	}

	if expectedMode != "" && claims.Mode != expectedMode {
		return nil, types.NewErrf(types.KindAuthorization, "invalid mode: expected %s", expectedMode)
	}
	return claims, nil
}
