package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/feedbackhub/feedback-api/internal/core/domain"
)

const (
	MinTokenTTL     = 30 * time.Minute
	MaxTokenTTL     = 24 * time.Hour
	DefaultTokenTTL = MaxTokenTTL
)

// JWTService issues HS256 tokens whose subject is the user id.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService clamps ttl into [MinTokenTTL, MaxTokenTTL]; zero selects the
// default.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	switch {
	case ttl <= 0:
		ttl = DefaultTokenTTL
	case ttl < MinTokenTTL:
		ttl = MinTokenTTL
	case ttl > MaxTokenTTL:
		ttl = MaxTokenTTL
	}
	return &JWTService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL reports the lifetime given to issued tokens.
func (s *JWTService) TTL() time.Duration { return s.ttl }

func (s *JWTService) Issue(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *JWTService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}

var errEmptySecret = errors.New("jwt secret must not be empty")

// ValidateSecret rejects configurations that would sign with an empty key.
func ValidateSecret(secret string) error {
	if secret == "" {
		return errEmptySecret
	}
	return nil
}
