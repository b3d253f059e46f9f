package token

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTTL = 24 * time.Hour

type claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Holders resolves a raw token to the user currently holding it.
type Holders interface {
	FindUserIDByToken(ctx context.Context, token string) (int64, bool, error)
}

type Service struct {
	secret  []byte
	ttl     time.Duration
	holders Holders
	now     func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(secret string, ttl time.Duration, holders Holders, opts ...Option) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Service{
		secret:  []byte(secret),
		ttl:     ttl,
		holders: holders,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs a token for subject. The caller must store it as the user's
// current token; until then Verify reports it as unknown.
func (s *Service) Issue(subject Subject) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:  subject.Name,
		Email: subject.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject.UserID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify accepts raw only if it is some user's current token and its
// signature and expiry check out.
func (s *Service) Verify(ctx context.Context, raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, ErrTokenMalformed
	}

	holderID, ok, err := s.holders.FindUserIDByToken(ctx, raw)
	if err != nil {
		return Identity{}, fmt.Errorf("lookup token holder: %w", err)
	}
	if !ok {
		return Identity{}, ErrUnknownToken
	}

	var parsed claims
	_, err = jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	userID, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil || userID != holderID {
		return Identity{}, ErrTokenMalformed
	}

	identity := Identity{
		UserID:  userID,
		Name:    parsed.Name,
		Email:   parsed.Email,
		TokenID: parsed.ID,
	}
	if parsed.ExpiresAt != nil {
		identity.ExpiresAt = parsed.ExpiresAt.Time
	}
	return identity, nil
}
