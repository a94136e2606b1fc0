package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

// DefaultTokenTTL is the bearer token lifetime when none is configured.
const DefaultTokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for tokens that fail signature, algorithm,
// expiry or claim checks.
var ErrInvalidToken = errors.New("invalid or expired token")

type tokenClaims struct {
	UserID string      `json:"userId"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for user carrying a fresh token ID.
func (t *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := t.now()
	claims := tokenClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies raw and returns its claims.
func (t *TokenIssuer) Parse(raw string) (*ports.TokenClaims, error) {
	var claims tokenClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return &ports.TokenClaims{
		UserID:    claims.UserID,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
