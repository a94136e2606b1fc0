package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	raw, err := issuer.Issue(&domain.User{ID: "u1", Role: domain.RoleFaculty})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := issuer.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Role != domain.RoleFaculty {
		t.Errorf("unexpected claims %+v", claims)
	}
	if claims.TokenID == "" {
		t.Error("expected a token ID")
	}
	if time.Until(claims.ExpiresAt) > time.Hour || time.Until(claims.ExpiresAt) < 59*time.Minute {
		t.Errorf("unexpected expiry %v", claims.ExpiresAt)
	}
}

func TestTokenIssuer_UniqueTokenIDs(t *testing.T) {
	issuer := NewTokenIssuer("secret", 0)
	user := &domain.User{ID: "u1", Role: domain.RoleStudent}
	a, _ := issuer.Issue(user)
	b, _ := issuer.Issue(user)
	ca, _ := issuer.Parse(a)
	cb, _ := issuer.Parse(b)
	if ca.TokenID == cb.TokenID {
		t.Fatal("expected distinct token IDs")
	}
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	user := &domain.User{ID: "u1", Role: domain.RoleStudent}

	otherKey, _ := NewTokenIssuer("other", time.Hour).Issue(user)

	expiredIssuer := NewTokenIssuer("secret", time.Hour)
	expiredIssuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _ := expiredIssuer.Issue(user)

	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, tokenClaims{
		UserID: "u1",
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))

	badRole, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: "u1",
		Role:   "superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))

	tests := map[string]string{
		"garbage":      "not-a-token",
		"wrong key":    otherKey,
		"expired":      expired,
		"wrong alg":    hs512,
		"unknown role": badRole,
	}
	for name, raw := range tests {
		if _, err := issuer.Parse(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}
