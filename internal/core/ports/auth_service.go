package ports

import (
	"context"
	"time"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
)

// Actor is the authenticated caller as resolved from a bearer token.
type Actor struct {
	UserID string
	Role   domain.Role
}

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	UserID    string
	Role      domain.Role
	TokenID   string
	ExpiresAt time.Time
}

func (c *TokenClaims) Actor() Actor {
	return Actor{UserID: c.UserID, Role: c.Role}
}

// SignupInput carries the credentials and identity fields claimed at signup.
type SignupInput struct {
	Email    string
	Password string
	Role     domain.Role
	Fields   domain.RoleFields
}

// AuthResult is returned by a successful signup or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// Eligibility is the public view of a pending pre-registration.
type Eligibility struct {
	FullName string
	Email    string
	Role     domain.Role
	Fields   domain.RoleFields
}

// Authenticator verifies bearer tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*TokenClaims, error)
}

type AuthService interface {
	Authenticator
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	CheckEligibility(ctx context.Context, email string, role domain.Role) (*Eligibility, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
	Logout(ctx context.Context, claims *TokenClaims) error
}
