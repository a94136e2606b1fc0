package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

// dummyHash is compared against when the email is unknown so that login
// timing does not reveal which accounts exist.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("campus-connect-placeholder"), bcrypt.DefaultCost)

// AuthDeps groups the collaborators of AuthService.
type AuthDeps struct {
	Users            ports.UserRepository
	PreRegistrations ports.PreRegistrationRepository
	Transactor       ports.Transactor
	Denylist         ports.TokenDenylist
	Notifier         ports.Notifier
	Tokens           *TokenIssuer
}

// AuthService implements pre-registration gated signup, login and token
// lifecycle.
type AuthService struct {
	users    ports.UserRepository
	preRegs  ports.PreRegistrationRepository
	tx       ports.Transactor
	denylist ports.TokenDenylist
	notifier ports.Notifier
	tokens   *TokenIssuer
	logger   zerolog.Logger

	hashCost int
	now      func() time.Time
}

func NewAuthService(deps AuthDeps, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:    deps.Users,
		preRegs:  deps.PreRegistrations,
		tx:       deps.Transactor,
		denylist: deps.Denylist,
		notifier: deps.Notifier,
		tokens:   deps.Tokens,
		logger:   logger,
		hashCost: bcrypt.DefaultCost,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Signup creates an account for a pre-registered person. The user insert and
// the pre-registration consumption happen together: if the record was taken
// by a concurrent signup the new user is removed again.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*ports.AuthResult, error) {
	email := domain.NormalizeEmail(input.Email)
	if !domain.ValidEmail(email) {
		return nil, domain.Invalid("a valid email is required")
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, domain.Invalid("password must be at least %d characters", domain.MinPasswordLength)
	}
	if !input.Role.Valid() {
		return nil, domain.Invalid("role must be one of: student, faculty, alumni, admin")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateUser
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	pre, err := s.preRegs.FindUnregistered(ctx, email, input.Role)
	if err != nil {
		if errors.Is(err, domain.ErrPreRegistrationNotFound) {
			return nil, domain.ErrNotPreRegistered
		}
		return nil, err
	}
	if err := pre.Match(input.Fields); err != nil {
		s.logger.Info().Str("email", email).Str("role", string(input.Role)).Err(err).Msg("signup identity mismatch")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &domain.User{
		FullName:          pre.FullName,
		Email:             pre.Email,
		PasswordHash:      string(hash),
		Role:              pre.Role,
		RoleFields:        pre.RoleFields.ForRole(pre.Role),
		PhoneNumber:       pre.PhoneNumber,
		PreRegistrationID: pre.ID,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var created *domain.User
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		u, err := s.users.Create(ctx, user)
		if err != nil {
			return err
		}
		if err := s.preRegs.MarkRegistered(ctx, pre.ID, now); err != nil {
			if delErr := s.users.Delete(ctx, u.ID); delErr != nil {
				s.logger.Error().Err(delErr).Str("user_id", u.ID).Msg("failed to roll back user after signup conflict")
			}
			if errors.Is(err, domain.ErrPreRegistrationNotFound) {
				return domain.ErrNotPreRegistered
			}
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user signed up")

	if err := s.notifier.Notify(ctx, created.ID, ports.NotificationInput{
		Title:   "Welcome to Campus Connect",
		Message: fmt.Sprintf("Hi %s, your %s account is ready.", created.FullName, created.Role),
		Type:    domain.NotificationSuccess,
	}); err != nil {
		s.logger.Warn().Err(err).Str("user_id", created.ID).Msg("welcome notification failed")
	}

	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login verifies credentials. Unknown email, wrong password and deactivated
// accounts all yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.Invalid("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		s.logger.Info().Str("user_id", user.ID).Msg("login attempt on deactivated account")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

// CheckEligibility reports the pending pre-registration for (email, role).
func (s *AuthService) CheckEligibility(ctx context.Context, email string, role domain.Role) (*ports.Eligibility, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || !role.Valid() {
		return nil, domain.Invalid("email and a valid role are required")
	}

	pre, err := s.preRegs.FindUnregistered(ctx, email, role)
	if err != nil {
		if errors.Is(err, domain.ErrPreRegistrationNotFound) {
			return nil, domain.ErrNotEligible
		}
		return nil, err
	}
	return &ports.Eligibility{
		FullName: pre.FullName,
		Email:    pre.Email,
		Role:     pre.Role,
		Fields:   pre.RoleFields.ForRole(pre.Role),
	}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// ChangePassword replaces the password after re-verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < domain.MinPasswordLength {
		return domain.Invalid("new password must be at least %d characters", domain.MinPasswordLength)
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash), s.now()); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *ports.TokenClaims) error {
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// Authenticate verifies a bearer token and rejects revoked ones and tokens
// whose account has been deleted or deactivated. A denylist outage is logged
// and the token is accepted.
func (s *AuthService) Authenticate(ctx context.Context, raw string) (*ports.TokenClaims, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		return nil, err
	}
	revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
	switch {
	case err != nil:
		s.logger.Warn().Err(err).Str("user_id", claims.UserID).Msg("token denylist check failed, accepting token")
	case revoked:
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return nil, ErrInvalidToken
	case err != nil:
		return nil, fmt.Errorf("load token subject: %w", err)
	case !user.IsActive:
		return nil, ErrInvalidToken
	}
	return claims, nil
}
