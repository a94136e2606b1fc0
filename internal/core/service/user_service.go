package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
	"github.com/campusconnect/alumni-portal/internal/pkg/sanitize"
)

// UserService handles profile edits and admin account management.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// UpdateProfile changes the actor's own contact details. Designation is a
// faculty-only field.
func (s *UserService) UpdateProfile(ctx context.Context, actor ports.Actor, update ports.ProfileUpdate) (*domain.User, error) {
	sanitize.Ptr(update.FullName)
	sanitize.Ptr(update.PhoneNumber)
	sanitize.Ptr(update.Designation)

	if update.FullName != nil && *update.FullName == "" {
		return nil, domain.Invalid("full name cannot be empty")
	}
	if update.Designation != nil && actor.Role != domain.RoleFaculty {
		return nil, domain.Invalid("only faculty members have a designation")
	}
	if update.FullName == nil && update.PhoneNumber == nil && update.Designation == nil {
		return s.users.FindByID(ctx, actor.UserID)
	}
	return s.users.UpdateProfile(ctx, actor.UserID, update, s.now())
}

func (s *UserService) List(ctx context.Context, actor ports.Actor, role domain.Role) ([]*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if role != "" && !role.Valid() {
		return nil, domain.Invalid("unknown role %q", role)
	}
	return s.users.List(ctx, role)
}

// SetActive activates or deactivates an account. Admins cannot deactivate
// themselves.
func (s *UserService) SetActive(ctx context.Context, actor ports.Actor, id string, active bool) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if id == actor.UserID && !active {
		return nil, domain.Invalid("you cannot deactivate your own account")
	}
	u, err := s.users.SetActive(ctx, id, active, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Bool("active", active).Str("admin_id", actor.UserID).Msg("account status changed")
	return u, nil
}

// PreRegistrationService manages the signup allow-list.
type PreRegistrationService struct {
	repo   ports.PreRegistrationRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewPreRegistrationService(repo ports.PreRegistrationRepository, logger zerolog.Logger) *PreRegistrationService {
	return &PreRegistrationService{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

func (s *PreRegistrationService) Create(ctx context.Context, actor ports.Actor, p *domain.PreRegistration) (*domain.PreRegistration, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	s.normalize(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info().Str("email", p.Email).Str("role", string(p.Role)).Msg("pre-registration created")
	return p, nil
}

func (s *PreRegistrationService) List(ctx context.Context, actor ports.Actor, filter ports.PreRegistrationFilter) ([]*domain.PreRegistration, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.repo.List(ctx, filter)
}

// Seed imports records in bulk. Invalid records and records already consumed
// by a signup are skipped; the first storage failure aborts the import.
func (s *PreRegistrationService) Seed(ctx context.Context, records []*domain.PreRegistration) (*ports.SeedReport, error) {
	report := &ports.SeedReport{}
	for _, p := range records {
		s.normalize(p)
		if err := p.Validate(); err != nil {
			s.logger.Warn().Err(err).Str("email", p.Email).Msg("skipping invalid pre-registration")
			report.Skipped++
			continue
		}
		created, err := s.repo.Upsert(ctx, p)
		switch {
		case errors.Is(err, domain.ErrDuplicatePreRegistration):
			s.logger.Info().Str("email", p.Email).Msg("pre-registration already consumed, skipping")
			report.Skipped++
		case err != nil:
			return report, err
		case created:
			report.Created++
		default:
			report.Updated++
		}
	}
	return report, nil
}

func (s *PreRegistrationService) normalize(p *domain.PreRegistration) {
	p.Email = domain.NormalizeEmail(p.Email)
	p.FullName = strings.TrimSpace(p.FullName)
	p.IsRegistered = false
	p.RegisteredAt = nil
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
}
