package ports

import (
	"context"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
)

// UserService covers self-service profile edits and admin account management.
type UserService interface {
	UpdateProfile(ctx context.Context, actor Actor, update ProfileUpdate) (*domain.User, error)
	List(ctx context.Context, actor Actor, role domain.Role) ([]*domain.User, error)
	SetActive(ctx context.Context, actor Actor, id string, active bool) (*domain.User, error)
}

// SeedReport summarises a bulk pre-registration import.
type SeedReport struct {
	Created int
	Updated int
	Skipped int
}

// PreRegistrationService manages the signup allow-list.
type PreRegistrationService interface {
	Create(ctx context.Context, actor Actor, p *domain.PreRegistration) (*domain.PreRegistration, error)
	List(ctx context.Context, actor Actor, filter PreRegistrationFilter) ([]*domain.PreRegistration, error)
	Seed(ctx context.Context, records []*domain.PreRegistration) (*SeedReport, error)
}
