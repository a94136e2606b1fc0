// Package app wires repositories, services and transports into a running
// server.
package app

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/api"
	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
	"github.com/campusconnect/alumni-portal/internal/core/service"
	"github.com/campusconnect/alumni-portal/internal/infrastructure/db/memory"
	"github.com/campusconnect/alumni-portal/pkg/logger"
)

// Repositories is the full set of storage ports.
type Repositories struct {
	Users            ports.UserRepository
	PreRegistrations ports.PreRegistrationRepository
	Sessions         ports.SessionRepository
	Submissions      ports.SubmissionRepository
	Placements       ports.PlacementRepository
	Notifications    ports.NotificationRepository
	Transactor       ports.Transactor
	Denylist         ports.TokenDenylist
}

// MemoryRepositories returns process-local storage for development and tests.
func MemoryRepositories() Repositories {
	return Repositories{
		Users:            memory.NewUserRepository(),
		PreRegistrations: memory.NewPreRegistrationRepository(),
		Sessions:         memory.NewSessionRepository(),
		Submissions:      memory.NewSubmissionRepository(),
		Placements:       memory.NewPlacementRepository(),
		Notifications:    memory.NewNotificationRepository(),
		Transactor:       memory.NewTransactor(),
		Denylist:         memory.NewTokenDenylist(),
	}
}

// Settings are the tunables the services need.
type Settings struct {
	JWTSecret       string
	TokenTTL        time.Duration
	Location        *time.Location
	SessionDuration time.Duration
	EligibleYears   []string
	FrontendURL     string
}

// NewServices builds every application service on top of repos. Mail
// produced by notifications is handed to mail.
func NewServices(repos Repositories, mail ports.MailQueue, s Settings, log zerolog.Logger) api.Services {
	notifications := service.NewNotificationService(repos.Notifications, repos.Users, mail, s.FrontendURL, logger.Component(log, "notifications"))
	policy := domain.NewEligibilityPolicy(s.EligibleYears...)

	return api.Services{
		Auth: service.NewAuthService(service.AuthDeps{
			Users:            repos.Users,
			PreRegistrations: repos.PreRegistrations,
			Transactor:       repos.Transactor,
			Denylist:         repos.Denylist,
			Notifier:         notifications,
			Tokens:           service.NewTokenIssuer(s.JWTSecret, s.TokenTTL),
		}, logger.Component(log, "auth")),
		Sessions: service.NewSessionService(repos.Sessions, repos.Users, notifications,
			domain.NewClassifier(s.Location, s.SessionDuration), logger.Component(log, "sessions")),
		Submissions:      service.NewSubmissionService(repos.Submissions, repos.Users, notifications, policy, logger.Component(log, "submissions")),
		Placements:       service.NewPlacementService(repos.Placements, repos.Users, notifications, policy, logger.Component(log, "placements")),
		Notifications:    notifications,
		Users:            service.NewUserService(repos.Users, logger.Component(log, "users")),
		PreRegistrations: service.NewPreRegistrationService(repos.PreRegistrations, logger.Component(log, "pre_registrations")),
	}
}
