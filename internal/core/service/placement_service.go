package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
	"github.com/campusconnect/alumni-portal/internal/pkg/sanitize"
)

type PlacementService struct {
	repo     ports.PlacementRepository
	users    ports.UserRepository
	notifier ports.Notifier
	policy   domain.EligibilityPolicy
	logger   zerolog.Logger
	now      func() time.Time
}

func NewPlacementService(repo ports.PlacementRepository, users ports.UserRepository, notifier ports.Notifier, policy domain.EligibilityPolicy, logger zerolog.Logger) *PlacementService {
	return &PlacementService{
		repo:     repo,
		users:    users,
		notifier: notifier,
		policy:   policy,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create records an offer reported by the acting student.
func (s *PlacementService) Create(ctx context.Context, actor ports.Actor, input ports.CreatePlacementInput) (*domain.Placement, error) {
	student, err := eligibleStudent(ctx, s.users, s.policy, actor)
	if err != nil {
		return nil, err
	}

	p := &domain.Placement{
		Company:     sanitize.Text(input.Company),
		Position:    sanitize.Text(input.Position),
		Type:        input.Type,
		Package:     sanitize.Text(input.Package),
		Location:    sanitize.Text(input.Location),
		StartDate:   strings.TrimSpace(input.StartDate),
		StudentID:   student.ID,
		StudentName: student.FullName,
		Department:  student.Department,
		YearOfStudy: student.YearOfStudy,
		Review:      domain.Review{Status: domain.ReviewPending},
		SubmittedAt: s.now(),
	}
	if p.Type == "" {
		p.Type = domain.PlacementFullTime
	}
	switch {
	case p.Company == "":
		return nil, domain.Invalid("company is required")
	case p.Position == "":
		return nil, domain.Invalid("position is required")
	case !p.Type.Valid():
		return nil, domain.Invalid("type must be placement or internship")
	}
	if p.StartDate != "" {
		if _, err := time.Parse(domain.DateLayout, p.StartDate); err != nil {
			return nil, domain.Invalid("start date must be in YYYY-MM-DD format")
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("student_id", student.ID).Msg("failed to create placement")
		return nil, err
	}
	s.logger.Info().Str("placement_id", p.ID).Str("student_id", student.ID).Str("company", p.Company).Msg("placement recorded")

	if err := s.notifier.NotifyRole(ctx, domain.RoleAdmin, ports.NotificationInput{
		Title:   "New placement record",
		Message: fmt.Sprintf("%s reported a %s offer from %s as %s.", p.StudentName, p.Type, p.Company, p.Position),
	}); err != nil {
		s.logger.Warn().Err(err).Str("placement_id", p.ID).Msg("admin notification failed")
	}
	return p, nil
}

func (s *PlacementService) List(ctx context.Context, actor ports.Actor, filter ports.LedgerFilter) ([]*domain.Placement, error) {
	filter, err := ledgerScope(actor, filter)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

func (s *PlacementService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Placement, error) {
	if _, err := ledgerScope(actor, ports.LedgerFilter{}); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleStudent && p.StudentID != actor.UserID {
		return nil, domain.ErrPlacementNotFound
	}
	return p, nil
}

func (s *PlacementService) Review(ctx context.Context, actor ports.Actor, id string, input ports.ReviewInput) (*domain.Placement, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkReview(domain.PlacementFlow, p.Status, input); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateReview(ctx, id, ports.ReviewUpdate{
		From:       p.Status,
		To:         input.Status,
		ReviewedBy: actor.UserID,
		Note:       sanitize.Text(input.Note),
		At:         s.now(),
	})
	if err != nil {
		if errors.Is(err, ports.ErrNoMatch) {
			return nil, fmt.Errorf("%w: placement was modified concurrently", domain.ErrInvalidTransition)
		}
		return nil, err
	}

	s.logger.Info().Str("placement_id", id).Str("from", string(p.Status)).Str("to", string(updated.Status)).Msg("placement reviewed")
	if err := s.notifier.Notify(ctx, updated.StudentID, ports.NotificationInput{
		Title:   "Placement " + string(updated.Status),
		Message: reviewMessage("placement at", updated.Company, updated.Status, updated.ReviewNote),
		Type:    reviewNotificationType(updated.Status),
	}); err != nil {
		s.logger.Warn().Err(err).Str("placement_id", id).Msg("student notification failed")
	}
	return updated, nil
}

// Delete removes a placement record. Admins may delete any record; students
// only their own while it is still pending.
func (s *PlacementService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	p, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if actor.Role == domain.RoleStudent && p.Status != domain.ReviewPending {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("placement_id", id).Str("actor_id", actor.UserID).Msg("placement deleted")
	return nil
}
