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

type SubmissionService struct {
	repo     ports.SubmissionRepository
	users    ports.UserRepository
	notifier ports.Notifier
	policy   domain.EligibilityPolicy
	logger   zerolog.Logger
	now      func() time.Time
}

func NewSubmissionService(repo ports.SubmissionRepository, users ports.UserRepository, notifier ports.Notifier, policy domain.EligibilityPolicy, logger zerolog.Logger) *SubmissionService {
	return &SubmissionService{
		repo:     repo,
		users:    users,
		notifier: notifier,
		policy:   policy,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create files a submission for the acting student, snapshotting their name,
// department and year at write time.
func (s *SubmissionService) Create(ctx context.Context, actor ports.Actor, input ports.CreateSubmissionInput) (*domain.Submission, error) {
	student, err := eligibleStudent(ctx, s.users, s.policy, actor)
	if err != nil {
		return nil, err
	}

	sub := &domain.Submission{
		Title:          sanitize.Text(input.Title),
		Description:    sanitize.Text(input.Description),
		Category:       strings.TrimSpace(input.Category),
		AdditionalInfo: sanitize.Text(input.AdditionalInfo),
		StudentID:      student.ID,
		StudentName:    student.FullName,
		Department:     student.Department,
		YearOfStudy:    student.YearOfStudy,
		Review:         domain.Review{Status: domain.ReviewPending},
		SubmittedAt:    s.now(),
	}
	switch {
	case sub.Title == "":
		return nil, domain.Invalid("title is required")
	case sub.Description == "":
		return nil, domain.Invalid("description is required")
	case !domain.ValidSubmissionCategory(sub.Category):
		return nil, domain.Invalid("category must be one of: %s", strings.Join(domain.SubmissionCategories, ", "))
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		s.logger.Error().Err(err).Str("student_id", student.ID).Msg("failed to create submission")
		return nil, err
	}
	s.logger.Info().Str("submission_id", sub.ID).Str("student_id", student.ID).Msg("submission created")

	if err := s.notifier.NotifyRole(ctx, domain.RoleAdmin, ports.NotificationInput{
		Title:   "New submission",
		Message: fmt.Sprintf("%s (%s, %s) submitted %q.", sub.StudentName, sub.Department, sub.YearOfStudy, sub.Title),
	}); err != nil {
		s.logger.Warn().Err(err).Str("submission_id", sub.ID).Msg("admin notification failed")
	}
	return sub, nil
}

func (s *SubmissionService) List(ctx context.Context, actor ports.Actor, filter ports.LedgerFilter) ([]*domain.Submission, error) {
	filter, err := ledgerScope(actor, filter)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter)
}

// Get returns a submission visible to the actor. Students asking for someone
// else's record get not-found.
func (s *SubmissionService) Get(ctx context.Context, actor ports.Actor, id string) (*domain.Submission, error) {
	if _, err := ledgerScope(actor, ports.LedgerFilter{}); err != nil {
		return nil, err
	}
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleStudent && sub.StudentID != actor.UserID {
		return nil, domain.ErrSubmissionNotFound
	}
	return sub, nil
}

// Review records an admin decision and notifies the student.
func (s *SubmissionService) Review(ctx context.Context, actor ports.Actor, id string, input ports.ReviewInput) (*domain.Submission, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkReview(domain.SubmissionFlow, sub.Status, input); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateReview(ctx, id, ports.ReviewUpdate{
		From:       sub.Status,
		To:         input.Status,
		ReviewedBy: actor.UserID,
		Note:       sanitize.Text(input.Note),
		At:         s.now(),
	})
	if err != nil {
		if errors.Is(err, ports.ErrNoMatch) {
			return nil, fmt.Errorf("%w: submission was modified concurrently", domain.ErrInvalidTransition)
		}
		return nil, err
	}

	s.logger.Info().Str("submission_id", id).Str("from", string(sub.Status)).Str("to", string(updated.Status)).Msg("submission reviewed")
	if err := s.notifier.Notify(ctx, updated.StudentID, ports.NotificationInput{
		Title:   "Submission " + string(updated.Status),
		Message: reviewMessage("submission", updated.Title, updated.Status, updated.ReviewNote),
		Type:    reviewNotificationType(updated.Status),
	}); err != nil {
		s.logger.Warn().Err(err).Str("submission_id", id).Msg("student notification failed")
	}
	return updated, nil
}
