package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
	"github.com/campusconnect/alumni-portal/internal/pkg/sanitize"
)

// SessionService implements the mentoring session registry. Status is always
// derived from the clock at read time; only cancellation is persisted.
type SessionService struct {
	repo       ports.SessionRepository
	users      ports.UserRepository
	notifier   ports.Notifier
	classifier domain.Classifier
	logger     zerolog.Logger
	now        func() time.Time
}

func NewSessionService(repo ports.SessionRepository, users ports.UserRepository, notifier ports.Notifier, classifier domain.Classifier, logger zerolog.Logger) *SessionService {
	return &SessionService{
		repo:       repo,
		users:      users,
		notifier:   notifier,
		classifier: classifier,
		logger:     logger,
		now:        time.Now,
	}
}

var sessionHosts = map[domain.Role]bool{
	domain.RoleAdmin:   true,
	domain.RoleFaculty: true,
	domain.RoleAlumni:  true,
}

// List returns sessions ordered by start, optionally filtered by derived status.
func (s *SessionService) List(ctx context.Context, filter ports.SessionFilter) ([]*domain.Session, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]*domain.Session, 0, len(sessions))
	for _, sess := range sessions {
		s.derive(sess, now)
		if filter.Status != "" && sess.Status != filter.Status {
			continue
		}
		out = append(out, sess)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.derive(sess, s.now())
	return sess, nil
}

// Stats counts sessions by derived status.
func (s *SessionService) Stats(ctx context.Context) (*ports.SessionStats, error) {
	sessions, err := s.List(ctx, ports.SessionFilter{})
	if err != nil {
		return nil, err
	}
	stats := &ports.SessionStats{Total: len(sessions)}
	for _, sess := range sessions {
		switch sess.Status {
		case domain.SessionUpcoming:
			stats.Upcoming++
		case domain.SessionOngoing:
			stats.Ongoing++
		case domain.SessionCompleted:
			stats.Completed++
		case domain.SessionCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

func (s *SessionService) Create(ctx context.Context, actor ports.Actor, input ports.CreateSessionInput) (*domain.Session, error) {
	if !sessionHosts[actor.Role] {
		return nil, domain.ErrForbidden
	}

	sess := &domain.Session{
		Title:            sanitize.Text(input.Title),
		Description:      sanitize.Text(input.Description),
		Date:             strings.TrimSpace(input.Date),
		Time:             strings.TrimSpace(input.Time),
		Venue:            sanitize.Text(input.Venue),
		SessionHead:      sanitize.Text(input.SessionHead),
		HostID:           actor.UserID,
		MaxParticipants:  input.MaxParticipants,
		Participants:     []string{},
		Status:           domain.SessionUpcoming,
		MeetingLink:      strings.TrimSpace(input.MeetingLink),
		FeedbackFormLink: strings.TrimSpace(input.FeedbackFormLink),
	}
	if sess.MaxParticipants == 0 {
		sess.MaxParticipants = domain.DefaultMaxParticipants
	}
	if err := s.validate(sess); err != nil {
		return nil, err
	}
	if err := s.requireFuture(sess); err != nil {
		return nil, err
	}

	if sess.SessionHead == "" {
		host, err := s.users.FindByID(ctx, actor.UserID)
		if err != nil {
			return nil, fmt.Errorf("resolve session head: %w", err)
		}
		sess.SessionHead = host.FullName
	}

	now := s.now().UTC()
	sess.CreatedAt = now
	sess.UpdatedAt = now
	if err := s.repo.Create(ctx, sess); err != nil {
		s.logger.Error().Err(err).Msg("failed to create session")
		return nil, err
	}

	s.logger.Info().Str("session_id", sess.ID).Str("host_id", actor.UserID).Msg("session created")
	s.derive(sess, s.now())
	return sess, nil
}

// Update applies a partial admin edit. The only status an admin may set is
// cancelled, and only before the session has completed.
func (s *SessionService) Update(ctx context.Context, actor ports.Actor, id string, input ports.UpdateSessionInput) (*domain.Session, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	sess, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current, err := s.classifier.Classify(sess, s.now())
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", id).Msg("stored session has malformed schedule")
	}

	if input.Status != nil && *input.Status != current {
		if *input.Status != domain.SessionCancelled {
			return nil, fmt.Errorf("%w: status can only be set to cancelled", domain.ErrInvalidTransition)
		}
		if current != domain.SessionUpcoming && current != domain.SessionOngoing {
			return nil, fmt.Errorf("%w: a %s session cannot be cancelled", domain.ErrInvalidTransition, current)
		}
		sess.Status = domain.SessionCancelled
	}

	rescheduled := false
	setText(&sess.Title, input.Title)
	setText(&sess.Description, input.Description)
	setText(&sess.Venue, input.Venue)
	setText(&sess.SessionHead, input.SessionHead)
	if input.Date != nil {
		sess.Date = strings.TrimSpace(*input.Date)
		rescheduled = true
	}
	if input.Time != nil {
		sess.Time = strings.TrimSpace(*input.Time)
		rescheduled = true
	}
	if input.MaxParticipants != nil {
		sess.MaxParticipants = *input.MaxParticipants
	}
	if input.MeetingLink != nil {
		sess.MeetingLink = strings.TrimSpace(*input.MeetingLink)
	}
	if input.FeedbackFormLink != nil {
		sess.FeedbackFormLink = strings.TrimSpace(*input.FeedbackFormLink)
	}

	if err := s.validate(sess); err != nil {
		return nil, err
	}
	if rescheduled {
		if err := s.requireFuture(sess); err != nil {
			return nil, err
		}
	}
	if sess.SessionHead == "" {
		return nil, domain.Invalid("session head is required")
	}

	sess.UpdatedAt = s.now().UTC()
	updated, err := s.repo.Update(ctx, sess)
	if err != nil {
		if errors.Is(err, ports.ErrNoMatch) {
			return nil, s.explainUpdateMiss(ctx, id)
		}
		return nil, err
	}

	s.logger.Info().Str("session_id", id).Str("status", string(updated.Status)).Msg("session updated")
	if updated.Status == domain.SessionCancelled && current != domain.SessionCancelled {
		s.notifyParticipants(ctx, updated, ports.NotificationInput{
			Title:   "Session cancelled",
			Message: fmt.Sprintf("%q scheduled for %s %s has been cancelled.", updated.Title, updated.Date, updated.Time),
			Type:    domain.NotificationWarning,
		})
	}
	s.derive(updated, s.now())
	return updated, nil
}

func (s *SessionService) explainUpdateMiss(ctx context.Context, id string) error {
	latest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return domain.Invalid("max participants cannot be lower than the %d users already joined", len(latest.Participants))
}

func (s *SessionService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("session_id", id).Msg("session deleted")
	return nil
}

// Join adds the actor to the session's participants. Capacity and duplicate
// membership are enforced by a single conditional write, so concurrent joins
// can never overfill a session.
func (s *SessionService) Join(ctx context.Context, actor ports.Actor, id string) (*domain.Session, error) {
	sess, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOpen(sess); err != nil {
		return nil, err
	}

	updated, err := s.repo.AddParticipant(ctx, id, actor.UserID, s.now().UTC())
	if err != nil {
		if errors.Is(err, ports.ErrNoMatch) {
			return nil, s.explainJoinMiss(ctx, id, actor.UserID)
		}
		return nil, err
	}

	s.logger.Info().Str("session_id", id).Str("user_id", actor.UserID).Int("participants", len(updated.Participants)).Msg("session joined")
	if err := s.notifier.Notify(ctx, actor.UserID, ports.NotificationInput{
		Title:   "Session joined",
		Message: fmt.Sprintf("You are registered for %q on %s at %s, %s.", updated.Title, updated.Date, updated.Time, updated.Venue),
		Type:    domain.NotificationSuccess,
		Link:    updated.MeetingLink,
	}); err != nil {
		s.logger.Warn().Err(err).Str("session_id", id).Msg("join notification failed")
	}
	s.derive(updated, s.now())
	return updated, nil
}

// explainJoinMiss works out which precondition a rejected join violated.
func (s *SessionService) explainJoinMiss(ctx context.Context, id, userID string) error {
	latest, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	switch {
	case latest.Status == domain.SessionCancelled:
		return domain.ErrSessionClosed
	case latest.IsFull():
		return domain.ErrSessionFull
	case latest.HasParticipant(userID):
		return domain.ErrAlreadyJoined
	}
	return fmt.Errorf("join session %s: %w", id, ports.ErrNoMatch)
}

// Leave removes the actor from an upcoming or ongoing session.
func (s *SessionService) Leave(ctx context.Context, actor ports.Actor, id string) (*domain.Session, error) {
	sess, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOpen(sess); err != nil {
		return nil, err
	}

	updated, err := s.repo.RemoveParticipant(ctx, id, actor.UserID, s.now().UTC())
	if err != nil {
		if errors.Is(err, ports.ErrNoMatch) {
			if _, ferr := s.repo.FindByID(ctx, id); ferr != nil {
				return nil, ferr
			}
			return nil, domain.ErrNotParticipant
		}
		return nil, err
	}
	s.logger.Info().Str("session_id", id).Str("user_id", actor.UserID).Msg("session left")
	s.derive(updated, s.now())
	return updated, nil
}

func (s *SessionService) requireOpen(sess *domain.Session) error {
	status, err := s.classifier.Classify(sess, s.now())
	if err != nil {
		return err
	}
	if status == domain.SessionCancelled || status == domain.SessionCompleted {
		return domain.ErrSessionClosed
	}
	return nil
}

func (s *SessionService) requireFuture(sess *domain.Session) error {
	start, _, err := s.classifier.Window(sess)
	if err != nil {
		return err
	}
	if !start.After(s.now()) {
		return domain.Invalid("session must be scheduled in the future")
	}
	return nil
}

func (s *SessionService) validate(sess *domain.Session) error {
	switch {
	case sess.Title == "":
		return domain.Invalid("title is required")
	case sess.Description == "":
		return domain.Invalid("description is required")
	case sess.Venue == "":
		return domain.Invalid("venue is required")
	case sess.MaxParticipants < 1:
		return domain.Invalid("max participants must be at least 1")
	case sess.MaxParticipants < len(sess.Participants):
		return domain.Invalid("max participants cannot be lower than the %d users already joined", len(sess.Participants))
	}
	if _, err := domain.ParseSchedule(sess.Date, sess.Time, s.classifier.Location); err != nil {
		return err
	}
	return nil
}

// derive overwrites sess.Status with the clock-derived value.
func (s *SessionService) derive(sess *domain.Session, now time.Time) {
	status, err := s.classifier.Classify(sess, now)
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("cannot classify session, keeping stored status")
		return
	}
	sess.Status = status
}

func (s *SessionService) notifyParticipants(ctx context.Context, sess *domain.Session, input ports.NotificationInput) {
	for _, uid := range sess.Participants {
		if err := s.notifier.Notify(ctx, uid, input); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sess.ID).Str("user_id", uid).Msg("participant notification failed")
		}
	}
}

func setText(dst *string, src *string) {
	if src != nil {
		*dst = sanitize.Text(*src)
	}
}
