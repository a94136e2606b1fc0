package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

const defaultInboxLimit = 50

// NotificationService stores in-app notifications and queues a matching
// email for each one.
type NotificationService struct {
	repo   ports.NotificationRepository
	users  ports.UserRepository
	mail   ports.MailQueue
	link   string
	logger zerolog.Logger
	now    func() time.Time
}

// NewNotificationService builds the service. frontendURL is used as the
// default call-to-action link in emails.
func NewNotificationService(repo ports.NotificationRepository, users ports.UserRepository, mail ports.MailQueue, frontendURL string, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		users:  users,
		mail:   mail,
		link:   frontendURL,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *NotificationService) Notify(ctx context.Context, userID string, input ports.NotificationInput) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("notify %s: %w", userID, err)
	}
	return s.deliver(ctx, user, input)
}

// NotifyRole fans input out to every active user holding role. Individual
// delivery failures are collected and do not stop the fan-out.
func (s *NotificationService) NotifyRole(ctx context.Context, role domain.Role, input ports.NotificationInput) error {
	users, err := s.users.List(ctx, role)
	if err != nil {
		return fmt.Errorf("list %s users: %w", role, err)
	}
	var errs []error
	for _, u := range users {
		if !u.IsActive {
			continue
		}
		if err := s.deliver(ctx, u, input); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *NotificationService) deliver(ctx context.Context, user *domain.User, input ports.NotificationInput) error {
	typ := input.Type
	if typ == "" {
		typ = domain.NotificationInfo
	}
	n := &domain.Notification{
		UserID:    user.ID,
		Title:     input.Title,
		Message:   input.Message,
		Type:      typ,
		Link:      input.Link,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}

	link := input.Link
	if link == "" {
		link = s.link
	}
	s.mail.Enqueue(ports.Mail{
		To:      user.Email,
		Name:    user.FullName,
		Subject: input.Title,
		Body:    input.Message,
		Link:    link,
	})
	return nil
}

// Inbox returns the newest notifications for userID and the unread count.
func (s *NotificationService) Inbox(ctx context.Context, userID string, limit int) (*ports.Inbox, error) {
	if limit <= 0 || limit > defaultInboxLimit {
		limit = defaultInboxLimit
	}
	items, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &ports.Inbox{Notifications: items, Unread: unread}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
