package ports

import (
	"context"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
)

// NotificationInput is the content of a notification before it is addressed.
type NotificationInput struct {
	Title   string
	Message string
	Type    domain.NotificationType
	Link    string
}

// Notifier delivers notifications. Failures never affect the operation that
// triggered them, so callers only log returned errors.
type Notifier interface {
	Notify(ctx context.Context, userID string, input NotificationInput) error
	NotifyRole(ctx context.Context, role domain.Role, input NotificationInput) error
}

// Inbox is the per-user view of stored notifications.
type Inbox struct {
	Notifications []*domain.Notification `json:"notifications"`
	Unread        int64                  `json:"unread"`
}

type NotificationService interface {
	Notifier
	Inbox(ctx context.Context, userID string, limit int) (*Inbox, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
