package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
)

type NotificationRepository struct {
	mu    sync.RWMutex
	items []*domain.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == "" {
		n.ID = newID()
	}
	c := *n
	r.items = append(r.items, &c)
	return nil
}

func (r *NotificationRepository) ListByUser(_ context.Context, userID string, limit int) ([]*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Notification, 0)
	for _, n := range r.items {
		if n.UserID == userID {
			c := *n
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *NotificationRepository) CountUnread(_ context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, item := range r.items {
		if item.UserID == userID && !item.Read {
			n++
		}
	}
	return n, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID == id && item.UserID == userID {
			item.Read = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

func (r *NotificationRepository) MarkAllRead(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.items {
		if item.UserID == userID && !item.Read {
			item.Read = true
			n++
		}
	}
	return n, nil
}
