package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Recording stubs
// ---------------------------------------------------------------------------

type sentNotification struct {
	UserID string
	Role   domain.Role
	Input  ports.NotificationInput
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, userID string, in ports.NotificationInput) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{UserID: userID, Input: in})
	return n.err
}

func (n *recordingNotifier) NotifyRole(_ context.Context, role domain.Role, in ports.NotificationInput) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentNotification{Role: role, Input: in})
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type recordingQueue struct {
	mu   sync.Mutex
	mail []ports.Mail
}

func (q *recordingQueue) Enqueue(m ports.Mail) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.mail = append(q.mail, m)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func seedUser(t *testing.T, repo ports.UserRepository, u domain.User) *domain.User {
	t.Helper()
	u.IsActive = true
	created, err := repo.Create(context.Background(), &u)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return created
}

func actorOf(u *domain.User) ports.Actor {
	return ports.Actor{UserID: u.ID, Role: u.Role}
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

var nop = zerolog.Nop()
