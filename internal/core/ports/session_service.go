package ports

import (
	"context"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
)

// CreateSessionInput carries the fields of a new session. MaxParticipants of
// zero selects the default capacity; an empty SessionHead defaults to the
// creator's name.
type CreateSessionInput struct {
	Title            string
	Description      string
	Date             string
	Time             string
	Venue            string
	SessionHead      string
	MaxParticipants  int
	MeetingLink      string
	FeedbackFormLink string
}

// UpdateSessionInput is a partial update; nil fields are left unchanged.
type UpdateSessionInput struct {
	Title            *string
	Description      *string
	Date             *string
	Time             *string
	Venue            *string
	SessionHead      *string
	MaxParticipants  *int
	MeetingLink      *string
	FeedbackFormLink *string
	Status           *domain.SessionStatus
}

type SessionFilter struct {
	Status domain.SessionStatus // optional, matched against the derived status
}

// SessionStats counts sessions by derived status.
type SessionStats struct {
	Total     int `json:"total"`
	Upcoming  int `json:"upcoming"`
	Ongoing   int `json:"ongoing"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// SessionService exposes the session registry. Returned sessions always carry
// the derived status.
type SessionService interface {
	List(ctx context.Context, filter SessionFilter) ([]*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Stats(ctx context.Context) (*SessionStats, error)
	Create(ctx context.Context, actor Actor, input CreateSessionInput) (*domain.Session, error)
	Update(ctx context.Context, actor Actor, id string, input UpdateSessionInput) (*domain.Session, error)
	Delete(ctx context.Context, actor Actor, id string) error
	Join(ctx context.Context, actor Actor, id string) (*domain.Session, error)
	Leave(ctx context.Context, actor Actor, id string) (*domain.Session, error)
}
