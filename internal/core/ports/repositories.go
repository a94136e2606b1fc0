package ports

import (
	"context"
	"errors"
	"time"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
)

// ErrNoMatch is returned by conditional writes whose filter matched nothing.
// Callers re-read the document to work out why.
var ErrNoMatch = errors.New("conditional write matched no document")

// Transactor runs fn so that all repository writes made through the ctx it
// receives commit or roll back together.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository persists accounts.
type UserRepository interface {
	// Create inserts user and returns it with its generated ID.
	// Returns domain.ErrDuplicateUser if the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns users sorted by name; an empty role lists everyone.
	List(ctx context.Context, role domain.Role) ([]*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate, at time.Time) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, hash string, at time.Time) error
	SetActive(ctx context.Context, id string, active bool, at time.Time) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// ProfileUpdate lists the self-service fields a user may change. Nil means
// leave unchanged.
type ProfileUpdate struct {
	FullName    *string
	PhoneNumber *string
	Designation *string
}

// PreRegistrationRepository persists the signup allow-list.
type PreRegistrationRepository interface {
	// Create returns domain.ErrDuplicatePreRegistration when the email exists.
	Create(ctx context.Context, p *domain.PreRegistration) error
	// Upsert creates the record or refreshes an unconsumed one with the same
	// email. Consumed records are left alone and reported as
	// domain.ErrDuplicatePreRegistration.
	Upsert(ctx context.Context, p *domain.PreRegistration) (created bool, err error)
	// FindUnregistered returns the pending record for (email, role) or
	// domain.ErrPreRegistrationNotFound.
	FindUnregistered(ctx context.Context, email string, role domain.Role) (*domain.PreRegistration, error)
	// MarkRegistered flips isRegistered only if it is still false, returning
	// domain.ErrPreRegistrationNotFound otherwise.
	MarkRegistered(ctx context.Context, id string, at time.Time) error
	List(ctx context.Context, filter PreRegistrationFilter) ([]*domain.PreRegistration, error)
}

type PreRegistrationFilter struct {
	Role       domain.Role // optional
	Registered *bool       // optional
}

// SessionRepository persists mentoring sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	FindByID(ctx context.Context, id string) (*domain.Session, error)
	// List returns all sessions ordered by date then time.
	List(ctx context.Context) ([]*domain.Session, error)
	// Update writes the editable fields of s. It matches only while the
	// current participant count fits within s.MaxParticipants and returns
	// ErrNoMatch otherwise.
	Update(ctx context.Context, s *domain.Session) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	// AddParticipant appends userID in one atomic step, provided the session
	// exists, is not cancelled, has a free seat and does not already list the
	// user. Returns ErrNoMatch when any condition fails.
	AddParticipant(ctx context.Context, id, userID string, at time.Time) (*domain.Session, error)
	// RemoveParticipant pulls userID, returning ErrNoMatch if it was absent.
	RemoveParticipant(ctx context.Context, id, userID string, at time.Time) (*domain.Session, error)
}

// ReviewUpdate moves a ledger record from one review status to another.
type ReviewUpdate struct {
	From       domain.ReviewStatus
	To         domain.ReviewStatus
	ReviewedBy string
	Note       string
	At         time.Time
}

// SubmissionRepository persists student submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, s *domain.Submission) error
	FindByID(ctx context.Context, id string) (*domain.Submission, error)
	// List returns submissions newest first.
	List(ctx context.Context, filter LedgerFilter) ([]*domain.Submission, error)
	// UpdateReview applies u only while the stored status equals u.From.
	UpdateReview(ctx context.Context, id string, u ReviewUpdate) (*domain.Submission, error)
}

// PlacementRepository persists student placement records.
type PlacementRepository interface {
	Create(ctx context.Context, p *domain.Placement) error
	FindByID(ctx context.Context, id string) (*domain.Placement, error)
	List(ctx context.Context, filter LedgerFilter) ([]*domain.Placement, error)
	UpdateReview(ctx context.Context, id string, u ReviewUpdate) (*domain.Placement, error)
	Delete(ctx context.Context, id string) error
}

// LedgerFilter narrows submission and placement listings.
type LedgerFilter struct {
	StudentID string              // empty = all students (admin)
	Status    domain.ReviewStatus // optional
	Type      string              // optional: submission category or placement type
}

// NotificationRepository persists in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// ListByUser returns the newest notifications first; limit <= 0 means all.
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkRead returns domain.ErrNotificationNotFound if the notification
	// does not exist or belongs to another user.
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// TokenDenylist records revoked token IDs until they would have expired.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
