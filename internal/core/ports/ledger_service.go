package ports

import (
	"context"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
)

type CreateSubmissionInput struct {
	Title          string
	Description    string
	Category       string
	AdditionalInfo string
}

type CreatePlacementInput struct {
	Company   string
	Position  string
	Type      domain.PlacementType
	Package   string
	Location  string
	StartDate string
}

// ReviewInput is an admin decision on a ledger record.
type ReviewInput struct {
	Status domain.ReviewStatus
	Note   string
}

type SubmissionService interface {
	Create(ctx context.Context, actor Actor, input CreateSubmissionInput) (*domain.Submission, error)
	// List returns the caller's own submissions, or every submission for admins.
	List(ctx context.Context, actor Actor, filter LedgerFilter) ([]*domain.Submission, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Submission, error)
	Review(ctx context.Context, actor Actor, id string, input ReviewInput) (*domain.Submission, error)
}

type PlacementService interface {
	Create(ctx context.Context, actor Actor, input CreatePlacementInput) (*domain.Placement, error)
	List(ctx context.Context, actor Actor, filter LedgerFilter) ([]*domain.Placement, error)
	Get(ctx context.Context, actor Actor, id string) (*domain.Placement, error)
	Review(ctx context.Context, actor Actor, id string, input ReviewInput) (*domain.Placement, error)
	Delete(ctx context.Context, actor Actor, id string) error
}
