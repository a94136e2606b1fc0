package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

type SubmissionRepository struct {
	mu          sync.RWMutex
	submissions map[string]*domain.Submission
}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{submissions: make(map[string]*domain.Submission)}
}

func cloneSubmission(s *domain.Submission) *domain.Submission {
	c := *s
	if s.ReviewedAt != nil {
		at := *s.ReviewedAt
		c.ReviewedAt = &at
	}
	return &c
}

func (r *SubmissionRepository) Create(_ context.Context, s *domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = newID()
	}
	r.submissions[s.ID] = cloneSubmission(s)
	return nil
}

func (r *SubmissionRepository) FindByID(_ context.Context, id string) (*domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.submissions[id]
	if !ok {
		return nil, domain.ErrSubmissionNotFound
	}
	return cloneSubmission(s), nil
}

func (r *SubmissionRepository) List(_ context.Context, f ports.LedgerFilter) ([]*domain.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Submission, 0)
	for _, s := range r.submissions {
		if !matchLedger(f, s.StudentID, s.Status, s.Category) {
			continue
		}
		out = append(out, cloneSubmission(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (r *SubmissionRepository) UpdateReview(_ context.Context, id string, u ports.ReviewUpdate) (*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.submissions[id]
	if !ok || s.Status != u.From {
		return nil, ports.ErrNoMatch
	}
	s.Review = domain.Review{Status: u.To, ReviewedBy: u.ReviewedBy, ReviewNote: u.Note}
	at := u.At
	s.ReviewedAt = &at
	return cloneSubmission(s), nil
}

type PlacementRepository struct {
	mu         sync.RWMutex
	placements map[string]*domain.Placement
}

func NewPlacementRepository() *PlacementRepository {
	return &PlacementRepository{placements: make(map[string]*domain.Placement)}
}

func clonePlacement(p *domain.Placement) *domain.Placement {
	c := *p
	if p.ReviewedAt != nil {
		at := *p.ReviewedAt
		c.ReviewedAt = &at
	}
	return &c
}

func (r *PlacementRepository) Create(_ context.Context, p *domain.Placement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = newID()
	}
	r.placements[p.ID] = clonePlacement(p)
	return nil
}

func (r *PlacementRepository) FindByID(_ context.Context, id string) (*domain.Placement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.placements[id]
	if !ok {
		return nil, domain.ErrPlacementNotFound
	}
	return clonePlacement(p), nil
}

func (r *PlacementRepository) List(_ context.Context, f ports.LedgerFilter) ([]*domain.Placement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Placement, 0)
	for _, p := range r.placements {
		if !matchLedger(f, p.StudentID, p.Status, string(p.Type)) {
			continue
		}
		out = append(out, clonePlacement(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (r *PlacementRepository) UpdateReview(_ context.Context, id string, u ports.ReviewUpdate) (*domain.Placement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.placements[id]
	if !ok || p.Status != u.From {
		return nil, ports.ErrNoMatch
	}
	p.Review = domain.Review{Status: u.To, ReviewedBy: u.ReviewedBy, ReviewNote: u.Note}
	at := u.At
	p.ReviewedAt = &at
	return clonePlacement(p), nil
}

func (r *PlacementRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.placements[id]; !ok {
		return domain.ErrPlacementNotFound
	}
	delete(r.placements, id)
	return nil
}

func matchLedger(f ports.LedgerFilter, studentID string, status domain.ReviewStatus, typ string) bool {
	if f.StudentID != "" && f.StudentID != studentID {
		return false
	}
	if f.Status != "" && f.Status != status {
		return false
	}
	if f.Type != "" && f.Type != typ {
		return false
	}
	return true
}
