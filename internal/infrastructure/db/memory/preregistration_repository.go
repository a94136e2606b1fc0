package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

type PreRegistrationRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.PreRegistration
}

func NewPreRegistrationRepository() *PreRegistrationRepository {
	return &PreRegistrationRepository{records: make(map[string]*domain.PreRegistration)}
}

func clonePreRegistration(p *domain.PreRegistration) *domain.PreRegistration {
	c := *p
	if p.RegisteredAt != nil {
		at := *p.RegisteredAt
		c.RegisteredAt = &at
	}
	return &c
}

func (r *PreRegistrationRepository) byEmail(email string) *domain.PreRegistration {
	for _, p := range r.records {
		if p.Email == email {
			return p
		}
	}
	return nil
}

func (r *PreRegistrationRepository) Create(_ context.Context, p *domain.PreRegistration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byEmail(p.Email) != nil {
		return domain.ErrDuplicatePreRegistration
	}
	if p.ID == "" {
		p.ID = newID()
	}
	r.records[p.ID] = clonePreRegistration(p)
	return nil
}

func (r *PreRegistrationRepository) Upsert(_ context.Context, p *domain.PreRegistration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.byEmail(p.Email)
	if existing == nil {
		if p.ID == "" {
			p.ID = newID()
		}
		r.records[p.ID] = clonePreRegistration(p)
		return true, nil
	}
	if existing.IsRegistered {
		return false, domain.ErrDuplicatePreRegistration
	}
	existing.FullName = p.FullName
	existing.Role = p.Role
	existing.RoleFields = p.RoleFields
	existing.PhoneNumber = p.PhoneNumber
	p.ID = existing.ID
	return false, nil
}

func (r *PreRegistrationRepository) FindUnregistered(_ context.Context, email string, role domain.Role) (*domain.PreRegistration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.records {
		if p.Email == email && p.Role == role && !p.IsRegistered {
			return clonePreRegistration(p), nil
		}
	}
	return nil, domain.ErrPreRegistrationNotFound
}

func (r *PreRegistrationRepository) MarkRegistered(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.records[id]
	if !ok || p.IsRegistered {
		return domain.ErrPreRegistrationNotFound
	}
	p.IsRegistered = true
	p.RegisteredAt = &at
	return nil
}

func (r *PreRegistrationRepository) List(_ context.Context, filter ports.PreRegistrationFilter) ([]*domain.PreRegistration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.PreRegistration, 0, len(r.records))
	for _, p := range r.records {
		if filter.Role != "" && p.Role != filter.Role {
			continue
		}
		if filter.Registered != nil && p.IsRegistered != *filter.Registered {
			continue
		}
		out = append(out, clonePreRegistration(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}
