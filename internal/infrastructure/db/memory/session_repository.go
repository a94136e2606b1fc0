package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]*domain.Session)}
}

func cloneSession(s *domain.Session) *domain.Session {
	c := *s
	c.Participants = append([]string{}, s.Participants...)
	return &c
}

func (r *SessionRepository) Create(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == "" {
		s.ID = newID()
	}
	r.sessions[s.ID] = cloneSession(s)
	return nil
}

func (r *SessionRepository) FindByID(_ context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return cloneSession(s), nil
}

func (r *SessionRepository) List(_ context.Context) ([]*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, cloneSession(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *SessionRepository) Update(_ context.Context, s *domain.Session) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.sessions[s.ID]
	if !ok || len(cur.Participants) > s.MaxParticipants {
		return nil, ports.ErrNoMatch
	}
	next := cloneSession(s)
	next.Participants = cur.Participants
	next.CreatedAt = cur.CreatedAt
	next.HostID = cur.HostID
	r.sessions[s.ID] = next
	return cloneSession(next), nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *SessionRepository) AddParticipant(_ context.Context, id, userID string, at time.Time) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.Status == domain.SessionCancelled || s.IsFull() || s.HasParticipant(userID) {
		return nil, ports.ErrNoMatch
	}
	s.Participants = append(s.Participants, userID)
	s.UpdatedAt = at
	return cloneSession(s), nil
}

func (r *SessionRepository) RemoveParticipant(_ context.Context, id, userID string, at time.Time) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ports.ErrNoMatch
	}
	kept := s.Participants[:0:0]
	for _, p := range s.Participants {
		if p != userID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(s.Participants) {
		return nil, ports.ErrNoMatch
	}
	s.Participants = kept
	s.UpdatedAt = at
	return cloneSession(s), nil
}
