package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateUser
		}
	}
	c := cloneUser(user)
	if c.ID == "" {
		c.ID = newID()
	}
	r.users[c.ID] = c
	return cloneUser(c), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) List(_ context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id string, update ports.ProfileUpdate, at time.Time) (*domain.User, error) {
	return r.mutate(id, at, func(u *domain.User) {
		if update.FullName != nil {
			u.FullName = *update.FullName
		}
		if update.PhoneNumber != nil {
			u.PhoneNumber = *update.PhoneNumber
		}
		if update.Designation != nil {
			u.Designation = *update.Designation
		}
	})
}

func (r *UserRepository) UpdatePassword(_ context.Context, id, hash string, at time.Time) error {
	_, err := r.mutate(id, at, func(u *domain.User) { u.PasswordHash = hash })
	return err
}

func (r *UserRepository) SetActive(_ context.Context, id string, active bool, at time.Time) (*domain.User, error) {
	return r.mutate(id, at, func(u *domain.User) { u.IsActive = active })
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepository) mutate(id string, at time.Time, fn func(u *domain.User)) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	fn(u)
	u.UpdatedAt = at
	return cloneUser(u), nil
}
