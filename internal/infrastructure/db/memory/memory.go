// Package memory provides in-process implementations of the repository ports.
// They back STORAGE=memory for local development and the service tests, and
// mirror the conditional-write semantics of the MongoDB repositories.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

// Transactor serialises transactional callbacks. It offers no rollback;
// callers compensate on failure.
type Transactor struct {
	mu sync.Mutex
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
