package queue

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Delivery outcomes reported to the observer.
const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeDropped = "dropped"
)

// Dispatcher delivers mail on a fixed set of workers. Mail for the same
// recipient always lands on the same worker, so a user receives messages in
// the order they were enqueued.
type Dispatcher struct {
	workers []chan ports.Mail
	mailer  ports.Mailer
	log     zerolog.Logger
	observe func(outcome string)

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.Mail, numWorkers),
		mailer:  mailer,
		log:     log,
		observe: func(string) {},
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Mail, channelBuffer)
	}
	return d
}

// OnOutcome registers fn to be called once per mail with its outcome.
// Must be called before Start.
func (d *Dispatcher) OnOutcome(fn func(outcome string)) {
	if fn != nil {
		d.observe = fn
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled
// or after Close once their queue is drained.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands m to the worker responsible for its recipient. It never
// blocks: when that worker's buffer is full the mail is dropped and logged.
func (d *Dispatcher) Enqueue(m ports.Mail) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.observe(OutcomeDropped)
		return
	}
	select {
	case d.workers[d.shardIndex(m.To)] <- m:
	default:
		d.observe(OutcomeDropped)
		d.log.Warn().Str("to", m.To).Str("subject", m.Subject).Msg("mail queue full, dropping message")
	}
}

// Close stops accepting mail and waits for the workers to drain what is
// already queued.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		for _, ch := range d.workers {
			close(ch)
		}
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(recipient)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Mail) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			if err := d.mailer.Send(ctx, m); err != nil {
				d.observe(OutcomeFailed)
				d.log.Error().Err(err).
					Str("to", m.To).
					Int("worker_id", id).
					Msg("mail delivery failed")
				continue
			}
			d.observe(OutcomeSent)
		}
	}
}
