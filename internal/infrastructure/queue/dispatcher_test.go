package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub mailer
// ---------------------------------------------------------------------------

type stubMailer struct {
	mu    sync.Mutex
	sent  map[string][]string
	fail  string
	block chan struct{}
}

func newStubMailer() *stubMailer {
	return &stubMailer{sent: make(map[string][]string)}
}

func (s *stubMailer) Send(_ context.Context, m ports.Mail) error {
	if s.block != nil {
		<-s.block
	}
	if m.To == s.fail {
		return errors.New("smtp down")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent[m.To] = append(s.sent[m.To], m.Subject)
	return nil
}

type outcomes struct {
	mu     sync.Mutex
	counts map[string]int
}

func (o *outcomes) record(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = make(map[string]int)
	}
	o.counts[outcome]++
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestDispatcher_PreservesOrderPerRecipient(t *testing.T) {
	mailer := newStubMailer()
	d := NewDispatcher(4, mailer, zerolog.Nop())
	d.Start(context.Background())

	subjects := []string{"one", "two", "three", "four", "five"}
	for _, s := range subjects {
		d.Enqueue(ports.Mail{To: "ravi@uni.edu", Subject: s})
		d.Enqueue(ports.Mail{To: "meena@uni.edu", Subject: s})
	}
	d.Close()

	for _, to := range []string{"ravi@uni.edu", "meena@uni.edu"} {
		got := mailer.sent[to]
		if len(got) != len(subjects) {
			t.Fatalf("%s: expected %d mails, got %d", to, len(subjects), len(got))
		}
		for i := range subjects {
			if got[i] != subjects[i] {
				t.Errorf("%s: position %d got %q want %q", to, i, got[i], subjects[i])
			}
		}
	}
}

func TestDispatcher_ReportsOutcomes(t *testing.T) {
	mailer := newStubMailer()
	mailer.fail = "bad@uni.edu"
	var o outcomes
	d := NewDispatcher(2, mailer, zerolog.Nop())
	d.OnOutcome(o.record)
	d.Start(context.Background())

	d.Enqueue(ports.Mail{To: "good@uni.edu"})
	d.Enqueue(ports.Mail{To: "bad@uni.edu"})
	d.Close()

	if o.counts[OutcomeSent] != 1 || o.counts[OutcomeFailed] != 1 {
		t.Errorf("unexpected outcomes: %v", o.counts)
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	mailer := newStubMailer()
	mailer.block = make(chan struct{})
	var o outcomes
	d := NewDispatcher(1, mailer, zerolog.Nop())
	d.OnOutcome(o.record)
	d.Start(context.Background())

	// One mail is held by the blocked worker; the buffer absorbs the rest.
	for i := 0; i < channelBuffer+5; i++ {
		d.Enqueue(ports.Mail{To: "ravi@uni.edu"})
	}
	o.mu.Lock()
	dropped := o.counts[OutcomeDropped]
	o.mu.Unlock()
	if dropped < 4 {
		t.Errorf("expected at least 4 dropped mails, got %d", dropped)
	}

	close(mailer.block)
	d.Close()
}

func TestDispatcher_EnqueueAfterCloseIsDropped(t *testing.T) {
	var o outcomes
	d := NewDispatcher(1, newStubMailer(), zerolog.Nop())
	d.OnOutcome(o.record)
	d.Start(context.Background())
	d.Close()

	d.Enqueue(ports.Mail{To: "late@uni.edu"})
	if o.counts[OutcomeDropped] != 1 {
		t.Errorf("expected the late mail to be dropped, got %v", o.counts)
	}
}

func TestShardIndex_IsCaseInsensitive(t *testing.T) {
	d := NewDispatcher(8, newStubMailer(), zerolog.Nop())
	if d.shardIndex("Ravi@Uni.edu") != d.shardIndex("ravi@uni.edu") {
		t.Error("same recipient should map to the same worker")
	}
}
