package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

type captured struct {
	calls int
	addr  string
	from  string
	to    []string
	msg   string
}

func (c *captured) send(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
	c.calls++
	c.addr, c.from, c.to, c.msg = addr, from, to, string(msg)
	return nil
}

func TestSend_WithoutCredentialsSkipsDelivery(t *testing.T) {
	var c captured
	m := NewSMTPMailer(Config{Host: "smtp.example.com", Port: 587}, zerolog.Nop())
	m.send = c.send

	if err := m.Send(context.Background(), ports.Mail{To: "a@b.com", Subject: "hi"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if c.calls != 0 {
		t.Errorf("expected no SMTP call, got %d", c.calls)
	}
}

func TestSend_RendersAndDelivers(t *testing.T) {
	var c captured
	m := NewSMTPMailer(Config{
		Host: "smtp.example.com", Port: 587,
		Username: "bot@example.com", Password: "secret",
	}, zerolog.Nop())
	m.send = c.send

	err := m.Send(context.Background(), ports.Mail{
		To:      "ravi@uni.edu",
		Name:    "Ravi <b>",
		Subject: "Session cancelled",
		Body:    "Career talk was cancelled",
		Link:    "https://portal.example.com/sessions",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.calls != 1 {
		t.Fatalf("expected 1 SMTP call, got %d", c.calls)
	}
	if c.addr != "smtp.example.com:587" {
		t.Errorf("addr: got %q", c.addr)
	}
	if c.from != "bot@example.com" {
		t.Errorf("from should fall back to username, got %q", c.from)
	}
	if len(c.to) != 1 || c.to[0] != "ravi@uni.edu" {
		t.Errorf("to: got %v", c.to)
	}
	for _, want := range []string{
		"Subject: Session cancelled\r\n",
		"Career talk was cancelled",
		`href="https://portal.example.com/sessions"`,
		"Ravi &lt;b&gt;",
	} {
		if !strings.Contains(c.msg, want) {
			t.Errorf("message missing %q:\n%s", want, c.msg)
		}
	}
}

func TestSend_WrapsTransportError(t *testing.T) {
	boom := errors.New("connection refused")
	m := NewSMTPMailer(Config{Host: "h", Port: 25, Username: "u", Password: "p"}, zerolog.Nop())
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	err := m.Send(context.Background(), ports.Mail{To: "x@y.z"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}
