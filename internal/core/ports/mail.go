package ports

import "context"

// Mail is an outbound email rendered by the Mailer.
type Mail struct {
	To      string
	Name    string
	Subject string
	Body    string
	Link    string
}

// Mailer delivers a single email.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// MailQueue accepts mail for asynchronous delivery. Enqueue never blocks the
// caller on delivery.
type MailQueue interface {
	Enqueue(m Mail)
}
