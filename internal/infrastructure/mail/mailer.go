// Package mail delivers notification emails over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

// Config holds the SMTP settings. An empty Username or Password switches the
// mailer to log-only mode.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c Config) configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

var body = template.Must(template.New("notification").Parse(`<html>
<body>
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<p>Hello {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
<p>{{.Body}}</p>
{{if .Link}}<p><a href="{{.Link}}">Open Campus Connect</a></p>{{end}}
<p>The Campus Connect Team</p>
</div>
</body>
</html>`))

// SMTPMailer implements ports.Mailer.
type SMTPMailer struct {
	cfg    Config
	logger zerolog.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg Config, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger, send: smtp.SendMail}
}

func (m *SMTPMailer) Send(ctx context.Context, msg ports.Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.cfg.configured() {
		m.logger.Warn().
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("SMTP credentials not configured, email not sent")
		return nil
	}

	raw, err := m.render(msg)
	if err != nil {
		return err
	}
	addr := m.cfg.Host + ":" + strconv.Itoa(m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := m.send(addr, auth, m.from(), []string{msg.To}, raw); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

func (m *SMTPMailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.Username
}

// render produces the full RFC 5322 message including headers.
func (m *SMTPMailer) render(msg ports.Mail) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: Campus Connect <%s>\r\n", m.from())
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	if err := body.Execute(&buf, msg); err != nil {
		return nil, fmt.Errorf("render mail: %w", err)
	}
	return buf.Bytes(), nil
}
