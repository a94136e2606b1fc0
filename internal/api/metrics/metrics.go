// Package metrics defines the custom Prometheus metrics of the alumni portal
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry on package init.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
)

const namespace = "campus_connect"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Label:
//   - outcome: "success", "not_pre_registered", "field_mismatch", "duplicate", "invalid", "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "invalid_credentials", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionJoinsTotal counts join attempts.
// Label:
//   - outcome: "success", "full", "already_joined", "closed", "not_found", "error"
var SessionJoinsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_joins_total",
		Help:      "Total number of session join attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionsCreatedTotal counts created sessions.
// Label:
//   - role: role of the host
var SessionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of sessions created, by host role.",
	},
	[]string{"role"},
)

// ── Ledger metrics ────────────────────────────────────────────────────────────

// LedgerRecordsTotal counts created submissions and placements.
// Label:
//   - kind: "submission" or "placement"
var LedgerRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_records_created_total",
		Help:      "Total number of submissions and placements created.",
	},
	[]string{"kind"},
)

// ReviewsTotal counts applied review decisions.
// Labels:
//   - kind: "submission" or "placement"
//   - status: the status the record moved to
var ReviewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_total",
		Help:      "Total number of review transitions applied.",
	},
	[]string{"kind", "status"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// MailDispatchedTotal counts notification emails by delivery outcome.
// Label:
//   - outcome: "sent", "failed", "dropped"
var MailDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_dispatched_total",
		Help:      "Total number of notification emails, by delivery outcome.",
	},
	[]string{"outcome"},
)

// MailOutcome is suitable as a dispatcher outcome observer.
func MailOutcome(outcome string) {
	MailDispatchedTotal.WithLabelValues(outcome).Inc()
}

// SignupOutcome maps a signup result to its label.
func SignupOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrNotPreRegistered):
		return "not_pre_registered"
	case errors.Is(err, domain.ErrFieldMismatch):
		return "field_mismatch"
	case errors.Is(err, domain.ErrDuplicateUser):
		return "duplicate"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}

func LoginOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrValidation):
		return "invalid_credentials"
	default:
		return "error"
	}
}

func JoinOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrSessionFull):
		return "full"
	case errors.Is(err, domain.ErrAlreadyJoined):
		return "already_joined"
	case errors.Is(err, domain.ErrSessionClosed):
		return "closed"
	case errors.Is(err, domain.ErrSessionNotFound):
		return "not_found"
	default:
		return "error"
	}
}
