package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
)

func TestOutcomeLabels(t *testing.T) {
	tests := []struct {
		name string
		fn   func(error) string
		err  error
		want string
	}{
		{"signup ok", SignupOutcome, nil, "success"},
		{"signup not pre-registered", SignupOutcome, domain.ErrNotPreRegistered, "not_pre_registered"},
		{"signup mismatch", SignupOutcome, &domain.FieldMismatchError{Field: "Student ID"}, "field_mismatch"},
		{"signup duplicate", SignupOutcome, domain.ErrDuplicateUser, "duplicate"},
		{"signup invalid", SignupOutcome, domain.Invalid("email is required"), "invalid"},
		{"signup other", SignupOutcome, errors.New("db down"), "error"},
		{"login bad", LoginOutcome, domain.ErrInvalidCredentials, "invalid_credentials"},
		{"join full", JoinOutcome, fmt.Errorf("wrap: %w", domain.ErrSessionFull), "full"},
		{"join twice", JoinOutcome, domain.ErrAlreadyJoined, "already_joined"},
		{"join closed", JoinOutcome, domain.ErrSessionClosed, "closed"},
		{"join missing", JoinOutcome, domain.ErrSessionNotFound, "not_found"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.err); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
