package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("access forbidden")
	ErrUnauthorized = errors.New("authentication required")
)

// Identity errors.
var (
	ErrDuplicateUser            = errors.New("user already registered, please sign in")
	ErrNotPreRegistered         = errors.New("no pre-registration found for this email and role, please contact the administrator")
	ErrFieldMismatch            = errors.New("registration details do not match our records")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrNotEligible              = errors.New("no pending pre-registration found for this email and role")
	ErrUserNotFound             = errors.New("user not found")
	ErrPreRegistrationNotFound  = errors.New("pre-registration not found")
	ErrDuplicatePreRegistration = errors.New("a pre-registration already exists for this email")
)

// Session errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFull     = errors.New("session is full")
	ErrAlreadyJoined   = errors.New("already joined this session")
	ErrNotParticipant  = errors.New("not a participant of this session")
	ErrSessionClosed   = errors.New("session is no longer open")
)

// Ledger errors.
var (
	ErrIneligible           = errors.New("your year of study is not eligible for this action")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrPlacementNotFound    = errors.New("placement not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrNotificationNotFound = errors.New("notification not found")
)

// ValidationError carries a client-facing message and matches ErrValidation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid builds a ValidationError from a format string.
func Invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// FieldMismatchError names the first identity field that disagreed with the
// pre-registration record.
type FieldMismatchError struct {
	Field string
}

func (e *FieldMismatchError) Error() string {
	return e.Field + " does not match our records"
}

func (e *FieldMismatchError) Is(target error) bool { return target == ErrFieldMismatch }
