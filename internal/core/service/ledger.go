package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

// eligibleStudent loads the acting student and checks the year-of-study gate
// shared by submissions and placements.
func eligibleStudent(ctx context.Context, users ports.UserRepository, policy domain.EligibilityPolicy, actor ports.Actor) (*domain.User, error) {
	if actor.Role != domain.RoleStudent {
		return nil, domain.ErrForbidden
	}
	student, err := users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !policy.Allows(student.YearOfStudy) {
		return nil, domain.ErrIneligible
	}
	return student, nil
}

// ledgerScope restricts a listing to what the actor may see: students see
// their own records, admins see everything.
func ledgerScope(actor ports.Actor, filter ports.LedgerFilter) (ports.LedgerFilter, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		return filter, nil
	case domain.RoleStudent:
		filter.StudentID = actor.UserID
		return filter, nil
	}
	return filter, domain.ErrForbidden
}

// checkReview validates an admin decision against flow.
func checkReview(flow domain.ReviewFlow, current domain.ReviewStatus, input ports.ReviewInput) error {
	if !flow.Knows(input.Status) {
		return domain.Invalid("unknown review status %q", input.Status)
	}
	if !flow.Allows(current, input.Status) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current, input.Status)
	}
	return nil
}

func reviewMessage(kind, title string, status domain.ReviewStatus, note string) string {
	msg := fmt.Sprintf("Your %s %q is now %s.", kind, title, status)
	if note = strings.TrimSpace(note); note != "" {
		msg += " Note: " + note
	}
	return msg
}

func reviewNotificationType(status domain.ReviewStatus) domain.NotificationType {
	switch status {
	case domain.ReviewApproved, domain.ReviewAccepted:
		return domain.NotificationSuccess
	case domain.ReviewRejected:
		return domain.NotificationWarning
	}
	return domain.NotificationInfo
}
