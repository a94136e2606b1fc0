package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
	"github.com/campusconnect/alumni-portal/internal/infrastructure/db/memory"
)

type ledgerFixture struct {
	submissions *SubmissionService
	placements  *PlacementService
	notifier    *recordingNotifier
	admin       *domain.User
	senior      *domain.User
	junior      *domain.User
	faculty     *domain.User
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	users := memory.NewUserRepository()
	f := &ledgerFixture{notifier: &recordingNotifier{}}
	policy := domain.NewEligibilityPolicy()
	f.submissions = NewSubmissionService(memory.NewSubmissionRepository(), users, f.notifier, policy, nop)
	f.placements = NewPlacementService(memory.NewPlacementRepository(), users, f.notifier, policy, nop)

	f.admin = seedUser(t, users, domain.User{FullName: "Admin", Email: "admin@campus.edu", Role: domain.RoleAdmin})
	f.senior = seedUser(t, users, domain.User{
		FullName: "Kiran", Email: "kiran@campus.edu", Role: domain.RoleStudent,
		RoleFields: domain.RoleFields{StudentID: "R1", Department: "MECH", YearOfStudy: "E-4"},
	})
	f.junior = seedUser(t, users, domain.User{
		FullName: "Lata", Email: "lata@campus.edu", Role: domain.RoleStudent,
		RoleFields: domain.RoleFields{StudentID: "R2", Department: "CSE", YearOfStudy: "E-2"},
	})
	f.faculty = seedUser(t, users, domain.User{FullName: "Prof", Email: "prof@campus.edu", Role: domain.RoleFaculty})
	return f
}

func capstone() ports.CreateSubmissionInput {
	return ports.CreateSubmissionInput{Title: "Capstone", Description: "Robotic arm", Category: "Academic Project"}
}

// ---------------------------------------------------------------------------
// Submissions
// ---------------------------------------------------------------------------

func TestSubmissionService_Create_SnapshotsStudent(t *testing.T) {
	f := newLedgerFixture(t)
	in := capstone()
	in.AdditionalInfo = " Demo video: <a href=\"https://example.org/demo\">link</a> "
	sub, err := f.submissions.Create(context.Background(), actorOf(f.senior), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sub.AdditionalInfo != "Demo video: link" {
		t.Errorf("additional info not sanitized and kept: %q", sub.AdditionalInfo)
	}
	stored, err := f.submissions.Get(context.Background(), actorOf(f.senior), sub.ID)
	if err != nil || stored.AdditionalInfo != sub.AdditionalInfo {
		t.Errorf("additional info not persisted: %+v %v", stored, err)
	}
	if sub.StudentName != "Kiran" || sub.Department != "MECH" || sub.YearOfStudy != "E-4" {
		t.Errorf("snapshot not taken: %+v", sub)
	}
	if sub.Status != domain.ReviewPending || sub.SubmittedAt.IsZero() {
		t.Errorf("unexpected initial state %+v", sub)
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].Role != domain.RoleAdmin {
		t.Errorf("expected admin fan-out, got %+v", f.notifier.sent)
	}
}

func TestSubmissionService_Create_Gates(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	if _, err := f.submissions.Create(ctx, actorOf(f.junior), capstone()); !errors.Is(err, domain.ErrIneligible) {
		t.Errorf("E-2 student: expected ErrIneligible, got %v", err)
	}
	if _, err := f.submissions.Create(ctx, actorOf(f.faculty), capstone()); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("faculty: expected ErrForbidden, got %v", err)
	}
	bad := capstone()
	bad.Category = "Poetry"
	if _, err := f.submissions.Create(ctx, actorOf(f.senior), bad); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("bad category: expected validation error, got %v", err)
	}
}

func TestSubmissionService_ListScopes(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	_, _ = f.submissions.Create(ctx, actorOf(f.senior), capstone())

	mine, err := f.submissions.List(ctx, actorOf(f.senior), ports.LedgerFilter{})
	if err != nil || len(mine) != 1 {
		t.Fatalf("student list: %v %d", err, len(mine))
	}
	none, _ := f.submissions.List(ctx, actorOf(f.junior), ports.LedgerFilter{StudentID: f.senior.ID})
	if len(none) != 0 {
		t.Errorf("student must only see own submissions, got %d", len(none))
	}
	all, _ := f.submissions.List(ctx, actorOf(f.admin), ports.LedgerFilter{Status: domain.ReviewPending})
	if len(all) != 1 {
		t.Errorf("admin should see pending submission, got %d", len(all))
	}
	if _, err := f.submissions.List(ctx, actorOf(f.faculty), ports.LedgerFilter{}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("faculty: expected ErrForbidden, got %v", err)
	}
	if _, err := f.submissions.Get(ctx, actorOf(f.junior), mine[0].ID); !errors.Is(err, domain.ErrSubmissionNotFound) {
		t.Errorf("foreign get: expected not found, got %v", err)
	}
}

func TestSubmissionService_ReviewTransitions(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	sub, _ := f.submissions.Create(ctx, actorOf(f.senior), capstone())
	admin := actorOf(f.admin)

	steps := []struct {
		to   domain.ReviewStatus
		want error
	}{
		{domain.ReviewInReview, nil},
		{domain.ReviewPending, domain.ErrInvalidTransition},
		{domain.ReviewApproved, nil},
		{domain.ReviewRejected, domain.ErrInvalidTransition},
		{domain.ReviewInReview, nil},
		{domain.ReviewRejected, nil},
		{domain.ReviewAccepted, domain.ErrValidation},
	}
	for _, step := range steps {
		_, err := f.submissions.Review(ctx, admin, sub.ID, ports.ReviewInput{Status: step.to, Note: "checked"})
		if step.want == nil && err != nil {
			t.Fatalf("-> %s: unexpected error %v", step.to, err)
		}
		if step.want != nil && !errors.Is(err, step.want) {
			t.Fatalf("-> %s: expected %v, got %v", step.to, step.want, err)
		}
	}

	final, _ := f.submissions.Get(ctx, admin, sub.ID)
	if final.Status != domain.ReviewRejected || final.ReviewedBy != f.admin.ID || final.ReviewedAt == nil {
		t.Errorf("unexpected final state %+v", final)
	}
	if _, err := f.submissions.Review(ctx, actorOf(f.senior), sub.ID, ports.ReviewInput{Status: domain.ReviewInReview}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("student review: expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Placements
// ---------------------------------------------------------------------------

func TestPlacementService_Lifecycle(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	in := ports.CreatePlacementInput{Company: "Acme", Position: "SDE", Type: domain.PlacementInternship, StartDate: "2025-06-01"}

	if _, err := f.placements.Create(ctx, actorOf(f.junior), in); !errors.Is(err, domain.ErrIneligible) {
		t.Fatalf("E-2 student: expected ErrIneligible, got %v", err)
	}

	p, err := f.placements.Create(ctx, actorOf(f.senior), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.StudentName != "Kiran" || p.Status != domain.ReviewPending {
		t.Errorf("unexpected placement %+v", p)
	}

	if _, err := f.placements.Review(ctx, actorOf(f.admin), p.ID, ports.ReviewInput{Status: domain.ReviewApproved}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("approved is not a placement state, got %v", err)
	}
	reviewed, err := f.placements.Review(ctx, actorOf(f.admin), p.ID, ports.ReviewInput{Status: domain.ReviewAccepted})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if reviewed.Status != domain.ReviewAccepted {
		t.Errorf("expected accepted, got %s", reviewed.Status)
	}

	if err := f.placements.Delete(ctx, actorOf(f.senior), p.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("student deleting reviewed record: expected ErrForbidden, got %v", err)
	}
	if err := f.placements.Delete(ctx, actorOf(f.admin), p.ID); err != nil {
		t.Fatalf("admin Delete: %v", err)
	}
	if _, err := f.placements.Get(ctx, actorOf(f.admin), p.ID); !errors.Is(err, domain.ErrPlacementNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestPlacementService_Create_Validation(t *testing.T) {
	f := newLedgerFixture(t)
	tests := map[string]ports.CreatePlacementInput{
		"missing company": {Position: "SDE"},
		"bad type":        {Company: "Acme", Position: "SDE", Type: "contract"},
		"bad start date":  {Company: "Acme", Position: "SDE", StartDate: "June"},
	}
	for name, in := range tests {
		if _, err := f.placements.Create(context.Background(), actorOf(f.senior), in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestPlacementService_DefaultsToFullTime(t *testing.T) {
	f := newLedgerFixture(t)
	p, err := f.placements.Create(context.Background(), actorOf(f.senior), ports.CreatePlacementInput{Company: "Acme", Position: "SDE"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Type != domain.PlacementFullTime {
		t.Errorf("expected placement type, got %s", p.Type)
	}
	if time.Since(p.SubmittedAt) > time.Minute {
		t.Errorf("unexpected submittedAt %v", p.SubmittedAt)
	}
}
