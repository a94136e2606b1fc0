package domain

import "testing"

func TestReviewFlow_Allows(t *testing.T) {
	tests := []struct {
		flow     ReviewFlow
		from, to ReviewStatus
		want     bool
	}{
		{SubmissionFlow, ReviewPending, ReviewInReview, true},
		{SubmissionFlow, ReviewPending, ReviewApproved, true},
		{SubmissionFlow, ReviewInReview, ReviewRejected, true},
		{SubmissionFlow, ReviewInReview, ReviewPending, false},
		{SubmissionFlow, ReviewApproved, ReviewRejected, false},
		{SubmissionFlow, ReviewApproved, ReviewInReview, true},
		{SubmissionFlow, ReviewPending, ReviewAccepted, false},
		{PlacementFlow, ReviewPending, ReviewAccepted, true},
		{PlacementFlow, ReviewAccepted, ReviewRejected, false},
		{PlacementFlow, ReviewRejected, ReviewInReview, true},
		{PlacementFlow, ReviewPending, ReviewApproved, false},
	}
	for _, tt := range tests {
		if got := tt.flow.Allows(tt.from, tt.to); got != tt.want {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.want, got)
		}
	}
}

func TestEligibilityPolicy(t *testing.T) {
	p := NewEligibilityPolicy()
	for _, y := range []string{"E-3", "E-4"} {
		if !p.Allows(y) {
			t.Errorf("%s should be eligible", y)
		}
	}
	for _, y := range []string{"E-1", "E-2", ""} {
		if p.Allows(y) {
			t.Errorf("%q should not be eligible", y)
		}
	}

	custom := NewEligibilityPolicy("E-2")
	if !custom.Allows("E-2") || custom.Allows("E-4") {
		t.Error("custom policy not honoured")
	}
}
