package domain

// ReviewStatus is the admin review state of a submission or placement record.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewInReview ReviewStatus = "in-review"
	ReviewApproved ReviewStatus = "approved"
	ReviewAccepted ReviewStatus = "accepted"
	ReviewRejected ReviewStatus = "rejected"
)

// ReviewFlow is a review state machine. Terminal states may only be reopened
// back into review.
type ReviewFlow map[ReviewStatus][]ReviewStatus

// SubmissionFlow governs academic submissions, which end in approved or rejected.
var SubmissionFlow = ReviewFlow{
	ReviewPending:  {ReviewInReview, ReviewApproved, ReviewRejected},
	ReviewInReview: {ReviewApproved, ReviewRejected},
	ReviewApproved: {ReviewInReview},
	ReviewRejected: {ReviewInReview},
}

// PlacementFlow governs placement records, which end in accepted or rejected.
var PlacementFlow = ReviewFlow{
	ReviewPending:  {ReviewInReview, ReviewAccepted, ReviewRejected},
	ReviewInReview: {ReviewAccepted, ReviewRejected},
	ReviewAccepted: {ReviewInReview},
	ReviewRejected: {ReviewInReview},
}

// Knows reports whether s is a state of the flow.
func (f ReviewFlow) Knows(s ReviewStatus) bool {
	_, ok := f[s]
	return ok
}

// Allows reports whether moving from -> to is a valid transition.
func (f ReviewFlow) Allows(from, to ReviewStatus) bool {
	for _, next := range f[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Review holds the reviewer decision fields shared by ledger records.
type Review struct {
	Status     ReviewStatus `json:"status" bson:"status"`
	ReviewedBy string       `json:"reviewedBy,omitempty" bson:"reviewed_by,omitempty"`
	ReviewNote string       `json:"reviewNote,omitempty" bson:"review_note,omitempty"`
}
