package domain

import "time"

// SubmissionCategories are the accepted values for Submission.Category.
var SubmissionCategories = []string{
	"Academic Project",
	"Research Proposal",
	"Internship Application",
	"Placement Application",
	"Event Proposal",
	"Other",
}

func ValidSubmissionCategory(c string) bool { return contains(SubmissionCategories, c) }

// Submission is a student-filed academic item awaiting admin review. Student
// identity fields are snapshotted at creation time.
type Submission struct {
	ID             string `json:"id" bson:"_id,omitempty"`
	Title          string `json:"title" bson:"title"`
	Description    string `json:"description" bson:"description"`
	Category       string `json:"category" bson:"category"`
	AdditionalInfo string `json:"additionalInfo,omitempty" bson:"additional_info,omitempty"`

	StudentID   string `json:"studentId" bson:"student_id"`
	StudentName string `json:"studentName" bson:"student_name"`
	Department  string `json:"department" bson:"department"`
	YearOfStudy string `json:"yearOfStudy" bson:"year_of_study"`

	Review      `bson:",inline"`
	SubmittedAt time.Time  `json:"submittedAt" bson:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty" bson:"reviewed_at,omitempty"`
}
