package domain

import "time"

// PlacementType distinguishes full-time offers from internships.
type PlacementType string

const (
	PlacementFullTime   PlacementType = "placement"
	PlacementInternship PlacementType = "internship"
)

func (t PlacementType) Valid() bool {
	return t == PlacementFullTime || t == PlacementInternship
}

// Placement is a student-reported offer, verified by an admin.
type Placement struct {
	ID        string        `json:"id" bson:"_id,omitempty"`
	Company   string        `json:"company" bson:"company"`
	Position  string        `json:"position" bson:"position"`
	Type      PlacementType `json:"type" bson:"type"`
	Package   string        `json:"package,omitempty" bson:"package,omitempty"`
	Location  string        `json:"location,omitempty" bson:"location,omitempty"`
	StartDate string        `json:"startDate,omitempty" bson:"start_date,omitempty"`

	StudentID   string `json:"studentId" bson:"student_id"`
	StudentName string `json:"studentName" bson:"student_name"`
	Department  string `json:"department" bson:"department"`
	YearOfStudy string `json:"yearOfStudy" bson:"year_of_study"`

	Review      `bson:",inline"`
	SubmittedAt time.Time  `json:"submittedAt" bson:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty" bson:"reviewed_at,omitempty"`
}
