package domain

import (
	"strings"
	"time"
)

// RoleFields holds the role-specific identity attributes shared by users and
// pre-registration records. Only the fields relevant to a role are populated.
type RoleFields struct {
	StudentID      string `json:"studentId,omitempty" bson:"student_id,omitempty" yaml:"studentId"`
	Department     string `json:"department,omitempty" bson:"department,omitempty" yaml:"department"`
	YearOfStudy    string `json:"yearOfStudy,omitempty" bson:"year_of_study,omitempty" yaml:"yearOfStudy"`
	FacultyID      string `json:"facultyId,omitempty" bson:"faculty_id,omitempty" yaml:"facultyId"`
	Designation    string `json:"designation,omitempty" bson:"designation,omitempty" yaml:"designation"`
	AdminID        string `json:"adminId,omitempty" bson:"admin_id,omitempty" yaml:"adminId"`
	AlumniID       string `json:"alumniId,omitempty" bson:"alumni_id,omitempty" yaml:"alumniId"`
	GraduationYear string `json:"graduationYear,omitempty" bson:"graduation_year,omitempty" yaml:"graduationYear"`
}

// ForRole returns a copy with only the fields that belong to role.
func (f RoleFields) ForRole(role Role) RoleFields {
	switch role {
	case RoleStudent:
		return RoleFields{StudentID: f.StudentID, Department: f.Department, YearOfStudy: f.YearOfStudy}
	case RoleFaculty:
		return RoleFields{FacultyID: f.FacultyID, Department: f.Department, Designation: f.Designation}
	case RoleAlumni:
		return RoleFields{AlumniID: f.AlumniID, GraduationYear: f.GraduationYear}
	case RoleAdmin:
		return RoleFields{AdminID: f.AdminID}
	}
	return RoleFields{}
}

type identityField struct {
	label string
	get   func(RoleFields) string
}

// identityFields lists, per role, the fields a signup must reproduce exactly
// and the order in which they are compared.
var identityFields = map[Role][]identityField{
	RoleStudent: {
		{"Student ID", func(f RoleFields) string { return f.StudentID }},
		{"Department", func(f RoleFields) string { return f.Department }},
		{"Year of study", func(f RoleFields) string { return f.YearOfStudy }},
	},
	RoleFaculty: {
		{"Faculty ID", func(f RoleFields) string { return f.FacultyID }},
		{"Department", func(f RoleFields) string { return f.Department }},
	},
	RoleAlumni: {
		{"Alumni ID", func(f RoleFields) string { return f.AlumniID }},
		{"Graduation year", func(f RoleFields) string { return f.GraduationYear }},
	},
	RoleAdmin: {
		{"Admin ID", func(f RoleFields) string { return f.AdminID }},
	},
}

// PreRegistration is an admin-seeded allow-list entry. A signup is accepted
// only when a matching, not yet consumed record exists.
type PreRegistration struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	FullName     string `json:"fullName" bson:"full_name"`
	Email        string `json:"email" bson:"email"`
	Role         Role   `json:"role" bson:"role"`
	RoleFields   `bson:",inline"`
	PhoneNumber  string     `json:"phoneNumber,omitempty" bson:"phone_number,omitempty"`
	IsRegistered bool       `json:"isRegistered" bson:"is_registered"`
	RegisteredAt *time.Time `json:"registeredAt,omitempty" bson:"registered_at,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"created_at"`
}

// Match compares the claimed identity fields against the record, returning a
// FieldMismatchError for the first field that differs.
func (p *PreRegistration) Match(claimed RoleFields) error {
	for _, f := range identityFields[p.Role] {
		if f.get(claimed) != f.get(p.RoleFields) {
			return &FieldMismatchError{Field: f.label}
		}
	}
	return nil
}

// Validate checks that the record is complete for its role.
func (p *PreRegistration) Validate() error {
	if strings.TrimSpace(p.FullName) == "" {
		return Invalid("full name is required")
	}
	if !ValidEmail(p.Email) {
		return Invalid("a valid email is required")
	}
	if !p.Role.Valid() {
		return Invalid("role must be one of: student, faculty, alumni, admin")
	}
	for _, f := range identityFields[p.Role] {
		if f.get(p.RoleFields) == "" {
			return Invalid("%s is required for %s", f.label, p.Role)
		}
	}
	if p.Department != "" && !ValidDepartment(p.Department) {
		return Invalid("department must be one of: %s", strings.Join(Departments, ", "))
	}
	if p.Role == RoleStudent && !ValidYearOfStudy(p.YearOfStudy) {
		return Invalid("year of study must be one of: %s", strings.Join(YearsOfStudy, ", "))
	}
	return nil
}
