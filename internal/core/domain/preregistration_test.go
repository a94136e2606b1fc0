package domain

import (
	"errors"
	"testing"
)

func TestPreRegistration_Match(t *testing.T) {
	student := &PreRegistration{
		Role: RoleStudent,
		RoleFields: RoleFields{
			StudentID:   "R200001",
			Department:  "CSE",
			YearOfStudy: "E-3",
		},
	}

	tests := []struct {
		name      string
		claimed   RoleFields
		wantField string
	}{
		{"exact match", RoleFields{StudentID: "R200001", Department: "CSE", YearOfStudy: "E-3"}, ""},
		{"wrong id", RoleFields{StudentID: "R200002", Department: "CSE", YearOfStudy: "E-3"}, "Student ID"},
		{"wrong department", RoleFields{StudentID: "R200001", Department: "ECE", YearOfStudy: "E-3"}, "Department"},
		{"wrong year", RoleFields{StudentID: "R200001", Department: "CSE", YearOfStudy: "E-4"}, "Year of study"},
		{"first mismatch wins", RoleFields{StudentID: "X", Department: "ECE"}, "Student ID"},
		{"case sensitive", RoleFields{StudentID: "r200001", Department: "CSE", YearOfStudy: "E-3"}, "Student ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := student.Match(tt.claimed)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected match, got %v", err)
				}
				return
			}
			var fm *FieldMismatchError
			if !errors.As(err, &fm) {
				t.Fatalf("expected FieldMismatchError, got %v", err)
			}
			if fm.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, fm.Field)
			}
			if !errors.Is(err, ErrFieldMismatch) {
				t.Error("expected error to match ErrFieldMismatch")
			}
		})
	}
}

func TestPreRegistration_MatchIgnoresOtherRoleFields(t *testing.T) {
	alumni := &PreRegistration{
		Role:       RoleAlumni,
		RoleFields: RoleFields{AlumniID: "A-17", GraduationYear: "2019"},
	}
	claimed := RoleFields{AlumniID: "A-17", GraduationYear: "2019", StudentID: "ignored"}
	if err := alumni.Match(claimed); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
}

func TestRoleFields_ForRole(t *testing.T) {
	all := RoleFields{
		StudentID: "S", Department: "CSE", YearOfStudy: "E-1",
		FacultyID: "F", Designation: "Professor", AdminID: "AD",
		AlumniID: "AL", GraduationYear: "2020",
	}

	got := all.ForRole(RoleFaculty)
	want := RoleFields{FacultyID: "F", Department: "CSE", Designation: "Professor"}
	if got != want {
		t.Errorf("faculty: expected %+v, got %+v", want, got)
	}
	if got := all.ForRole(RoleAdmin); got != (RoleFields{AdminID: "AD"}) {
		t.Errorf("admin: unexpected %+v", got)
	}
}

func TestPreRegistration_Validate(t *testing.T) {
	valid := PreRegistration{
		FullName: "Asha Rao",
		Email:    "asha@example.edu",
		Role:     RoleStudent,
		RoleFields: RoleFields{
			StudentID:   "R1",
			Department:  "CSE",
			YearOfStudy: "E-2",
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}

	missingYear := valid
	missingYear.YearOfStudy = ""
	if err := missingYear.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for missing year, got %v", err)
	}

	badDept := valid
	badDept.Department = "ARTS"
	if err := badDept.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for department, got %v", err)
	}

	badRole := valid
	badRole.Role = "guest"
	if err := badRole.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for role, got %v", err)
	}
}

func TestValidEmail(t *testing.T) {
	tests := map[string]bool{
		"asha@campus.edu":           true,
		"first.last@dept.campus.in": true,
		"":                          false,
		"asha":                      false,
		"asha@":                     false,
		"Asha <asha@campus.edu>":    false,
		"asha@campus.edu ":          false,
	}
	for in, want := range tests {
		if got := ValidEmail(in); got != want {
			t.Errorf("ValidEmail(%q) = %v, want %v", in, got, want)
		}
	}
}
