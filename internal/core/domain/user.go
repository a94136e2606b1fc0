package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Role is the coarse-grained permission class of an account.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAlumni  Role = "alumni"
	RoleAdmin   Role = "admin"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleStudent, RoleFaculty, RoleAlumni, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAlumni, RoleAdmin:
		return true
	}
	return false
}

// Departments offered by the institute.
var Departments = []string{"CSE", "ECE", "EEE", "CIVIL", "MECH", "CHEM", "MME"}

// YearsOfStudy in ascending order.
var YearsOfStudy = []string{"E-1", "E-2", "E-3", "E-4"}

func ValidDepartment(d string) bool { return contains(Departments, d) }

func ValidYearOfStudy(y string) bool { return contains(YearsOfStudy, y) }

// MinPasswordLength is the shortest password accepted at signup or change.
const MinPasswordLength = 6

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var fieldValidator = validator.New()

// ValidEmail reports whether email is a bare address. It applies the same
// "email" rule the HTTP request validator uses.
func ValidEmail(email string) bool {
	return fieldValidator.Var(email, "required,email") == nil
}

// User models an authenticated account. PasswordHash never leaves the server.
type User struct {
	ID           string `json:"id" bson:"_id,omitempty"`
	FullName     string `json:"fullName" bson:"full_name"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"password_hash"`
	Role         Role   `json:"role" bson:"role"`
	RoleFields   `bson:",inline"`
	PhoneNumber  string `json:"phoneNumber,omitempty" bson:"phone_number,omitempty"`

	PreRegistrationID string    `json:"preRegistrationId,omitempty" bson:"pre_registration_id,omitempty"`
	IsActive          bool      `json:"isActive" bson:"is_active"`
	CreatedAt         time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updated_at"`
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
