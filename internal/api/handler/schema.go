package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
)

const statusSuccess = "success"

// successResponse is the envelope of every 2xx JSON response.
type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// errorResponse documents the envelope rendered by the HTTP error handler.
type errorResponse struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message"`
}

type authData struct {
	User *domain.User `json:"user"`
}

// authResponse is returned by signup and login.
type authResponse struct {
	Status string   `json:"status"`
	Token  string   `json:"token"`
	Data   authData `json:"data"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, successResponse{Status: statusSuccess, Data: data})
}

func respondMessage(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, successResponse{Status: statusSuccess, Message: message, Data: data})
}

func respondList(c echo.Context, code int, n int, data any) error {
	return c.JSON(code, successResponse{Status: statusSuccess, Results: &n, Data: data})
}

// --- Auth ---

type signupRequest struct {
	Email          string `json:"email"          validate:"required,email"`
	Password       string `json:"password"       validate:"required,min=6"`
	Role           string `json:"role"           validate:"required,oneof=student faculty alumni admin"`
	StudentID      string `json:"studentId"`
	Department     string `json:"department"`
	YearOfStudy    string `json:"yearOfStudy"`
	FacultyID      string `json:"facultyId"`
	Designation    string `json:"designation"`
	AdminID        string `json:"adminId"`
	AlumniID       string `json:"alumniId"`
	GraduationYear string `json:"graduationYear"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type eligibilityRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role"  validate:"required,oneof=student faculty alumni admin"`
}

type eligibilityResponse struct {
	FullName string      `json:"fullName"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	domain.RoleFields
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=6"`
}

// --- Sessions ---

type createSessionRequest struct {
	Title            string `json:"title"            validate:"required,max=200"`
	Description      string `json:"description"      validate:"max=5000"`
	Date             string `json:"date"             validate:"required"`
	Time             string `json:"time"             validate:"required"`
	Venue            string `json:"venue"            validate:"required"`
	SessionHead      string `json:"sessionHead"`
	MaxParticipants  int    `json:"maxParticipants"  validate:"omitempty,min=1"`
	MeetingLink      string `json:"meetingLink"      validate:"omitempty,url"`
	FeedbackFormLink string `json:"feedbackFormLink" validate:"omitempty,url"`
}

type updateSessionRequest struct {
	Title            *string `json:"title"            validate:"omitempty,max=200"`
	Description      *string `json:"description"      validate:"omitempty,max=5000"`
	Date             *string `json:"date"`
	Time             *string `json:"time"`
	Venue            *string `json:"venue"`
	SessionHead      *string `json:"sessionHead"`
	MaxParticipants  *int    `json:"maxParticipants"  validate:"omitempty,min=1"`
	MeetingLink      *string `json:"meetingLink"      validate:"omitempty,url"`
	FeedbackFormLink *string `json:"feedbackFormLink" validate:"omitempty,url"`
	Status           *string `json:"status"           validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
}

type sessionData struct {
	Session *domain.Session `json:"session"`
}

type sessionsData struct {
	Sessions []*domain.Session `json:"sessions"`
}

// --- Ledger ---

type createSubmissionRequest struct {
	Title          string `json:"title"          validate:"required,max=200"`
	Description    string `json:"description"    validate:"required,max=5000"`
	Category       string `json:"category"       validate:"required"`
	AdditionalInfo string `json:"additionalInfo" validate:"max=5000"`
}

type createPlacementRequest struct {
	Company   string `json:"company"   validate:"required,max=200"`
	Position  string `json:"position"  validate:"required,max=200"`
	Type      string `json:"type"      validate:"required,oneof=placement internship"`
	Package   string `json:"package"`
	Location  string `json:"location"`
	StartDate string `json:"startDate"`
}

type reviewRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"reviewNote" validate:"max=2000"`
}

type submissionData struct {
	Submission *domain.Submission `json:"submission"`
}

type submissionsData struct {
	Submissions []*domain.Submission `json:"submissions"`
}

type placementData struct {
	Placement *domain.Placement `json:"placement"`
}

type placementsData struct {
	Placements []*domain.Placement `json:"placements"`
}

// --- Users ---

type updateProfileRequest struct {
	FullName    *string `json:"fullName"    validate:"omitempty,max=120"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=20"`
	Designation *string `json:"designation" validate:"omitempty,max=120"`
}

type userData struct {
	User *domain.User `json:"user"`
}

type usersData struct {
	Users []*domain.User `json:"users"`
}

type preRegistrationRequest struct {
	FullName    string `json:"fullName"    validate:"required"`
	Email       string `json:"email"       validate:"required,email"`
	Role        string `json:"role"        validate:"required,oneof=student faculty alumni admin"`
	PhoneNumber string `json:"phoneNumber"`
	domain.RoleFields
}

type preRegistrationData struct {
	PreRegistration *domain.PreRegistration `json:"preRegistration"`
}

type preRegistrationsData struct {
	PreRegistrations []*domain.PreRegistration `json:"preRegistrations"`
}

// --- Notifications ---

type markAllReadData struct {
	Updated int64 `json:"updated"`
}
