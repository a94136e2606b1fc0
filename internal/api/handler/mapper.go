package handler

import (
	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

// --- Request → Service input ---

func toSignupInput(req signupRequest) ports.SignupInput {
	return ports.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		Fields: domain.RoleFields{
			StudentID:      req.StudentID,
			Department:     req.Department,
			YearOfStudy:    req.YearOfStudy,
			FacultyID:      req.FacultyID,
			Designation:    req.Designation,
			AdminID:        req.AdminID,
			AlumniID:       req.AlumniID,
			GraduationYear: req.GraduationYear,
		},
	}
}

func toCreateSessionInput(req createSessionRequest) ports.CreateSessionInput {
	return ports.CreateSessionInput{
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date,
		Time:             req.Time,
		Venue:            req.Venue,
		SessionHead:      req.SessionHead,
		MaxParticipants:  req.MaxParticipants,
		MeetingLink:      req.MeetingLink,
		FeedbackFormLink: req.FeedbackFormLink,
	}
}

func toUpdateSessionInput(req updateSessionRequest) ports.UpdateSessionInput {
	in := ports.UpdateSessionInput{
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date,
		Time:             req.Time,
		Venue:            req.Venue,
		SessionHead:      req.SessionHead,
		MaxParticipants:  req.MaxParticipants,
		MeetingLink:      req.MeetingLink,
		FeedbackFormLink: req.FeedbackFormLink,
	}
	if req.Status != nil {
		status := domain.SessionStatus(*req.Status)
		in.Status = &status
	}
	return in
}

func toCreatePlacementInput(req createPlacementRequest) ports.CreatePlacementInput {
	return ports.CreatePlacementInput{
		Company:   req.Company,
		Position:  req.Position,
		Type:      domain.PlacementType(req.Type),
		Package:   req.Package,
		Location:  req.Location,
		StartDate: req.StartDate,
	}
}

func toReviewInput(req reviewRequest) ports.ReviewInput {
	return ports.ReviewInput{Status: domain.ReviewStatus(req.Status), Note: req.Note}
}

func toPreRegistration(req preRegistrationRequest) *domain.PreRegistration {
	return &domain.PreRegistration{
		FullName:    req.FullName,
		Email:       req.Email,
		Role:        domain.Role(req.Role),
		RoleFields:  req.RoleFields,
		PhoneNumber: req.PhoneNumber,
	}
}

// --- Service output → Response ---

func toEligibilityResponse(e *ports.Eligibility) eligibilityResponse {
	return eligibilityResponse{
		FullName:   e.FullName,
		Email:      e.Email,
		Role:       e.Role,
		RoleFields: e.Fields,
	}
}
