package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

// UserHandler serves profile self-service and admin account management.
type UserHandler struct {
	users   ports.UserService
	preRegs ports.PreRegistrationService
}

func NewUserHandler(users ports.UserService, preRegs ports.PreRegistrationService) *UserHandler {
	return &UserHandler{users: users, preRegs: preRegs}
}

// UpdateProfile handles PUT /api/users/me.
//
// @Summary      Update my profile
// @Description  Identity fields are immutable; only name, phone number and (faculty) designation can change.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  successResponse{data=userData}
// @Failure      400   {object}  errorResponse
// @Router       /api/users/me [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	user, err := h.users.UpdateProfile(c.Request().Context(), actor, ports.ProfileUpdate{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Designation: req.Designation,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, userData{User: user})
}

// List handles GET /api/admin/users.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "Filter by role"  Enums(student, faculty, alumni, admin)
// @Success      200   {object}  successResponse{data=usersData}
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	role := domain.Role(c.QueryParam("role"))
	if role != "" && !role.Valid() {
		return domain.Invalid("role must be one of: student, faculty, alumni, admin")
	}
	users, err := h.users.List(c.Request().Context(), actor, role)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(users), usersData{Users: users})
}

// Activate handles PUT /api/admin/users/:id/activate.
//
// @Summary      Reactivate a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  successResponse{data=userData}
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id}/activate [put]
func (h *UserHandler) Activate(c echo.Context) error {
	return h.setActive(c, true)
}

// Deactivate handles PUT /api/admin/users/:id/deactivate.
//
// @Summary      Deactivate a user
// @Description  Deactivated users cannot log in. Admins cannot deactivate themselves.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  successResponse{data=userData}
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id}/deactivate [put]
func (h *UserHandler) Deactivate(c echo.Context) error {
	return h.setActive(c, false)
}

func (h *UserHandler) setActive(c echo.Context, active bool) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	user, err := h.users.SetActive(c.Request().Context(), actor, c.Param("id"), active)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, userData{User: user})
}

// CreatePreRegistration handles POST /api/admin/pre-registrations.
//
// @Summary      Pre-register a person
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      preRegistrationRequest  true  "Pre-registration"
// @Success      201   {object}  successResponse{data=preRegistrationData}
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/pre-registrations [post]
func (h *UserHandler) CreatePreRegistration(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req preRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	p, err := h.preRegs.Create(c.Request().Context(), actor, toPreRegistration(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, preRegistrationData{PreRegistration: p})
}

// ListPreRegistrations handles GET /api/admin/pre-registrations.
//
// @Summary      List pre-registrations
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role        query     string  false  "Filter by role"
// @Param        registered  query     bool    false  "Filter by whether the record was used for signup"
// @Success      200         {object}  successResponse{data=preRegistrationsData}
// @Failure      400         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Router       /api/admin/pre-registrations [get]
func (h *UserHandler) ListPreRegistrations(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	filter := ports.PreRegistrationFilter{Role: domain.Role(c.QueryParam("role"))}
	if filter.Role != "" && !filter.Role.Valid() {
		return domain.Invalid("role must be one of: student, faculty, alumni, admin")
	}
	if raw := c.QueryParam("registered"); raw != "" {
		registered, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.Invalid("registered must be true or false")
		}
		filter.Registered = &registered
	}
	items, err := h.preRegs.List(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(items), preRegistrationsData{PreRegistrations: items})
}
