package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/alumni-portal/internal/api/metrics"
	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates an account for a pre-registered person.
//
// @Summary      Sign up
// @Description  Creates an account when the email and role match an unconsumed pre-registration and every role identity field agrees with it.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Credentials and role identity fields"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues(metrics.SignupOutcome(err)).Inc()
		return err
	}

	res, err := h.authService.Signup(c.Request().Context(), toSignupInput(req))
	metrics.SignupsTotal.WithLabelValues(metrics.SignupOutcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{Status: statusSuccess, Token: res.Token, Data: authData{User: res.User}})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	metrics.LoginsTotal.WithLabelValues(metrics.LoginOutcome(err)).Inc()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Status: statusSuccess, Token: res.Token, Data: authData{User: res.User}})
}

// CheckEligibility reports whether an email may sign up for a role.
//
// @Summary      Check signup eligibility
// @Description  Returns the pre-registered identity fields so the signup form can be prefilled.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      eligibilityRequest  true  "Email and role"
// @Success      200   {object}  successResponse{data=eligibilityResponse}
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/auth/check-eligibility [post]
func (h *AuthHandler) CheckEligibility(c echo.Context) error {
	var req eligibilityRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	e, err := h.authService.CheckEligibility(c.Request().Context(), req.Email, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toEligibilityResponse(e))
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse{data=userData}
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	user, err := h.authService.Me(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, userData{User: user})
}

// Logout revokes the presented token.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "logged out", nil)
}

// ChangePassword replaces the caller's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.authService.ChangePassword(c.Request().Context(), actor.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "password updated", nil)
}
