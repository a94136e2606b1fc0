package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/alumni-portal/internal/api/metrics"
	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

// SessionHandler handles HTTP requests for the session registry.
type SessionHandler struct {
	service ports.SessionService
}

func NewSessionHandler(service ports.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// List handles GET /api/sessions.
//
// @Summary      List sessions
// @Description  Every session carries the status derived from its schedule at request time.
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by derived status"  Enums(upcoming, ongoing, completed, cancelled)
// @Success      200     {object}  successResponse{data=sessionsData}
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Router       /api/sessions [get]
func (h *SessionHandler) List(c echo.Context) error {
	filter := ports.SessionFilter{Status: domain.SessionStatus(c.QueryParam("status"))}
	if filter.Status != "" && !filter.Status.Valid() {
		return domain.Invalid("status must be one of: upcoming, ongoing, completed, cancelled")
	}
	sessions, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(sessions), sessionsData{Sessions: sessions})
}

// Stats handles GET /api/sessions/stats.
//
// @Summary      Session counts by status
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse{data=ports.SessionStats}
// @Failure      401  {object}  errorResponse
// @Router       /api/sessions/stats [get]
func (h *SessionHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, stats)
}

// Get handles GET /api/sessions/:id.
//
// @Summary      Get a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  successResponse{data=sessionData}
// @Failure      404  {object}  errorResponse
// @Router       /api/sessions/{id} [get]
func (h *SessionHandler) Get(c echo.Context) error {
	s, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, sessionData{Session: s})
}

// Create handles POST /api/sessions.
//
// @Summary      Create a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSessionRequest  true  "Session details"
// @Success      201   {object}  successResponse{data=sessionData}
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s, err := h.service.Create(c.Request().Context(), actor, toCreateSessionInput(req))
	if err != nil {
		return err
	}
	metrics.SessionsCreatedTotal.WithLabelValues(string(actor.Role)).Inc()
	return respond(c, http.StatusCreated, sessionData{Session: s})
}

// Update handles PUT /api/sessions/:id.
//
// @Summary      Update a session
// @Description  Partial update. Only "cancelled" may be set as a status; clearing it requires sending another status.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Session ID"
// @Param        body  body      updateSessionRequest  true  "Fields to change"
// @Success      200   {object}  successResponse{data=sessionData}
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/sessions/{id} [put]
func (h *SessionHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateSessionRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), toUpdateSessionInput(req))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, sessionData{Session: s})
}

// Delete handles DELETE /api/sessions/:id.
//
// @Summary      Delete a session
// @Tags         sessions
// @Security     BearerAuth
// @Param        id  path  string  true  "Session ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/sessions/{id} [delete]
func (h *SessionHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Join handles POST /api/sessions/:id/join.
//
// @Summary      Join a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  successResponse{data=sessionData}
// @Failure      400  {object}  errorResponse  "Session full, already joined or closed"
// @Failure      404  {object}  errorResponse
// @Router       /api/sessions/{id}/join [post]
func (h *SessionHandler) Join(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	s, err := h.service.Join(c.Request().Context(), actor, c.Param("id"))
	metrics.SessionJoinsTotal.WithLabelValues(metrics.JoinOutcome(err)).Inc()
	if err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "joined session", sessionData{Session: s})
}

// Leave handles POST /api/sessions/:id/leave.
//
// @Summary      Leave a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  successResponse{data=sessionData}
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/sessions/{id}/leave [post]
func (h *SessionHandler) Leave(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	s, err := h.service.Leave(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "left session", sessionData{Session: s})
}
