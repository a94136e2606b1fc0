package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/alumni-portal/internal/api/metrics"
	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

// ledgerFilter reads the optional status and type query parameters.
func ledgerFilter(c echo.Context) ports.LedgerFilter {
	return ports.LedgerFilter{
		Status: domain.ReviewStatus(c.QueryParam("status")),
		Type:   c.QueryParam("type"),
	}
}

// SubmissionHandler handles HTTP requests for student submissions.
type SubmissionHandler struct {
	service ports.SubmissionService
}

func NewSubmissionHandler(service ports.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// List handles GET /api/submissions.
//
// @Summary      List submissions
// @Description  Students see their own submissions; admins see all.
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Review status"
// @Param        type    query     string  false  "Category"
// @Success      200     {object}  successResponse{data=submissionsData}
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/submissions [get]
func (h *SubmissionHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	items, err := h.service.List(c.Request().Context(), actor, ledgerFilter(c))
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(items), submissionsData{Submissions: items})
}

// Get handles GET /api/submissions/:id.
//
// @Summary      Get a submission
// @Tags         submissions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Submission ID"
// @Success      200  {object}  successResponse{data=submissionData}
// @Failure      404  {object}  errorResponse
// @Router       /api/submissions/{id} [get]
func (h *SubmissionHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	s, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, submissionData{Submission: s})
}

// Create handles POST /api/submissions.
//
// @Summary      Create a submission
// @Description  Only students in an eligible year of study may submit.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSubmissionRequest  true  "Submission"
// @Success      201   {object}  successResponse{data=submissionData}
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/submissions [post]
func (h *SubmissionHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createSubmissionRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s, err := h.service.Create(c.Request().Context(), actor, ports.CreateSubmissionInput{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		return err
	}
	metrics.LedgerRecordsTotal.WithLabelValues("submission").Inc()
	return respondMessage(c, http.StatusCreated, "submission created", submissionData{Submission: s})
}

// Review handles PUT /api/submissions/:id.
//
// @Summary      Review a submission
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Submission ID"
// @Param        body  body      reviewRequest  true  "Decision"
// @Success      200   {object}  successResponse{data=submissionData}
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/submissions/{id} [put]
func (h *SubmissionHandler) Review(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s, err := h.service.Review(c.Request().Context(), actor, c.Param("id"), toReviewInput(req))
	if err != nil {
		return err
	}
	metrics.ReviewsTotal.WithLabelValues("submission", string(s.Status)).Inc()
	return respond(c, http.StatusOK, submissionData{Submission: s})
}

// PlacementHandler handles HTTP requests for placement records.
type PlacementHandler struct {
	service ports.PlacementService
}

func NewPlacementHandler(service ports.PlacementService) *PlacementHandler {
	return &PlacementHandler{service: service}
}

// List handles GET /api/placements.
//
// @Summary      List placements
// @Tags         placements
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Review status"
// @Param        type    query     string  false  "placement or internship"
// @Success      200     {object}  successResponse{data=placementsData}
// @Failure      401     {object}  errorResponse
// @Router       /api/placements [get]
func (h *PlacementHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	items, err := h.service.List(c.Request().Context(), actor, ledgerFilter(c))
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, len(items), placementsData{Placements: items})
}

// Get handles GET /api/placements/:id.
//
// @Summary      Get a placement
// @Tags         placements
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Placement ID"
// @Success      200  {object}  successResponse{data=placementData}
// @Failure      404  {object}  errorResponse
// @Router       /api/placements/{id} [get]
func (h *PlacementHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	p, err := h.service.Get(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, placementData{Placement: p})
}

// Create handles POST /api/placements.
//
// @Summary      Record a placement or internship
// @Tags         placements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPlacementRequest  true  "Placement"
// @Success      201   {object}  successResponse{data=placementData}
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/placements [post]
func (h *PlacementHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createPlacementRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), actor, toCreatePlacementInput(req))
	if err != nil {
		return err
	}
	metrics.LedgerRecordsTotal.WithLabelValues("placement").Inc()
	return respondMessage(c, http.StatusCreated, "placement recorded", placementData{Placement: p})
}

// Review handles PUT /api/placements/:id.
//
// @Summary      Review a placement
// @Tags         placements
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Placement ID"
// @Param        body  body      reviewRequest  true  "Decision"
// @Success      200   {object}  successResponse{data=placementData}
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/placements/{id} [put]
func (h *PlacementHandler) Review(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return domain.Invalid("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.service.Review(c.Request().Context(), actor, c.Param("id"), toReviewInput(req))
	if err != nil {
		return err
	}
	metrics.ReviewsTotal.WithLabelValues("placement", string(p.Status)).Inc()
	return respond(c, http.StatusOK, placementData{Placement: p})
}

// Delete handles DELETE /api/placements/:id.
//
// @Summary      Delete a placement
// @Tags         placements
// @Security     BearerAuth
// @Param        id  path  string  true  "Placement ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/placements/{id} [delete]
func (h *PlacementHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
