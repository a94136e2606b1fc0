package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/alumni-portal/internal/core/domain"
	"github.com/campusconnect/alumni-portal/internal/core/ports"
)

type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// Inbox handles GET /api/notifications.
//
// @Summary      List my notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number returned (default and max 50)"
// @Success      200    {object}  successResponse{data=ports.Inbox}
// @Failure      401    {object}  errorResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) Inbox(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return domain.Invalid("limit must be a non-negative integer")
		}
	}
	inbox, err := h.service.Inbox(c.Request().Context(), actor.UserID, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, inbox)
}

// MarkRead handles PUT /api/notifications/:id/read.
//
// @Summary      Mark a notification as read
// @Tags         notifications
// @Security     BearerAuth
// @Param        id  path  string  true  "Notification ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.MarkRead(c.Request().Context(), actor.UserID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead handles PUT /api/notifications/read-all.
//
// @Summary      Mark all notifications as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse{data=markAllReadData}
// @Router       /api/notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	n, err := h.service.MarkAllRead(c.Request().Context(), actor.UserID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, markAllReadData{Updated: n})
}
