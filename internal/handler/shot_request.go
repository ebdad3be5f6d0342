package handler // handler package contains shot request handlers

import (
    "errors"
    "net/http"
    "strings"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/mkarimov/production-coverage/internal/model"
    "github.com/mkarimov/production-coverage/internal/repository"
)

// validShotStatuses lists every status a manual update may set.
var validShotStatuses = map[model.ShotStatus]bool{
    model.ShotUnassigned:  true,
    model.ShotAssigned:    true,
    model.ShotCaptured:    true,
    model.ShotBlocked:     true,
    model.ShotRequestMore: true,
    model.ShotCompleted:   true,
}

// CreateShotRequest handles POST /v1/events/:id/shots.
func (h *AppHandler) CreateShotRequest(c echo.Context) error {
    eventID := c.Param("id")
    if _, err := h.EventRepo.GetByID(c.Request().Context(), eventID); err != nil {
        if errors.Is(err, repository.ErrEventNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify event"})
    }
    var body struct {
        Title               string  `json:"title"`
        AssignedPersonnelID *string `json:"assigned_personnel_id"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    title := strings.TrimSpace(body.Title)
    if title == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
    }
    status := model.ShotUnassigned
    if body.AssignedPersonnelID != nil && *body.AssignedPersonnelID != "" {
        status = model.ShotAssigned
    }
    s := &model.ShotRequest{
        ID:                  uuid.NewString(),
        EventID:             eventID,
        Title:               title,
        Status:              status,
        AssignedPersonnelID: body.AssignedPersonnelID,
    }
    if err := h.ShotRepo.Create(c.Request().Context(), s); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create shot request"})
    }
    return c.JSON(http.StatusCreated, s)
}

// ListShotRequests handles GET /v1/events/:id/shots.
func (h *AppHandler) ListShotRequests(c echo.Context) error {
    eventID := c.Param("id")
    if _, err := h.EventRepo.GetByID(c.Request().Context(), eventID); err != nil {
        if errors.Is(err, repository.ErrEventNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify event"})
    }
    shots, err := h.ShotRepo.ListByEvent(c.Request().Context(), eventID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load shot requests"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": shots})
}

// UpdateShotStatus handles PATCH /v1/events/:id/shots/:shot_id/status.
// The repository enforces the write-once capture attribution and the
// blocked-reason lifecycle; this handler only validates input.
func (h *AppHandler) UpdateShotStatus(c echo.Context) error {
    eventID := c.Param("id")
    shotID := c.Param("shot_id")
    var body struct {
        Status        string  `json:"status"`
        ModifierID    string  `json:"modifier_id"`
        BlockedReason *string `json:"blocked_reason"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    status := model.ShotStatus(strings.TrimSpace(body.Status))
    if !validShotStatuses[status] {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
    }
    if body.ModifierID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "modifier_id is required"})
    }
    if status == model.ShotBlocked && (body.BlockedReason == nil || strings.TrimSpace(*body.BlockedReason) == "") {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "blocked_reason is required when blocking"})
    }
    err := h.ShotRepo.UpdateStatus(c.Request().Context(), eventID, shotID, status, body.ModifierID, body.BlockedReason)
    if errors.Is(err, repository.ErrShotNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "shot request not found"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update shot status"})
    }
    fresh, err := h.ShotRepo.GetByID(c.Request().Context(), eventID, shotID)
    if err != nil {
        return c.NoContent(http.StatusNoContent)
    }
    return c.JSON(http.StatusOK, fresh)
}

// DeleteShotRequest handles DELETE /v1/events/:id/shots/:shot_id.
func (h *AppHandler) DeleteShotRequest(c echo.Context) error {
    err := h.ShotRepo.Delete(c.Request().Context(), c.Param("id"), c.Param("shot_id"))
    if errors.Is(err, repository.ErrShotNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "shot request not found"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete shot request"})
    }
    return c.NoContent(http.StatusNoContent)
}
