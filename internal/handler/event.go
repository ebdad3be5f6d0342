package handler // handler package contains event CRUD handlers

import (
    "errors"
    "net/http"
    "strings"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/mkarimov/production-coverage/internal/model"
    "github.com/mkarimov/production-coverage/internal/repository"
    "github.com/mkarimov/production-coverage/internal/timeline"
)

// eventBody is the JSON shape accepted when creating or updating an event.
type eventBody struct {
    ProjectID            string   `json:"project_id"`
    Name                 string   `json:"name"`
    Date                 string   `json:"date"` // "YYYY-MM-DD"
    Time                 string   `json:"time"` // "HH:MM - HH:MM"
    Priority             string   `json:"priority"`
    IsQuickTurnaround    bool     `json:"is_quick_turnaround"`
    IsCovered            bool     `json:"is_covered"`
    AssignedPersonnelIDs []string `json:"assigned_personnel_ids"`
    Notes                string   `json:"notes"`
}

// CreateEvent handles POST /v1/events and schedules a new event inside a project.
func (h *AppHandler) CreateEvent(c echo.Context) error {
    var body eventBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    name := strings.TrimSpace(body.Name)
    if name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    if body.ProjectID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "project_id is required"})
    }
    if _, err := h.ProjectRepo.GetByID(c.Request().Context(), body.ProjectID); err != nil {
        if errors.Is(err, repository.ErrProjectNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify project"})
    }
    if body.Date == "" || body.Time == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date and time are required"})
    }
    // The date and time range are stored exactly as entered.  A window
    // the timeline engine cannot parse is tolerated rather than
    // rejected: such an event classifies as upcoming and is excluded
    // from the day grid, which keeps it visible for correction.
    if _, err := timeline.ParseWindow(body.Date, body.Time, h.Timezone); err != nil {
        c.Logger().Warnf("event %q has an unparseable window: %v", name, err)
    }

    ev := &model.Event{
        ID:                   uuid.NewString(),
        ProjectID:            body.ProjectID,
        Name:                 name,
        Date:                 body.Date,
        Time:                 body.Time,
        Priority:             model.ParsePriority(body.Priority),
        IsQuickTurnaround:    body.IsQuickTurnaround,
        IsCovered:            body.IsCovered,
        AssignedPersonnelIDs: body.AssignedPersonnelIDs,
        Notes:                body.Notes,
    }
    if err := h.EventRepo.Create(c.Request().Context(), ev); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create event"})
    }
    return c.JSON(http.StatusCreated, ev)
}

// GetEvent handles GET /v1/events/:id.
func (h *AppHandler) GetEvent(c echo.Context) error {
    ev, err := h.EventRepo.GetByID(c.Request().Context(), c.Param("id"))
    if errors.Is(err, repository.ErrEventNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, ev)
}

// ListEvents handles GET /v1/events and filters by ?date= or ?project_id=.
func (h *AppHandler) ListEvents(c echo.Context) error {
    date := c.QueryParam("date")
    projectID := c.QueryParam("project_id")

    var (
        events []model.Event
        err    error
    )
    switch {
    case date != "":
        events, err = h.EventRepo.ListByDate(c.Request().Context(), date)
    case projectID != "":
        events, err = h.EventRepo.ListByProject(c.Request().Context(), projectID)
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date or project_id query parameter is required"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load events"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": events})
}

// UpdateEvent handles PUT /v1/events/:id.
func (h *AppHandler) UpdateEvent(c echo.Context) error {
    existing, err := h.EventRepo.GetByID(c.Request().Context(), c.Param("id"))
    if errors.Is(err, repository.ErrEventNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    var body eventBody
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if strings.TrimSpace(body.Name) != "" {
        existing.Name = strings.TrimSpace(body.Name)
    }
    if body.Date != "" {
        existing.Date = body.Date
    }
    if body.Time != "" {
        existing.Time = body.Time
    }
    if _, err := timeline.ParseWindow(existing.Date, existing.Time, h.Timezone); err != nil {
        c.Logger().Warnf("event %s window left unparseable: %v", existing.ID, err)
    }
    if body.Priority != "" {
        existing.Priority = model.ParsePriority(body.Priority)
    }
    existing.IsQuickTurnaround = body.IsQuickTurnaround
    existing.IsCovered = body.IsCovered
    if body.AssignedPersonnelIDs != nil {
        existing.AssignedPersonnelIDs = body.AssignedPersonnelIDs
    }
    existing.Notes = body.Notes
    if err := h.EventRepo.Update(c.Request().Context(), existing); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update event"})
    }
    return c.JSON(http.StatusOK, existing)
}

// DeleteEvent handles DELETE /v1/events/:id.  Events that still own
// shot requests respond with 409.
func (h *AppHandler) DeleteEvent(c echo.Context) error {
    err := h.EventRepo.Delete(c.Request().Context(), c.Param("id"))
    switch {
    case errors.Is(err, repository.ErrEventNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "event still has shot requests"})
    case err != nil:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete event"})
    }
    return c.NoContent(http.StatusNoContent)
}
