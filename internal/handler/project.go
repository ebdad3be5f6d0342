package handler // handler package contains project CRUD handlers

import (
    "errors"
    "net/http"
    "strings"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/mkarimov/production-coverage/internal/model"
    "github.com/mkarimov/production-coverage/internal/repository"
)

// CreateProject handles POST /v1/projects and registers a new client engagement.
func (h *AppHandler) CreateProject(c echo.Context) error {
    var body struct {
        Name   string `json:"name"`   // unique project name
        Client string `json:"client"` // client the production is for
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    name := strings.TrimSpace(body.Name)
    if name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
    }
    p := &model.Project{
        ID:     uuid.NewString(),
        Name:   name,
        Client: strings.TrimSpace(body.Client),
        Status: "ACTIVE",
    }
    if err := h.ProjectRepo.Create(c.Request().Context(), p); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create project"})
    }
    return c.JSON(http.StatusCreated, p)
}

// ListProjects handles GET /v1/projects.
func (h *AppHandler) ListProjects(c echo.Context) error {
    projects, err := h.ProjectRepo.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load projects"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": projects})
}

// GetProject handles GET /v1/projects/:id.
func (h *AppHandler) GetProject(c echo.Context) error {
    p, err := h.ProjectRepo.GetByID(c.Request().Context(), c.Param("id"))
    if errors.Is(err, repository.ErrProjectNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, p)
}

// UpdateProject handles PUT /v1/projects/:id.
func (h *AppHandler) UpdateProject(c echo.Context) error {
    existing, err := h.ProjectRepo.GetByID(c.Request().Context(), c.Param("id"))
    if errors.Is(err, repository.ErrProjectNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    var body struct {
        Name   *string `json:"name"`
        Client *string `json:"client"`
        Status *string `json:"status"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.Name != nil {
        if strings.TrimSpace(*body.Name) == "" {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty"})
        }
        existing.Name = strings.TrimSpace(*body.Name)
    }
    if body.Client != nil {
        existing.Client = strings.TrimSpace(*body.Client)
    }
    if body.Status != nil {
        status := strings.ToUpper(strings.TrimSpace(*body.Status))
        if status != "ACTIVE" && status != "ARCHIVED" {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be ACTIVE or ARCHIVED"})
        }
        existing.Status = status
    }
    if err := h.ProjectRepo.Update(c.Request().Context(), existing); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update project"})
    }
    return c.JSON(http.StatusOK, existing)
}

// DeleteProject handles DELETE /v1/projects/:id.  Projects that still
// own events respond with 409.
func (h *AppHandler) DeleteProject(c echo.Context) error {
    err := h.ProjectRepo.Delete(c.Request().Context(), c.Param("id"))
    switch {
    case errors.Is(err, repository.ErrProjectNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "project not found"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": "project still has events"})
    case err != nil:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete project"})
    }
    return c.NoContent(http.StatusNoContent)
}
