package handler // handler package contains personnel roster handlers

import (
    "errors"
    "net/http"
    "strings"

    "github.com/google/uuid"
    "github.com/labstack/echo/v4"

    "github.com/mkarimov/production-coverage/internal/model"
    "github.com/mkarimov/production-coverage/internal/repository"
)

// CreatePersonnel handles POST /v1/personnel and adds a team member to the roster.
func (h *AppHandler) CreatePersonnel(c echo.Context) error {
    var body struct {
        FullName string `json:"full_name"`
        Role     string `json:"role"`
        Email    string `json:"email"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    name := strings.TrimSpace(body.FullName)
    if name == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name is required"})
    }
    p := &model.Personnel{
        ID:       uuid.NewString(),
        FullName: name,
        Role:     strings.ToUpper(strings.TrimSpace(body.Role)),
        Email:    strings.TrimSpace(body.Email),
        IsActive: true,
    }
    if err := h.PersonnelRepo.Create(c.Request().Context(), p); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create personnel"})
    }
    return c.JSON(http.StatusCreated, p)
}

// ListPersonnel handles GET /v1/personnel.  Use ?active=true to filter
// the roster to active members only.
func (h *AppHandler) ListPersonnel(c echo.Context) error {
    activeOnly := strings.EqualFold(c.QueryParam("active"), "true")
    people, err := h.PersonnelRepo.List(c.Request().Context(), activeOnly)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load personnel"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": people})
}

// GetPersonnel handles GET /v1/personnel/:id.
func (h *AppHandler) GetPersonnel(c echo.Context) error {
    p, err := h.PersonnelRepo.GetByID(c.Request().Context(), c.Param("id"))
    if errors.Is(err, repository.ErrPersonnelNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "personnel not found"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    return c.JSON(http.StatusOK, p)
}

// UpdatePersonnel handles PUT /v1/personnel/:id.
func (h *AppHandler) UpdatePersonnel(c echo.Context) error {
    existing, err := h.PersonnelRepo.GetByID(c.Request().Context(), c.Param("id"))
    if errors.Is(err, repository.ErrPersonnelNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "personnel not found"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    var body struct {
        FullName *string `json:"full_name"`
        Role     *string `json:"role"`
        Email    *string `json:"email"`
        IsActive *bool   `json:"is_active"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.FullName != nil && strings.TrimSpace(*body.FullName) != "" {
        existing.FullName = strings.TrimSpace(*body.FullName)
    }
    if body.Role != nil {
        existing.Role = strings.ToUpper(strings.TrimSpace(*body.Role))
    }
    if body.Email != nil {
        existing.Email = strings.TrimSpace(*body.Email)
    }
    if body.IsActive != nil {
        existing.IsActive = *body.IsActive
    }
    if err := h.PersonnelRepo.Update(c.Request().Context(), existing); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update personnel"})
    }
    return c.JSON(http.StatusOK, existing)
}

// DeactivatePersonnel handles DELETE /v1/personnel/:id.  Members are
// deactivated, not deleted, so historical capture attributions keep
// resolving to a name.
func (h *AppHandler) DeactivatePersonnel(c echo.Context) error {
    err := h.PersonnelRepo.Deactivate(c.Request().Context(), c.Param("id"))
    if errors.Is(err, repository.ErrPersonnelNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "personnel not found"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not deactivate personnel"})
    }
    return c.NoContent(http.StatusNoContent)
}
