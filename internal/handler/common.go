package handler // handler defines http handlers

import (
    "errors"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mkarimov/production-coverage/internal/repository"
    "github.com/mkarimov/production-coverage/internal/timeline"
)

// AppHandler bundles the repositories and settings shared by every
// endpoint group.
type AppHandler struct {
    ProjectRepo   *repository.ProjectRepo     // project persistence
    EventRepo     *repository.EventRepo       // event persistence
    ShotRepo      *repository.ShotRequestRepo // shot request persistence
    PersonnelRepo *repository.PersonnelRepo   // personnel persistence
    JobRepo       *repository.IngestJobRepo   // ingest job report persistence

    Timezone      *time.Location        // production calendar for the timeline engine
    Layout        timeline.LayoutConfig // day-grid scale settings
    StaleJobAfter time.Duration         // zero-count job override, zero disables

    AgentJWTSecret        string        // signs and verifies agent tokens
    AgentProvisionKeyHash string        // bcrypt hash gating token exchange, empty disables
    AgentTokenTTL         time.Duration // lifetime of issued agent tokens
}

// NewAppHandler constructs an AppHandler and panics if any repository is nil.
func NewAppHandler(projects *repository.ProjectRepo, events *repository.EventRepo, shots *repository.ShotRequestRepo, personnel *repository.PersonnelRepo, jobs *repository.IngestJobRepo) *AppHandler {
    if projects == nil || events == nil || shots == nil || personnel == nil || jobs == nil {
        panic("nil repository passed to NewAppHandler")
    }
    return &AppHandler{
        ProjectRepo:   projects,
        EventRepo:     events,
        ShotRepo:      shots,
        PersonnelRepo: personnel,
        JobRepo:       jobs,
        Timezone:      time.Local,
        Layout:        timeline.DefaultLayoutConfig(),
    }
}

// getAgentID extracts the authenticated agent id placed in the context
// by the AgentAuth middleware.
func getAgentID(c echo.Context) (string, error) {
    if v, ok := c.Get("agent_id").(string); ok && v != "" {
        return v, nil
    }
    return "", errors.New("invalid agent_id in context")
}

// today returns the current calendar date in the configured production
// timezone as "YYYY-MM-DD".
func (h *AppHandler) today() string {
    return time.Now().In(h.Timezone).Format("2006-01-02")
}
