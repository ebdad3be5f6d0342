package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // the Echo web framework handles routing
    "github.com/redis/go-redis/v9"

    "github.com/mkarimov/production-coverage/internal/config"
    "github.com/mkarimov/production-coverage/internal/handler"
    "github.com/mkarimov/production-coverage/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and monitoring probes hit this endpoint to verify
    // that the service is up.
    e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the production-coverage API.  The planning
// surface (projects, events, shots, personnel, schedule views) is
// internal-network traffic and carries no per-request auth; the ingest
// surface is reachable from capture agents in the field and requires a
// signed agent token.
func RegisterAPI(e *echo.Echo, h *handler.AppHandler, agentSecret string, rdb *redis.Client) {
    v1 := e.Group("/v1")

    // Throttle everything under /v1 with the shared token bucket so a
    // runaway agent or dashboard cannot starve the database.
    if rdb != nil {
        v1.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
    }

    // Project CRUD.
    v1.POST("/projects", h.CreateProject)
    v1.GET("/projects", h.ListProjects)
    v1.GET("/projects/:id", h.GetProject)
    v1.PUT("/projects/:id", h.UpdateProject)
    v1.DELETE("/projects/:id", h.DeleteProject)

    // Event CRUD.  Listing filters by ?date= or ?project_id=.
    v1.POST("/events", h.CreateEvent)
    v1.GET("/events", h.ListEvents)
    v1.GET("/events/:id", h.GetEvent)
    v1.PUT("/events/:id", h.UpdateEvent)
    v1.DELETE("/events/:id", h.DeleteEvent)

    // Shot requests nested under their event.
    v1.POST("/events/:id/shots", h.CreateShotRequest)
    v1.GET("/events/:id/shots", h.ListShotRequests)
    v1.PATCH("/events/:id/shots/:shot_id/status", h.UpdateShotStatus)
    v1.DELETE("/events/:id/shots/:shot_id", h.DeleteShotRequest)

    // Personnel roster.
    v1.POST("/personnel", h.CreatePersonnel)
    v1.GET("/personnel", h.ListPersonnel)
    v1.GET("/personnel/:id", h.GetPersonnel)
    v1.PUT("/personnel/:id", h.UpdatePersonnel)
    v1.DELETE("/personnel/:id", h.DeactivatePersonnel)

    // Read-heavy schedule views sit behind the Redis response cache;
    // the scheduler tick expires entries so the live view never serves
    // a stale status for long.
    views := v1.Group("")
    if rdb != nil {
        views.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
    }
    views.GET("/schedule/day", h.DaySchedule)
    views.GET("/live/events", h.LiveEvents)

    // Agents exchange their provisioning key for a signed token here,
    // then present that token on every ingest call.
    v1.POST("/agents/token", h.ExchangeAgentToken)

    // The ingest surface.  Capture agents authenticate with a signed
    // token; GET /jobs and the manual resolve/reconcile operations are
    // also used by producers from the internal dashboard, which holds
    // an agent token of its own.
    ingest := v1.Group("/ingest")
    ingest.Use(middleware.AgentAuth(agentSecret))
    ingest.POST("/reports", h.IngestReport)
    ingest.GET("/jobs", h.ListIngestJobs)
    ingest.POST("/jobs/:id/resolve", h.ResolveIngestJob)
    ingest.POST("/reconcile", h.TriggerReconcile)
}
