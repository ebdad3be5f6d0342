package handler

import (
    "context"
    "errors"
    "log"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/mkarimov/production-coverage/internal/model"
    "github.com/mkarimov/production-coverage/internal/queue"
    "github.com/mkarimov/production-coverage/internal/reconcile"
    "github.com/mkarimov/production-coverage/internal/repository"
    queue_publisher "github.com/mkarimov/production-coverage/internal/service"
)

// jobView is the wire shape of an ingest job report.
type jobView struct {
    JobID                    string  `json:"job_id"`
    AgentID                  string  `json:"agent_id"`
    Status                   string  `json:"status"`
    DeterminedEventID        *string `json:"determined_event_id"`
    DeterminedPhotographerID *string `json:"determined_photographer_id"`
    FilesProcessed           *int    `json:"files_processed"`
    FilesMatchedToEvents     *int    `json:"files_matched_to_events"`
    Reconciled               bool    `json:"reconciled"`
    ReportedAt               string  `json:"reported_at"`
    UpdatedAt                string  `json:"updated_at"`
}

func toJobView(j model.IngestJobStatus) jobView {
    return jobView{
        JobID:                    j.JobID,
        AgentID:                  j.AgentID,
        Status:                   string(j.Status),
        DeterminedEventID:        j.DeterminedEventID,
        DeterminedPhotographerID: j.DeterminedPhotographerID,
        FilesProcessed:           j.FilesProcessed,
        FilesMatchedToEvents:     j.FilesMatchedToEvents,
        Reconciled:               j.HiveProcessedCompletion,
        ReportedAt:               j.ReportedAt.UTC().Format(time.RFC3339),
        UpdatedAt:                j.UpdatedAt.UTC().Format(time.RFC3339),
    }
}

// IngestReport handles POST /v1/ingest/reports.  The authenticated
// capture agent pushes job reports here; the same payload also arrives
// over the broker, and both paths converge on ApplyAgentReport, so a
// report delivered twice is harmless.
func (h *AppHandler) IngestReport(c echo.Context) error {
    agentID, err := getAgentID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "agent identity missing"})
    }

    var ev queue.IngestReportEvent
    if err := c.Bind(&ev); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if strings.TrimSpace(ev.JobID) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "jobId is required"})
    }
    // The token, not the payload, decides which agent this report
    // belongs to.
    ev.AgentID = agentID

    if err := h.ApplyAgentReport(c.Request().Context(), ev); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not record report"})
    }
    return c.JSON(http.StatusAccepted, echo.Map{"job_id": ev.JobID, "status": ev.Status})
}

// ListIngestJobs handles GET /v1/ingest/jobs.
func (h *AppHandler) ListIngestJobs(c echo.Context) error {
    jobs, err := h.JobRepo.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load jobs"})
    }
    out := make([]jobView, 0, len(jobs))
    for _, j := range jobs {
        out = append(out, toJobView(j))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ResolveIngestJob handles POST /v1/ingest/jobs/:id/resolve.  A
// producer uses it to close out a completed job that reconciliation
// will never pick up on its own, typically one stuck reporting zero
// matched files.  The job is tagged as reconciled with no shot effect.
func (h *AppHandler) ResolveIngestJob(c echo.Context) error {
    jobID := c.Param("id")
    job, err := h.JobRepo.GetByID(c.Request().Context(), jobID)
    if errors.Is(err, repository.ErrJobNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "job not found"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
    }
    if job.HiveProcessedCompletion {
        return c.JSON(http.StatusOK, echo.Map{"job_id": jobID, "resolved": true})
    }
    if !job.Status.IsTerminal() {
        return c.JSON(http.StatusConflict, echo.Map{"error": "job is still running"})
    }
    if err := h.JobRepo.MarkProcessed(c.Request().Context(), jobID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not resolve job"})
    }
    return c.JSON(http.StatusOK, echo.Map{"job_id": jobID, "resolved": true})
}

// TriggerReconcile handles POST /v1/ingest/reconcile, forcing a
// reconciliation pass outside the report-driven path.
func (h *AppHandler) TriggerReconcile(c echo.Context) error {
    res, err := h.runReconcile(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reconciliation failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "shots_captured": res.ShotsChanged,
        "jobs_processed": len(res.ProcessedJobs),
        "jobs_resolved_stale": len(res.ResolvedStale),
    })
}

// ApplyAgentReport upserts one agent report and, when the report marks
// a completion, runs a reconciliation pass.  It is the single entry
// point for both the HTTP report endpoint and the broker consumer.
func (h *AppHandler) ApplyAgentReport(ctx context.Context, ev queue.IngestReportEvent) error {
    now := time.Now().In(h.Timezone)
    job := &model.IngestJobStatus{
        JobID:                    ev.JobID,
        AgentID:                  ev.AgentID,
        Status:                   model.IngestStatus(ev.Status),
        DeterminedEventID:        ev.DeterminedEventID,
        DeterminedPhotographerID: ev.DeterminedPhotographerID,
        FilesProcessed:           ev.FilesProcessed,
        FilesMatchedToEvents:     ev.FilesMatchedToEvents,
        ReportedAt:               now,
        UpdatedAt:                now,
    }
    if err := h.JobRepo.UpsertReport(ctx, job); err != nil {
        return err
    }
    if job.Status != model.IngestCompleted {
        return nil
    }
    if _, err := h.runReconcile(ctx); err != nil {
        return err
    }
    return nil
}

// runReconcile loads the unprocessed completed jobs and the shot state
// they can touch, runs one reconciliation pass, applies the resulting
// mutations transactionally, tags the jobs, and publishes a
// shot.captured message per promotion.  Publish failures are logged
// and swallowed: the database is the source of truth and the message
// is an optimization for downstream listeners.
func (h *AppHandler) runReconcile(ctx context.Context) (reconcile.Result, error) {
    jobs, err := h.JobRepo.ListUnprocessedCompleted(ctx)
    if err != nil {
        return reconcile.Result{}, err
    }
    if len(jobs) == 0 {
        return reconcile.Result{}, nil
    }

    seen := make(map[string]bool)
    eventIDs := make([]string, 0, len(jobs))
    for _, j := range jobs {
        if j.DeterminedEventID == nil || seen[*j.DeterminedEventID] {
            continue
        }
        seen[*j.DeterminedEventID] = true
        eventIDs = append(eventIDs, *j.DeterminedEventID)
    }

    shots, err := h.ShotRepo.ListByEvents(ctx, eventIDs)
    if err != nil {
        return reconcile.Result{}, err
    }

    now := time.Now().In(h.Timezone)
    res := reconcile.Reconcile(now, jobs, shots, reconcile.Options{StaleAfter: h.StaleJobAfter})

    if len(res.Mutations) > 0 {
        if err := h.ShotRepo.ApplyCaptureMutations(ctx, res.Mutations); err != nil {
            return reconcile.Result{}, err
        }
    }
    for _, jobID := range res.ProcessedJobs {
        if err := h.JobRepo.MarkProcessed(ctx, jobID); err != nil {
            return reconcile.Result{}, err
        }
    }

    for _, mut := range res.Mutations {
        msg := queue.ShotCapturedEvent{
            EventID:      mut.EventID,
            ShotID:       mut.ShotID,
            CapturedBy:   mut.LastStatusModifierID,
            SourceJobID:  mut.SourceJobID,
            FirstCapture: mut.InitialCapturerID != nil,
            CapturedAt:   mut.LastStatusModifiedAt.UTC().Format(time.RFC3339),
        }
        if err := queue_publisher.PublishShotCaptured(ctx, msg); err != nil {
            log.Printf("[INGEST] shot.captured publish failed for shot %s: %v", mut.ShotID, err)
        }
    }

    if res.ShotsChanged > 0 || len(res.ResolvedStale) > 0 {
        log.Printf("[INGEST] reconcile pass: %d shots captured, %d jobs processed, %d stale",
            res.ShotsChanged, len(res.ProcessedJobs), len(res.ResolvedStale))
    }
    return res, nil
}
