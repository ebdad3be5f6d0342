package repository // repository for ingest job report persistence

import (
    "context"
    "database/sql"
    "fmt"

    "github.com/mkarimov/production-coverage/internal/model"
)

// IngestJobRepo encapsulates database operations for ingest_jobs.  Job
// reports are externally-owned facts delivered by the capture agent;
// the application upserts and tags them but never deletes them.
type IngestJobRepo struct {
    db *sql.DB
}

// NewIngestJobRepo constructs an IngestJobRepo given a DB handle.
func NewIngestJobRepo(db *sql.DB) *IngestJobRepo {
    return &IngestJobRepo{db: db}
}

const jobColumns = `job_id, agent_id, status, determined_event_id, determined_photographer_id, files_processed, files_matched, hive_processed_completion, reported_at, updated_at`

func scanJob(row interface{ Scan(...any) error }) (model.IngestJobStatus, error) {
    var j model.IngestJobStatus
    var status string
    err := row.Scan(&j.JobID, &j.AgentID, &status, &j.DeterminedEventID,
        &j.DeterminedPhotographerID, &j.FilesProcessed, &j.FilesMatchedToEvents,
        &j.HiveProcessedCompletion, &j.ReportedAt, &j.UpdatedAt)
    if err != nil {
        return model.IngestJobStatus{}, err
    }
    j.Status = model.IngestStatus(status)
    return j, nil
}

// UpsertReport stores the latest report for a job, keyed by job_id.
// Reports arrive at-least-once and possibly out of order; the upsert
// refreshes the mutable fields but never un-sets the
// hive_processed_completion flag, so a stale duplicate of an already
// reconciled completion cannot reopen the job.
func (r *IngestJobRepo) UpsertReport(ctx context.Context, j *model.IngestJobStatus) error {
    _, err := r.db.ExecContext(ctx,
        `INSERT INTO ingest_jobs (job_id, agent_id, status, determined_event_id, determined_photographer_id, files_processed, files_matched)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON DUPLICATE KEY UPDATE
             agent_id = VALUES(agent_id),
             status = VALUES(status),
             determined_event_id = VALUES(determined_event_id),
             determined_photographer_id = VALUES(determined_photographer_id),
             files_processed = VALUES(files_processed),
             files_matched = VALUES(files_matched)`,
        j.JobID, j.AgentID, string(j.Status), j.DeterminedEventID, j.DeterminedPhotographerID,
        j.FilesProcessed, j.FilesMatchedToEvents)
    if err != nil {
        return fmt.Errorf("upsert ingest report: %w", err)
    }
    return nil
}

// GetByID loads one job report.
func (r *IngestJobRepo) GetByID(ctx context.Context, jobID string) (*model.IngestJobStatus, error) {
    row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM ingest_jobs WHERE job_id = ?`, jobID)
    j, err := scanJob(row)
    if err == sql.ErrNoRows {
        return nil, ErrJobNotFound
    }
    if err != nil {
        return nil, err
    }
    return &j, nil
}

// ListAll returns every job report ordered by job_id.
func (r *IngestJobRepo) ListAll(ctx context.Context) ([]model.IngestJobStatus, error) {
    return r.list(ctx, `SELECT `+jobColumns+` FROM ingest_jobs ORDER BY job_id`)
}

// ListUnprocessedCompleted returns the completed jobs that have not yet
// been reconciled into shot state, the snapshot a reconciliation pass
// consumes.
func (r *IngestJobRepo) ListUnprocessedCompleted(ctx context.Context) ([]model.IngestJobStatus, error) {
    return r.list(ctx,
        `SELECT `+jobColumns+` FROM ingest_jobs WHERE status = 'completed' AND hive_processed_completion = 0 ORDER BY job_id`)
}

func (r *IngestJobRepo) list(ctx context.Context, query string, args ...any) ([]model.IngestJobStatus, error) {
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    jobs := make([]model.IngestJobStatus, 0)
    for rows.Next() {
        j, err := scanJob(rows)
        if err != nil {
            return nil, err
        }
        jobs = append(jobs, j)
    }
    return jobs, rows.Err()
}

// MarkProcessed sets the reconciliation idempotency flag on a job.
// The WHERE clause makes the write a no-op when the flag is already
// set, so repeated passes over the same completion are harmless.
func (r *IngestJobRepo) MarkProcessed(ctx context.Context, jobID string) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE ingest_jobs SET hive_processed_completion = 1 WHERE job_id = ? AND hive_processed_completion = 0`, jobID)
    if err != nil {
        return fmt.Errorf("mark processed: %w", err)
    }
    if n, _ := res.RowsAffected(); n == 0 {
        // Either already processed (fine) or missing (report it).
        if _, err := r.GetByID(ctx, jobID); err != nil {
            return err
        }
    }
    return nil
}
