package model

import "time"

// IngestStatus enumerates the states an external capture agent reports
// for a file-ingestion job.
type IngestStatus string

const (
    IngestPending      IngestStatus = "pending"
    IngestProcessing   IngestStatus = "processing"
    IngestCopying      IngestStatus = "copying"
    IngestChecksumming IngestStatus = "checksumming"
    IngestCompleted    IngestStatus = "completed"
    IngestFailed       IngestStatus = "failed"
    IngestCancelled    IngestStatus = "cancelled"
)

// IsTerminal reports whether the agent will never update this job again.
func (s IngestStatus) IsTerminal() bool {
    return s == IngestCompleted || s == IngestFailed || s == IngestCancelled
}

// IngestJobStatus mirrors a job report delivered by the external capture
// agent.  Reports are externally-owned facts: the application only reads
// them and tags completed ones as reconciled, it never deletes them.
// This struct corresponds to a row in the `ingest_jobs` table.
//
// Fields:
//  JobID                    – unique job identifier assigned by the agent.
//  AgentID                  – which agent produced the report.
//  Status                   – current job state as last reported.
//  DeterminedEventID        – event the ingested files were matched to,
//                             when the agent could determine one.
//  DeterminedPhotographerID – photographer the agent attributed the
//                             files to, when determinable.
//  FilesProcessed           – total files the job handled.
//  FilesMatchedToEvents     – subset of files matched to the event.
//  HiveProcessedCompletion  – set once this job's completion has been
//                             reconciled into shot state.  This flag is
//                             the reconciliation idempotency key.
//  ReportedAt               – when the agent first reported the job.
//  UpdatedAt                – when the report was last refreshed.
type IngestJobStatus struct {
    JobID                    string       // ingest_jobs.job_id
    AgentID                  string       // ingest_jobs.agent_id
    Status                   IngestStatus // ingest_jobs.status
    DeterminedEventID        *string      // ingest_jobs.determined_event_id (nullable)
    DeterminedPhotographerID *string      // ingest_jobs.determined_photographer_id (nullable)
    FilesProcessed           *int         // ingest_jobs.files_processed (nullable)
    FilesMatchedToEvents     *int         // ingest_jobs.files_matched (nullable)
    HiveProcessedCompletion  bool         // ingest_jobs.hive_processed_completion
    ReportedAt               time.Time    // ingest_jobs.reported_at
    UpdatedAt                time.Time    // ingest_jobs.updated_at
}
