// Package queue defines message payloads exchanged over the message broker.
package queue

// IngestReportEvent is the job report the external capture agent
// publishes to the ingest.report queue whenever a file-ingestion job
// changes state.  Delivery is at-least-once: duplicates and reordered
// reports are expected, and the reconciler's idempotency flag absorbs
// them.  Field names follow the agent's wire contract.
type IngestReportEvent struct {
    JobID                    string  `json:"jobId"`
    AgentID                  string  `json:"agentId"`
    Status                   string  `json:"status"`
    DeterminedEventID        *string `json:"determinedEventId,omitempty"`
    DeterminedPhotographerID *string `json:"determinedPhotographerId,omitempty"`
    FilesProcessed           *int    `json:"filesProcessed,omitempty"`
    FilesMatchedToEvents     *int    `json:"filesMatchedToEvents,omitempty"`
}

// ShotCapturedEvent is published after reconciliation promotes a shot
// request, so downstream consumers can log activity or notify without
// querying the primary database.
type ShotCapturedEvent struct {
    EventID      string `json:"event_id"`
    ShotID       string `json:"shot_id"`
    CapturedBy   string `json:"captured_by"`
    SourceJobID  string `json:"source_job_id"`
    FirstCapture bool   `json:"first_capture"`
    CapturedAt   string `json:"captured_at"`
}
