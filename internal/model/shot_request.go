package model

import "time"

// ShotStatus enumerates the lifecycle states of a shot request.
type ShotStatus string

const (
    ShotUnassigned  ShotStatus = "Unassigned"   // nobody is responsible yet
    ShotAssigned    ShotStatus = "Assigned"     // a photographer owns the shot
    ShotCaptured    ShotStatus = "Captured"     // material exists on disk
    ShotBlocked     ShotStatus = "Blocked"      // cannot be captured right now
    ShotRequestMore ShotStatus = "Request More" // client asked for more takes
    ShotCompleted   ShotStatus = "Completed"    // delivered and signed off
)

// IsTerminalCapture reports whether a status means material has already
// been captured; such shots are never promoted again by reconciliation.
func (s ShotStatus) IsTerminalCapture() bool {
    return s == ShotCaptured || s == ShotCompleted
}

// ShotRequest is an individual required photograph or video capture
// tied to an Event.  Its lifecycle is bounded by the owning event.
// This struct corresponds to a row in the `shot_requests` table.
//
// Fields:
//  ID                   – primary key identifier (UUID string).
//  EventID              – owning event.
//  Title                – short description of the required capture.
//  Status               – current lifecycle state.
//  AssignedPersonnelID  – photographer responsible (nil when unassigned).
//  InitialCapturerID    – first person who moved the shot into a captured
//                         state.  Write-once: once set it is never
//                         overwritten by a later status change.
//  LastStatusModifierID – who performed the most recent status change.
//  LastStatusModifiedAt – when the most recent status change happened.
//  BlockedReason        – why the shot is blocked.  Semantically required
//                         when Status is Blocked and cleared on any other
//                         status.
//  CreatedAt            – creation timestamp.
//  UpdatedAt            – last update timestamp.
type ShotRequest struct {
    ID                   string     // shot_requests.id
    EventID              string     // shot_requests.event_id
    Title                string     // shot_requests.title
    Status               ShotStatus // shot_requests.status
    AssignedPersonnelID  *string    // shot_requests.assigned_personnel_id (nullable)
    InitialCapturerID    *string    // shot_requests.initial_capturer_id (nullable, write-once)
    LastStatusModifierID *string    // shot_requests.last_status_modifier_id (nullable)
    LastStatusModifiedAt *time.Time // shot_requests.last_status_modified_at (nullable)
    BlockedReason        *string    // shot_requests.blocked_reason (nullable)
    CreatedAt            time.Time  // shot_requests.created_at
    UpdatedAt            time.Time  // shot_requests.updated_at
}
