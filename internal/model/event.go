package model

import "time"

// Priority ranks how important covering an event is.  The ordinal
// values are ordered so that numeric comparison matches urgency.
type Priority int

const (
    PriorityLow      Priority = iota // routine coverage
    PriorityMedium                   // standard coverage
    PriorityHigh                     // important coverage
    PriorityCritical                 // must-not-miss coverage
)

// String returns the canonical label stored in the database and
// exchanged over the API for a priority value.
func (p Priority) String() string {
    switch p {
    case PriorityLow:
        return "Low"
    case PriorityMedium:
        return "Medium"
    case PriorityHigh:
        return "High"
    case PriorityCritical:
        return "Critical"
    }
    return "Low"
}

// ParsePriority converts a stored label back into a Priority.  Unknown
// labels map to PriorityLow so that a bad row never breaks a listing.
func ParsePriority(s string) Priority {
    switch s {
    case "Critical":
        return PriorityCritical
    case "High":
        return PriorityHigh
    case "Medium":
        return PriorityMedium
    }
    return PriorityLow
}

// Event represents a single scheduled happening inside a project that
// may require production coverage.  The date and time range are kept
// exactly as entered (a calendar date plus an "HH:MM - HH:MM" string);
// the timeline package derives absolute instants from them on demand.
// This struct corresponds to a row in the `events` table.
//
// Fields:
//  ID                   – primary key identifier (UUID string).
//  ProjectID            – owning project.
//  Name                 – display name of the event.
//  Date                 – calendar date in "YYYY-MM-DD" form, no time zone.
//  Time                 – coverage window as "HH:MM - HH:MM"; the end may be
//                         numerically earlier than the start, meaning the
//                         window crosses midnight.
//  Priority             – coverage priority (Low/Medium/High/Critical).
//  IsQuickTurnaround    – whether deliverables are due immediately after.
//  IsCovered            – whether the event requires production coverage.
//  AssignedPersonnelIDs – personnel assigned to cover this event.
//  Notes                – free-form production notes.
//  CreatedAt            – creation timestamp.
//  UpdatedAt            – last update timestamp.
type Event struct {
    ID                   string    // events.id
    ProjectID            string    // events.project_id
    Name                 string    // events.name
    Date                 string    // events.date ("YYYY-MM-DD")
    Time                 string    // events.time ("HH:MM - HH:MM")
    Priority             Priority  // events.priority
    IsQuickTurnaround    bool      // events.is_quick_turnaround
    IsCovered            bool      // events.is_covered
    AssignedPersonnelIDs []string  // events_personnel join rows
    Notes                string    // events.notes
    CreatedAt            time.Time // events.created_at
    UpdatedAt            time.Time // events.updated_at
}
