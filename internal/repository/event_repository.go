package repository // repository for event persistence

import (
    "context"
    "database/sql"
    "fmt"
    "strings"

    "github.com/mkarimov/production-coverage/internal/model"
)

// EventRepo encapsulates database operations for events and their
// personnel assignments.
type EventRepo struct {
    db *sql.DB
}

// NewEventRepo constructs an EventRepo given a DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
    return &EventRepo{db: db}
}

const eventColumns = `id, project_id, name, date, time, priority, is_quick_turnaround, is_covered, notes, created_at, updated_at`

// scanEvent reads one event row.  The row scanner interface covers
// both *sql.Row and *sql.Rows.
func scanEvent(row interface{ Scan(...any) error }) (model.Event, error) {
    var ev model.Event
    var priority string
    err := row.Scan(&ev.ID, &ev.ProjectID, &ev.Name, &ev.Date, &ev.Time, &priority,
        &ev.IsQuickTurnaround, &ev.IsCovered, &ev.Notes, &ev.CreatedAt, &ev.UpdatedAt)
    if err != nil {
        return model.Event{}, err
    }
    ev.Priority = model.ParsePriority(priority)
    return ev, nil
}

// Create inserts an event together with its personnel assignment rows.
// Both writes happen in one transaction so a half-created event is
// never observable.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return fmt.Errorf("begin: %w", err)
    }
    defer func() { _ = tx.Rollback() }()

    _, err = tx.ExecContext(ctx,
        `INSERT INTO events (id, project_id, name, date, time, priority, is_quick_turnaround, is_covered, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
        ev.ID, ev.ProjectID, ev.Name, ev.Date, ev.Time, ev.Priority.String(), ev.IsQuickTurnaround, ev.IsCovered, ev.Notes)
    if err != nil {
        return fmt.Errorf("insert event: %w", err)
    }
    if err := replaceAssignments(ctx, tx, ev.ID, ev.AssignedPersonnelIDs); err != nil {
        return err
    }
    return tx.Commit()
}

// GetByID loads one event with its personnel assignments.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
    row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
    ev, err := scanEvent(row)
    if err == sql.ErrNoRows {
        return nil, ErrEventNotFound
    }
    if err != nil {
        return nil, err
    }
    if ev.AssignedPersonnelIDs, err = r.assignments(ctx, ev.ID); err != nil {
        return nil, err
    }
    return &ev, nil
}

// ListByDate returns all events on a calendar date ("YYYY-MM-DD"),
// ordered by id so downstream layout and classification see a stable
// input order.
func (r *EventRepo) ListByDate(ctx context.Context, date string) ([]model.Event, error) {
    return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE date = ? ORDER BY id`, date)
}

// ListByProject returns all events belonging to a project ordered by
// date, then id.
func (r *EventRepo) ListByProject(ctx context.Context, projectID string) ([]model.Event, error) {
    return r.list(ctx, `SELECT `+eventColumns+` FROM events WHERE project_id = ? ORDER BY date, id`, projectID)
}

func (r *EventRepo) list(ctx context.Context, query string, args ...any) ([]model.Event, error) {
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    events := make([]model.Event, 0)
    for rows.Next() {
        ev, err := scanEvent(rows)
        if err != nil {
            return nil, err
        }
        events = append(events, ev)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    for i := range events {
        if events[i].AssignedPersonnelIDs, err = r.assignments(ctx, events[i].ID); err != nil {
            return nil, err
        }
    }
    return events, nil
}

// Update rewrites the mutable fields of an event and replaces its
// personnel assignments.
func (r *EventRepo) Update(ctx context.Context, ev *model.Event) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return fmt.Errorf("begin: %w", err)
    }
    defer func() { _ = tx.Rollback() }()

    res, err := tx.ExecContext(ctx,
        `UPDATE events SET name = ?, date = ?, time = ?, priority = ?, is_quick_turnaround = ?, is_covered = ?, notes = ? WHERE id = ?`,
        ev.Name, ev.Date, ev.Time, ev.Priority.String(), ev.IsQuickTurnaround, ev.IsCovered, ev.Notes, ev.ID)
    if err != nil {
        return fmt.Errorf("update event: %w", err)
    }
    if n, _ := res.RowsAffected(); n == 0 {
        // RowsAffected is zero both for a missing row and for a no-op
        // update; re-check existence before reporting not found.
        var exists int
        if err := tx.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, ev.ID).Scan(&exists); err == sql.ErrNoRows {
            return ErrEventNotFound
        } else if err != nil {
            return err
        }
    }
    if err := replaceAssignments(ctx, tx, ev.ID, ev.AssignedPersonnelIDs); err != nil {
        return err
    }
    return tx.Commit()
}

// Delete removes an event.  Events with remaining shot requests cannot
// be deleted; callers receive ErrConflict instead.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
    var shots int
    if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shot_requests WHERE event_id = ?`, id).Scan(&shots); err != nil {
        return err
    }
    if shots > 0 {
        return ErrConflict
    }
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return fmt.Errorf("begin: %w", err)
    }
    defer func() { _ = tx.Rollback() }()

    if _, err := tx.ExecContext(ctx, `DELETE FROM event_personnel WHERE event_id = ?`, id); err != nil {
        return err
    }
    res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrEventNotFound
    }
    return tx.Commit()
}

// assignments loads the personnel ids assigned to an event in a stable
// order.
func (r *EventRepo) assignments(ctx context.Context, eventID string) ([]string, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT personnel_id FROM event_personnel WHERE event_id = ? ORDER BY personnel_id`, eventID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    ids := make([]string, 0)
    for rows.Next() {
        var id string
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        ids = append(ids, id)
    }
    return ids, rows.Err()
}

// replaceAssignments rewrites the event_personnel join rows for an
// event inside the caller's transaction.
func replaceAssignments(ctx context.Context, tx *sql.Tx, eventID string, personnelIDs []string) error {
    if _, err := tx.ExecContext(ctx, `DELETE FROM event_personnel WHERE event_id = ?`, eventID); err != nil {
        return fmt.Errorf("clear assignments: %w", err)
    }
    if len(personnelIDs) == 0 {
        return nil
    }
    // Build a multi-row INSERT with two placeholders per assignment.
    query := `INSERT INTO event_personnel (event_id, personnel_id) VALUES ` +
        strings.TrimSuffix(strings.Repeat("(?, ?),", len(personnelIDs)), ",")
    args := make([]any, 0, len(personnelIDs)*2)
    for _, pid := range personnelIDs {
        args = append(args, eventID, pid)
    }
    if _, err := tx.ExecContext(ctx, query, args...); err != nil {
        return fmt.Errorf("insert assignments: %w", err)
    }
    return nil
}
