package repository // repository for shot request persistence

import (
    "context"
    "database/sql"
    "fmt"
    "time"

    "github.com/mkarimov/production-coverage/internal/model"
    "github.com/mkarimov/production-coverage/internal/reconcile"
)

// ShotRequestRepo encapsulates database operations for shot_requests.
type ShotRequestRepo struct {
    db *sql.DB
}

// NewShotRequestRepo constructs a ShotRequestRepo given a DB handle.
func NewShotRequestRepo(db *sql.DB) *ShotRequestRepo {
    return &ShotRequestRepo{db: db}
}

const shotColumns = `id, event_id, title, status, assigned_personnel_id, initial_capturer_id, last_status_modifier_id, last_status_modified_at, blocked_reason, created_at, updated_at`

func scanShot(row interface{ Scan(...any) error }) (model.ShotRequest, error) {
    var s model.ShotRequest
    var status string
    err := row.Scan(&s.ID, &s.EventID, &s.Title, &status, &s.AssignedPersonnelID,
        &s.InitialCapturerID, &s.LastStatusModifierID, &s.LastStatusModifiedAt,
        &s.BlockedReason, &s.CreatedAt, &s.UpdatedAt)
    if err != nil {
        return model.ShotRequest{}, err
    }
    s.Status = model.ShotStatus(status)
    return s, nil
}

// Create inserts a new shot request.
func (r *ShotRequestRepo) Create(ctx context.Context, s *model.ShotRequest) error {
    _, err := r.db.ExecContext(ctx,
        `INSERT INTO shot_requests (id, event_id, title, status, assigned_personnel_id) VALUES (?, ?, ?, ?, ?)`,
        s.ID, s.EventID, s.Title, string(s.Status), s.AssignedPersonnelID)
    if err != nil {
        return fmt.Errorf("insert shot request: %w", err)
    }
    return nil
}

// GetByID loads one shot request scoped to its owning event.
func (r *ShotRequestRepo) GetByID(ctx context.Context, eventID, id string) (*model.ShotRequest, error) {
    row := r.db.QueryRowContext(ctx,
        `SELECT `+shotColumns+` FROM shot_requests WHERE event_id = ? AND id = ?`, eventID, id)
    s, err := scanShot(row)
    if err == sql.ErrNoRows {
        return nil, ErrShotNotFound
    }
    if err != nil {
        return nil, err
    }
    return &s, nil
}

// ListByEvent returns every shot request of an event in creation order.
// The reconciler depends on this order being stable: promotions walk
// the list as returned here.
func (r *ShotRequestRepo) ListByEvent(ctx context.Context, eventID string) ([]model.ShotRequest, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+shotColumns+` FROM shot_requests WHERE event_id = ? ORDER BY created_at, id`, eventID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    shots := make([]model.ShotRequest, 0)
    for rows.Next() {
        s, err := scanShot(rows)
        if err != nil {
            return nil, err
        }
        shots = append(shots, s)
    }
    return shots, rows.Err()
}

// ListByEvents loads shot requests for a set of events keyed by event
// id, the snapshot shape the reconciler consumes.
func (r *ShotRequestRepo) ListByEvents(ctx context.Context, eventIDs []string) (map[string][]model.ShotRequest, error) {
    out := make(map[string][]model.ShotRequest, len(eventIDs))
    for _, id := range eventIDs {
        shots, err := r.ListByEvent(ctx, id)
        if err != nil {
            return nil, err
        }
        out[id] = shots
    }
    return out, nil
}

// UpdateStatus performs a manual status change on a shot request.  It
// enforces the domain invariants in SQL:
//
//   - initial_capturer_id is write-once: COALESCE keeps the existing
//     value whenever one is present, regardless of what the caller
//     supplies.
//   - blocked_reason is stored only when the new status is Blocked and
//     cleared on any other transition.
func (r *ShotRequestRepo) UpdateStatus(ctx context.Context, eventID, id string, status model.ShotStatus, modifierID string, blockedReason *string) error {
    var reason *string
    if status == model.ShotBlocked {
        reason = blockedReason
    }
    var capturer *string
    if status.IsTerminalCapture() {
        capturer = &modifierID
    }
    res, err := r.db.ExecContext(ctx,
        `UPDATE shot_requests
            SET status = ?,
                initial_capturer_id = COALESCE(initial_capturer_id, ?),
                last_status_modifier_id = ?,
                last_status_modified_at = ?,
                blocked_reason = ?
          WHERE event_id = ? AND id = ?`,
        string(status), capturer, modifierID, time.Now().UTC(), reason, eventID, id)
    if err != nil {
        return fmt.Errorf("update shot status: %w", err)
    }
    if n, _ := res.RowsAffected(); n == 0 {
        if _, err := r.GetByID(ctx, eventID, id); err != nil {
            return err
        }
    }
    return nil
}

// ApplyCaptureMutations applies the promotion intents emitted by a
// reconciliation pass in one transaction.  The COALESCE guard repeats
// the write-once rule at the storage layer, so even a stale intent can
// never overwrite an existing capture attribution.
func (r *ShotRequestRepo) ApplyCaptureMutations(ctx context.Context, muts []reconcile.ShotMutation) error {
    if len(muts) == 0 {
        return nil
    }
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return fmt.Errorf("begin: %w", err)
    }
    defer func() { _ = tx.Rollback() }()

    for _, m := range muts {
        _, err := tx.ExecContext(ctx,
            `UPDATE shot_requests
                SET status = ?,
                    initial_capturer_id = COALESCE(initial_capturer_id, ?),
                    last_status_modifier_id = ?,
                    last_status_modified_at = ?,
                    blocked_reason = NULL
              WHERE event_id = ? AND id = ?`,
            string(m.Status), m.InitialCapturerID, m.LastStatusModifierID, m.LastStatusModifiedAt,
            m.EventID, m.ShotID)
        if err != nil {
            return fmt.Errorf("apply mutation for shot %s: %w", m.ShotID, err)
        }
    }
    return tx.Commit()
}

// Delete removes a shot request from its event.
func (r *ShotRequestRepo) Delete(ctx context.Context, eventID, id string) error {
    res, err := r.db.ExecContext(ctx, `DELETE FROM shot_requests WHERE event_id = ? AND id = ?`, eventID, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrShotNotFound
    }
    return nil
}
