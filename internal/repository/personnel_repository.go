package repository // repository for personnel persistence

import (
    "context"
    "database/sql"
    "fmt"

    "github.com/mkarimov/production-coverage/internal/model"
)

// PersonnelRepo encapsulates database operations for personnel.
type PersonnelRepo struct {
    db *sql.DB
}

// NewPersonnelRepo constructs a PersonnelRepo given a DB handle.
func NewPersonnelRepo(db *sql.DB) *PersonnelRepo {
    return &PersonnelRepo{db: db}
}

// Create inserts a new team member.
func (r *PersonnelRepo) Create(ctx context.Context, p *model.Personnel) error {
    _, err := r.db.ExecContext(ctx,
        `INSERT INTO personnel (id, full_name, role, email, is_active) VALUES (?, ?, ?, ?, ?)`,
        p.ID, p.FullName, p.Role, p.Email, p.IsActive)
    if err != nil {
        return fmt.Errorf("insert personnel: %w", err)
    }
    return nil
}

// GetByID loads one team member.
func (r *PersonnelRepo) GetByID(ctx context.Context, id string) (*model.Personnel, error) {
    var p model.Personnel
    err := r.db.QueryRowContext(ctx,
        `SELECT id, full_name, role, email, is_active, created_at, updated_at FROM personnel WHERE id = ?`, id).
        Scan(&p.ID, &p.FullName, &p.Role, &p.Email, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrPersonnelNotFound
    }
    if err != nil {
        return nil, err
    }
    return &p, nil
}

// List returns team members ordered by name.  When activeOnly is true
// the roster excludes deactivated members.
func (r *PersonnelRepo) List(ctx context.Context, activeOnly bool) ([]model.Personnel, error) {
    query := `SELECT id, full_name, role, email, is_active, created_at, updated_at FROM personnel`
    if activeOnly {
        query += ` WHERE is_active = 1`
    }
    query += ` ORDER BY full_name, id`

    rows, err := r.db.QueryContext(ctx, query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    people := make([]model.Personnel, 0)
    for rows.Next() {
        var p model.Personnel
        if err := rows.Scan(&p.ID, &p.FullName, &p.Role, &p.Email, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
            return nil, err
        }
        people = append(people, p)
    }
    return people, rows.Err()
}

// Update rewrites the mutable fields of a team member.
func (r *PersonnelRepo) Update(ctx context.Context, p *model.Personnel) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE personnel SET full_name = ?, role = ?, email = ?, is_active = ? WHERE id = ?`,
        p.FullName, p.Role, p.Email, p.IsActive, p.ID)
    if err != nil {
        return fmt.Errorf("update personnel: %w", err)
    }
    if n, _ := res.RowsAffected(); n == 0 {
        if _, err := r.GetByID(ctx, p.ID); err != nil {
            return err
        }
    }
    return nil
}

// Deactivate marks a member inactive instead of deleting the row, so
// historical capture attributions keep resolving.
func (r *PersonnelRepo) Deactivate(ctx context.Context, id string) error {
    res, err := r.db.ExecContext(ctx, `UPDATE personnel SET is_active = 0 WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        if _, err := r.GetByID(ctx, id); err != nil {
            return err
        }
    }
    return nil
}
