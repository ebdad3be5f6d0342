package repository // repository for project persistence

import (
    "context"
    "database/sql"
    "fmt"

    "github.com/mkarimov/production-coverage/internal/model"
)

// ProjectRepo encapsulates database operations for projects.
type ProjectRepo struct {
    db *sql.DB
}

// NewProjectRepo constructs a ProjectRepo given a DB handle.
func NewProjectRepo(db *sql.DB) *ProjectRepo {
    return &ProjectRepo{db: db}
}

// Create inserts a new project.
func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
    _, err := r.db.ExecContext(ctx,
        `INSERT INTO projects (id, name, client, status) VALUES (?, ?, ?, ?)`,
        p.ID, p.Name, p.Client, p.Status)
    if err != nil {
        return fmt.Errorf("insert project: %w", err)
    }
    return nil
}

// GetByID loads one project.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
    var p model.Project
    err := r.db.QueryRowContext(ctx,
        `SELECT id, name, client, status, created_at, updated_at FROM projects WHERE id = ?`, id).
        Scan(&p.ID, &p.Name, &p.Client, &p.Status, &p.CreatedAt, &p.UpdatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrProjectNotFound
    }
    if err != nil {
        return nil, err
    }
    return &p, nil
}

// List returns all projects ordered by name.
func (r *ProjectRepo) List(ctx context.Context) ([]model.Project, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, name, client, status, created_at, updated_at FROM projects ORDER BY name`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    projects := make([]model.Project, 0)
    for rows.Next() {
        var p model.Project
        if err := rows.Scan(&p.ID, &p.Name, &p.Client, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
            return nil, err
        }
        projects = append(projects, p)
    }
    return projects, rows.Err()
}

// Update rewrites the mutable fields of a project.
func (r *ProjectRepo) Update(ctx context.Context, p *model.Project) error {
    res, err := r.db.ExecContext(ctx,
        `UPDATE projects SET name = ?, client = ?, status = ? WHERE id = ?`,
        p.Name, p.Client, p.Status, p.ID)
    if err != nil {
        return fmt.Errorf("update project: %w", err)
    }
    if n, _ := res.RowsAffected(); n == 0 {
        if _, err := r.GetByID(ctx, p.ID); err != nil {
            return err
        }
    }
    return nil
}

// Delete removes a project.  Projects that still own events cannot be
// deleted.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
    var events int
    if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE project_id = ?`, id).Scan(&events); err != nil {
        return err
    }
    if events > 0 {
        return ErrConflict
    }
    res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
    if err != nil {
        return err
    }
    if n, _ := res.RowsAffected(); n == 0 {
        return ErrProjectNotFound
    }
    return nil
}
