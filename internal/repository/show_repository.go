package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/grapplehq/ringside/internal/model"
)

// ShowRepo provides CRUD operations for shows. Roster membership and match
// cards hang off a show and cascade when it is deleted.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo returns a ShowRepo bound to the provided database.
func NewShowRepo(db *sql.DB) *ShowRepo { return &ShowRepo{db: db} }

// DB exposes the underlying handle for cross-repository transactions.
func (r *ShowRepo) DB() *sql.DB { return r.db }

// Create inserts a show and returns the stored row.
func (r *ShowRepo) Create(ctx context.Context, name, description string) (*model.Show, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO shows (name, description) VALUES (?, ?)`, name, description)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID returns one show or ErrNotFound.
func (r *ShowRepo) GetByID(ctx context.Context, id int64) (*model.Show, error) {
	const q = `SELECT id, name, description, created_at, updated_at FROM shows WHERE id = ?`
	var s model.Show
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("show %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns all shows ordered by name.
func (r *ShowRepo) List(ctx context.Context) ([]model.Show, error) {
	const q = `SELECT id, name, description, created_at, updated_at FROM shows ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Show, 0)
	for rows.Next() {
		var s model.Show
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update changes a show's name and description.
func (r *ShowRepo) Update(ctx context.Context, id int64, name, description string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE shows SET name = ?, description = ? WHERE id = ?`, name, description, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("show %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes a show. Roster rows and matches cascade; titles reserved
// to the show revert to unassigned (show_id set NULL by the schema).
func (r *ShowRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shows WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("show %d: %w", id, ErrNotFound)
	}
	return nil
}
