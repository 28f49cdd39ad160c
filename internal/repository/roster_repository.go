package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/grapplehq/ringside/internal/model"
)

// RosterRepo manages show roster assignments. Membership is exclusive: a
// wrestler is active on at most one show at a time, system-wide. Assignment
// rows are history: deactivated when the wrestler moves, never deleted, and
// a returning wrestler reactivates the old row for that show instead of
// inserting a duplicate.
//
// Every mutation that touches more than one row runs inside a single
// transaction; the partial unique index uq_show_rosters_active makes any
// slip (two active rows for one wrestler) a constraint error that aborts
// the transaction.
type RosterRepo struct {
	db *sql.DB
}

// NewRosterRepo returns a RosterRepo bound to the provided database.
func NewRosterRepo(db *sql.DB) *RosterRepo { return &RosterRepo{db: db} }

// DB exposes the underlying handle for cross-repository transactions.
func (r *RosterRepo) DB() *sql.DB { return r.db }

// Assign moves a wrestler to the target show's roster. Atomically it
// deactivates the wrestler's current assignment (on any show), then
// reactivates the row for this show if one exists or inserts a new one.
// Re-assigning to the show the wrestler is already active on is a no-op.
//
// Returns ErrNotFound when the wrestler or show does not exist, and
// ErrConflict when the transaction cannot complete; in that case nothing
// was applied.
func (r *RosterRepo) Assign(ctx context.Context, wrestlerID, showID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrConflict, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := requireExistsTx(ctx, tx, "wrestlers", wrestlerID); err != nil {
		return err
	}
	if err := requireExistsTx(ctx, tx, "shows", showID); err != nil {
		return err
	}

	// Look up the current assignment inside the transaction so the
	// read-then-write below is atomic under SQLite's serialized writer.
	var currentShow sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT show_id FROM show_rosters WHERE wrestler_id = ? AND is_active = 1`,
		wrestlerID,
	).Scan(&currentShow)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if currentShow.Valid && currentShow.Int64 == showID {
		// Already active on the target show.
		return tx.Commit()
	}
	if currentShow.Valid {
		if _, err := tx.ExecContext(ctx,
			`UPDATE show_rosters SET is_active = 0 WHERE wrestler_id = ? AND is_active = 1`,
			wrestlerID,
		); err != nil {
			return fmt.Errorf("%w: deactivate current assignment: %v", ErrConflict, err)
		}
	}

	// Reactivate a prior row for this exact pair, or insert the first one.
	res, err := tx.ExecContext(ctx,
		`UPDATE show_rosters SET is_active = 1, assigned_at = CURRENT_TIMESTAMP
		 WHERE show_id = ? AND wrestler_id = ?`,
		showID, wrestlerID,
	)
	if err != nil {
		return fmt.Errorf("%w: reactivate assignment: %v", ErrConflict, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO show_rosters (show_id, wrestler_id, is_active) VALUES (?, ?, 1)`,
			showID, wrestlerID,
		); err != nil {
			return fmt.Errorf("%w: insert assignment: %v", ErrConflict, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrConflict, err)
	}
	committed = true
	return nil
}

// Release deactivates the active assignment for the exact (show, wrestler)
// pair. Releasing a pair that is not active is a no-op, not an error.
func (r *RosterRepo) Release(ctx context.Context, wrestlerID, showID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE show_rosters SET is_active = 0
		 WHERE show_id = ? AND wrestler_id = ? AND is_active = 1`,
		showID, wrestlerID,
	)
	return err
}

// ActiveShowFor returns the id of the show the wrestler is currently active
// on, or nil when the wrestler is unassigned.
func (r *RosterRepo) ActiveShowFor(ctx context.Context, wrestlerID int64) (*int64, error) {
	var showID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT show_id FROM show_rosters WHERE wrestler_id = ? AND is_active = 1`,
		wrestlerID,
	).Scan(&showID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &showID, nil
}

// RosterOf returns all wrestlers with an active assignment on the show,
// ordered by name. Returns ErrNotFound when the show does not exist.
func (r *RosterRepo) RosterOf(ctx context.Context, showID int64) ([]model.Wrestler, error) {
	if err := requireExists(ctx, r.db, "shows", showID); err != nil {
		return nil, err
	}
	q := `SELECT ` + prefixCols("w", wrestlerCols) + `
	      FROM wrestlers w
	      JOIN show_rosters sr ON sr.wrestler_id = w.id
	      WHERE sr.show_id = ? AND sr.is_active = 1
	      ORDER BY w.name ASC`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Wrestler, 0)
	for rows.Next() {
		w, err := scanWrestler(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

// AssignmentsFor returns the full assignment history for a wrestler,
// oldest first, inactive rows included.
func (r *RosterRepo) AssignmentsFor(ctx context.Context, wrestlerID int64) ([]model.ShowRoster, error) {
	const q = `SELECT id, show_id, wrestler_id, assigned_at, is_active
	           FROM show_rosters WHERE wrestler_id = ? ORDER BY assigned_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, wrestlerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.ShowRoster, 0)
	for rows.Next() {
		var a model.ShowRoster
		if err := rows.Scan(&a.ID, &a.ShowID, &a.WrestlerID, &a.AssignedAt, &a.IsActive); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
