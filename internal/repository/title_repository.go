package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/grapplehq/ringside/internal/model"
)

// ErrInvalidPrestige is returned when a prestige tier falls outside 1–5.
var ErrInvalidPrestige = errors.New("prestige tier out of range")

// TitleRepo provides championship CRUD and the holder-history tracker.
// Reign history is append-mostly: a title change closes the open reign and
// opens a new one in the same transaction, and titles.current_holder_id is
// written only inside that transaction so the denormalized pointer can never
// drift from the open history row. The partial unique index
// uq_title_holders_open is the structural backstop for the single-open-reign
// invariant.
type TitleRepo struct {
	db *sql.DB
}

// NewTitleRepo returns a TitleRepo bound to the provided database.
func NewTitleRepo(db *sql.DB) *TitleRepo { return &TitleRepo{db: db} }

// DB exposes the underlying handle for cross-repository transactions.
func (r *TitleRepo) DB() *sql.DB { return r.db }

const titleCols = `id, name, title_type, division, prestige_tier, gender,
	show_id, current_holder_id, is_active, is_user_created, created_at, updated_at`

func scanTitle(row interface{ Scan(...any) error }) (*model.Title, error) {
	var t model.Title
	var showID, holderID sql.NullInt64
	err := row.Scan(
		&t.ID, &t.Name, &t.TitleType, &t.Division, &t.PrestigeTier, &t.Gender,
		&showID, &holderID, &t.IsActive, &t.IsUserCreated, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if showID.Valid {
		v := showID.Int64
		t.ShowID = &v
	}
	if holderID.Valid {
		v := holderID.Int64
		t.CurrentHolderID = &v
	}
	return &t, nil
}

// TitleParams carries the fields accepted when creating a belt.
type TitleParams struct {
	Name         string
	TitleType    string
	Division     string
	PrestigeTier int
	Gender       string
	ShowID       *int64
	UserCreated  bool
}

// Create inserts a new championship. The belt starts active and vacant.
// Returns ErrNotFound when the reserving show does not exist.
func (r *TitleRepo) Create(ctx context.Context, p TitleParams) (*model.Title, error) {
	if p.PrestigeTier < 1 || p.PrestigeTier > 5 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPrestige, p.PrestigeTier)
	}
	if p.ShowID != nil {
		if err := requireExists(ctx, r.db, "shows", *p.ShowID); err != nil {
			return nil, err
		}
	}
	const q = `INSERT INTO titles (name, title_type, division, prestige_tier, gender, show_id, is_user_created)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.TitleType, p.Division, p.PrestigeTier, p.Gender, p.ShowID, p.UserCreated)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID returns one title or ErrNotFound.
func (r *TitleRepo) GetByID(ctx context.Context, id int64) (*model.Title, error) {
	q := `SELECT ` + titleCols + ` FROM titles WHERE id = ?`
	t, err := scanTitle(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("title %d: %w", id, ErrNotFound)
	}
	return t, err
}

// List returns all titles ordered by prestige tier then name.
func (r *TitleRepo) List(ctx context.Context) ([]model.Title, error) {
	q := `SELECT ` + titleCols + ` FROM titles ORDER BY prestige_tier ASC, name ASC`
	return r.listTitles(ctx, q)
}

// ForShow returns the titles reserved to one show, most prestigious first.
func (r *TitleRepo) ForShow(ctx context.Context, showID int64) ([]model.Title, error) {
	if err := requireExists(ctx, r.db, "shows", showID); err != nil {
		return nil, err
	}
	q := `SELECT ` + titleCols + ` FROM titles WHERE show_id = ? ORDER BY prestige_tier ASC, name ASC`
	return r.listTitles(ctx, q, showID)
}

// Unassigned returns active titles reserved to no show. These are the belts
// available for cross-show booking.
func (r *TitleRepo) Unassigned(ctx context.Context) ([]model.Title, error) {
	q := `SELECT ` + titleCols + ` FROM titles WHERE show_id IS NULL AND is_active = 1 ORDER BY prestige_tier ASC, name ASC`
	return r.listTitles(ctx, q)
}

// ListWithHolders returns all titles with the display name of each current
// holder, derived by joining the open history row. Vacant belts carry a nil
// holder name.
func (r *TitleRepo) ListWithHolders(ctx context.Context) ([]model.TitleWithHolder, error) {
	q := `SELECT ` + prefixCols("t", titleCols) + `, w.name
	      FROM titles t
	      LEFT JOIN title_holders th ON th.title_id = t.id AND th.held_until IS NULL
	      LEFT JOIN wrestlers w ON w.id = th.wrestler_id
	      ORDER BY t.prestige_tier ASC, t.name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.TitleWithHolder, 0)
	for rows.Next() {
		var item model.TitleWithHolder
		var showID, holderID sql.NullInt64
		var holderName sql.NullString
		if err := rows.Scan(
			&item.ID, &item.Name, &item.TitleType, &item.Division, &item.PrestigeTier, &item.Gender,
			&showID, &holderID, &item.IsActive, &item.IsUserCreated, &item.CreatedAt, &item.UpdatedAt,
			&holderName,
		); err != nil {
			return nil, err
		}
		if showID.Valid {
			v := showID.Int64
			item.ShowID = &v
		}
		if holderID.Valid {
			v := holderID.Int64
			item.CurrentHolderID = &v
		}
		item.HolderName = strPtr(holderName)
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *TitleRepo) listTitles(ctx context.Context, q string, args ...any) ([]model.Title, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Title, 0)
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// SetActive retires (false) or reinstates (true) a belt. Retiring does not
// vacate it; call Vacate as well to strip the holder.
func (r *TitleRepo) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE titles SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("title %d: %w", id, ErrNotFound)
	}
	return nil
}

// AssignToShow reserves the belt to a show, or releases the reservation
// when showID is nil.
func (r *TitleRepo) AssignToShow(ctx context.Context, id int64, showID *int64) error {
	if showID != nil {
		if err := requireExists(ctx, r.db, "shows", *showID); err != nil {
			return err
		}
	}
	res, err := r.db.ExecContext(ctx, `UPDATE titles SET show_id = ? WHERE id = ?`, showID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("title %d: %w", id, ErrNotFound)
	}
	return nil
}

// ReignMeta carries the free-text event metadata recorded with a title
// change.
type ReignMeta struct {
	EventName     *string
	EventLocation *string
	ChangeMethod  *string
}

// Crown makes the wrestler the title's current holder. In one transaction
// it closes the open reign (if any), opens a new one, and repoints
// titles.current_holder_id.
//
// Returns ErrNotFound when the title or wrestler does not exist,
// ErrTitleRetired when the belt's is_active flag is false, and ErrConflict
// when the transaction cannot complete.
func (r *TitleRepo) Crown(ctx context.Context, titleID, wrestlerID int64, meta ReignMeta) error {
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
	if err := r.CrownTx(ctx, tx, titleID, wrestlerID, meta); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrConflict, err)
	}
	committed = true
	return nil
}

// CrownTx is Crown scoped to an open transaction, so a caller can make a
// title change part of a larger atomic unit (recording a title-match
// result). The caller owns commit/rollback.
func (r *TitleRepo) CrownTx(ctx context.Context, tx *sql.Tx, titleID, wrestlerID int64, meta ReignMeta) error {
	var active bool
	err := tx.QueryRowContext(ctx, `SELECT is_active FROM titles WHERE id = ?`, titleID).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("title %d: %w", titleID, ErrNotFound)
	}
	if err != nil {
		return err
	}
	if !active {
		return fmt.Errorf("title %d: %w", titleID, ErrTitleRetired)
	}
	if err := requireExistsTx(ctx, tx, "wrestlers", wrestlerID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`UPDATE title_holders SET held_until = ? WHERE title_id = ? AND held_until IS NULL`,
		now, titleID,
	); err != nil {
		return fmt.Errorf("%w: close open reign: %v", ErrConflict, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO title_holders (title_id, wrestler_id, held_since, event_name, event_location, change_method)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		titleID, wrestlerID, now, meta.EventName, meta.EventLocation, meta.ChangeMethod,
	); err != nil {
		return fmt.Errorf("%w: open new reign: %v", ErrConflict, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE titles SET current_holder_id = ? WHERE id = ?`,
		wrestlerID, titleID,
	); err != nil {
		return fmt.Errorf("%w: update holder pointer: %v", ErrConflict, err)
	}
	return nil
}

// Vacate strips the title: the open reign (if any) is closed and the holder
// pointer cleared, atomically. Vacating an already vacant title is a no-op.
func (r *TitleRepo) Vacate(ctx context.Context, titleID int64) error {
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

	if err := requireExistsTx(ctx, tx, "titles", titleID); err != nil {
		return err
	}
	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`UPDATE title_holders SET held_until = ? WHERE title_id = ? AND held_until IS NULL`,
		now, titleID,
	); err != nil {
		return fmt.Errorf("%w: close open reign: %v", ErrConflict, err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE titles SET current_holder_id = NULL WHERE id = ?`, titleID,
	); err != nil {
		return fmt.Errorf("%w: clear holder pointer: %v", ErrConflict, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrConflict, err)
	}
	committed = true
	return nil
}

// CurrentHolder returns the wrestler id of the open reign, or nil when the
// title is vacant. The answer is derived from the history table, not the
// denormalized pointer, so reads cannot observe drift.
func (r *TitleRepo) CurrentHolder(ctx context.Context, titleID int64) (*int64, error) {
	if err := requireExists(ctx, r.db, "titles", titleID); err != nil {
		return nil, err
	}
	var wrestlerID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT wrestler_id FROM title_holders WHERE title_id = ? AND held_until IS NULL`,
		titleID,
	).Scan(&wrestlerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wrestlerID, nil
}

// History returns every reign of the title, oldest first, the still-open
// one last. Each entry carries the holder's display fields.
func (r *TitleRepo) History(ctx context.Context, titleID int64) ([]model.Reign, error) {
	if err := requireExists(ctx, r.db, "titles", titleID); err != nil {
		return nil, err
	}
	const q = `SELECT th.id, th.title_id, th.wrestler_id, th.held_since, th.held_until,
	                  th.event_name, th.event_location, th.change_method,
	                  th.created_at, th.updated_at,
	                  w.name, w.gender
	           FROM title_holders th
	           JOIN wrestlers w ON w.id = th.wrestler_id
	           WHERE th.title_id = ?
	           ORDER BY th.held_since ASC, th.id ASC`
	rows, err := r.db.QueryContext(ctx, q, titleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reign, 0)
	for rows.Next() {
		var reign model.Reign
		var heldUntil sql.NullTime
		var eventName, eventLocation, changeMethod sql.NullString
		if err := rows.Scan(
			&reign.Holder.ID, &reign.Holder.TitleID, &reign.Holder.WrestlerID,
			&reign.Holder.HeldSince, &heldUntil,
			&eventName, &eventLocation, &changeMethod,
			&reign.Holder.CreatedAt, &reign.Holder.UpdatedAt,
			&reign.WrestlerName, &reign.WrestlerGender,
		); err != nil {
			return nil, err
		}
		if heldUntil.Valid {
			t := heldUntil.Time
			reign.Holder.HeldUntil = &t
		}
		reign.Holder.EventName = strPtr(eventName)
		reign.Holder.EventLocation = strPtr(eventLocation)
		reign.Holder.ChangeMethod = strPtr(changeMethod)
		out = append(out, reign)
	}
	return out, rows.Err()
}
