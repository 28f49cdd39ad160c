package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/grapplehq/ringside/internal/model"
)

// ErrInvalidRating is returned when a power rating falls outside 1–10.
var ErrInvalidRating = errors.New("power rating out of range")

// WrestlerRepo provides CRUD and profile-update operations for wrestlers.
// Wrestlers are global entities; roster membership lives in RosterRepo.
type WrestlerRepo struct {
	db *sql.DB
}

// NewWrestlerRepo returns a WrestlerRepo bound to the provided database.
func NewWrestlerRepo(db *sql.DB) *WrestlerRepo { return &WrestlerRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span repositories.
func (r *WrestlerRepo) DB() *sql.DB { return r.db }

const wrestlerCols = `id, name, gender, wins, losses, real_name, nickname,
	height, weight, debut_year, strength, speed, agility, stamina, charisma,
	technique, biography, is_user_created, created_at, updated_at`

// scanWrestler reads one wrestlers row from any row scanner. Nullable
// columns are mapped to pointer fields.
func scanWrestler(row interface{ Scan(...any) error }) (*model.Wrestler, error) {
	var w model.Wrestler
	var realName, nickname, height, weight, bio sql.NullString
	var debutYear, strength, speed, agility, stamina, charisma, technique sql.NullInt64
	err := row.Scan(
		&w.ID, &w.Name, &w.Gender, &w.Wins, &w.Losses,
		&realName, &nickname, &height, &weight, &debutYear,
		&strength, &speed, &agility, &stamina, &charisma, &technique,
		&bio, &w.IsUserCreated, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	w.RealName = strPtr(realName)
	w.Nickname = strPtr(nickname)
	w.Height = strPtr(height)
	w.Weight = strPtr(weight)
	w.Biography = strPtr(bio)
	w.DebutYear = intPtr(debutYear)
	w.Strength = intPtr(strength)
	w.Speed = intPtr(speed)
	w.Agility = intPtr(agility)
	w.Stamina = intPtr(stamina)
	w.Charisma = intPtr(charisma)
	w.Technique = intPtr(technique)
	return &w, nil
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

// Create inserts a wrestler with the minimal profile (name and gender) and
// returns the stored row.
func (r *WrestlerRepo) Create(ctx context.Context, name, gender string, userCreated bool) (*model.Wrestler, error) {
	const q = `INSERT INTO wrestlers (name, gender, is_user_created) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, name, gender, userCreated)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// EnhancedProfile carries the optional profile fields accepted by
// CreateEnhanced. Ratings must each be 1–10 when provided.
type EnhancedProfile struct {
	RealName  *string `json:"real_name"`
	Nickname  *string `json:"nickname"`
	Height    *string `json:"height"`
	Weight    *string `json:"weight"`
	DebutYear *int    `json:"debut_year"`
	Strength  *int    `json:"strength"`
	Speed     *int    `json:"speed"`
	Agility   *int    `json:"agility"`
	Stamina   *int    `json:"stamina"`
	Charisma  *int    `json:"charisma"`
	Technique *int    `json:"technique"`
	Biography *string `json:"biography"`
}

// CreateEnhanced inserts a wrestler with a full profile in one statement.
// It validates every provided rating before touching the database.
func (r *WrestlerRepo) CreateEnhanced(ctx context.Context, name, gender string, userCreated bool, p EnhancedProfile) (*model.Wrestler, error) {
	for _, rating := range []*int{p.Strength, p.Speed, p.Agility, p.Stamina, p.Charisma, p.Technique} {
		if rating != nil && (*rating < 1 || *rating > 10) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidRating, *rating)
		}
	}
	const q = `INSERT INTO wrestlers
		(name, gender, real_name, nickname, height, weight, debut_year,
		 strength, speed, agility, stamina, charisma, technique, biography,
		 is_user_created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		name, gender, p.RealName, p.Nickname, p.Height, p.Weight, p.DebutYear,
		p.Strength, p.Speed, p.Agility, p.Stamina, p.Charisma, p.Technique,
		p.Biography, userCreated,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID returns one wrestler or ErrNotFound.
func (r *WrestlerRepo) GetByID(ctx context.Context, id int64) (*model.Wrestler, error) {
	q := `SELECT ` + wrestlerCols + ` FROM wrestlers WHERE id = ?`
	w, err := scanWrestler(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("wrestler %d: %w", id, ErrNotFound)
	}
	return w, err
}

// List returns all wrestlers ordered by name.
func (r *WrestlerRepo) List(ctx context.Context) ([]model.Wrestler, error) {
	q := `SELECT ` + wrestlerCols + ` FROM wrestlers ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
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

// Delete removes a wrestler. Dependent roster rows, reigns and match slots
// cascade at the schema level. Returns ErrNotFound when no row matched.
func (r *WrestlerRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wrestlers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("wrestler %d: %w", id, ErrNotFound)
	}
	return nil
}

// UpdatePowerRatings replaces all six ratings at once. Each value must be
// within 1–10; the schema CHECK constraints are the structural backstop.
func (r *WrestlerRepo) UpdatePowerRatings(ctx context.Context, id int64, p model.PowerRatings) error {
	for _, rating := range []int{p.Strength, p.Speed, p.Agility, p.Stamina, p.Charisma, p.Technique} {
		if rating < 1 || rating > 10 {
			return fmt.Errorf("%w: %d", ErrInvalidRating, rating)
		}
	}
	const q = `UPDATE wrestlers
		SET strength = ?, speed = ?, agility = ?, stamina = ?, charisma = ?, technique = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.Strength, p.Speed, p.Agility, p.Stamina, p.Charisma, p.Technique, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// UpdateBasicStats sets the manually curated win/loss counters, height and
// weight. Counters are profile data here, not derived from match results.
func (r *WrestlerRepo) UpdateBasicStats(ctx context.Context, id int64, wins, losses int, height, weight *string) error {
	const q = `UPDATE wrestlers SET wins = ?, losses = ?, height = ?, weight = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, wins, losses, height, weight, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// UpdateName changes the ring name.
func (r *WrestlerRepo) UpdateName(ctx context.Context, id int64, name string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE wrestlers SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// UpdateRealName changes the legal name; pass nil to clear it.
func (r *WrestlerRepo) UpdateRealName(ctx context.Context, id int64, realName *string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE wrestlers SET real_name = ? WHERE id = ?`, realName, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// UpdateBiography replaces the long-form profile text; pass nil to clear it.
func (r *WrestlerRepo) UpdateBiography(ctx context.Context, id int64, bio *string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE wrestlers SET biography = ? WHERE id = ?`, bio, id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// requireRow converts a zero-row UPDATE/DELETE into ErrNotFound.
func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("wrestler %d: %w", id, ErrNotFound)
	}
	return nil
}
