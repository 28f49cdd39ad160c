package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/grapplehq/ringside/internal/model"
)

// ErrDuplicateParticipant is returned when the same wrestler is booked into
// a match twice. It carries the Conflict kind; the UNIQUE(match_id,
// wrestler_id) index is the structural backstop.
var ErrDuplicateParticipant = fmt.Errorf("wrestler booked twice in one match: %w", ErrConflict)

// MatchRepo books matches and records their results. A match is scheduled
// until a winner is recorded, then resolved, and resolution is terminal.
// When a title match resolves against the current holder, the championship
// change happens inside the same transaction as the result, so the two
// facts can never diverge.
type MatchRepo struct {
	db     *sql.DB
	titles *TitleRepo
}

// NewMatchRepo returns a MatchRepo bound to the provided database. The
// TitleRepo is used to drive championship changes from title-match results.
func NewMatchRepo(db *sql.DB, titles *TitleRepo) *MatchRepo {
	return &MatchRepo{db: db, titles: titles}
}

// DB exposes the underlying handle for cross-repository transactions.
func (r *MatchRepo) DB() *sql.DB { return r.db }

const matchCols = `id, show_id, match_name, match_type, match_stipulation,
	scheduled_date, match_order, winner_id, is_title_match, title_id,
	created_at, updated_at`

func scanMatch(row interface{ Scan(...any) error }) (*model.Match, error) {
	var m model.Match
	var name, stip sql.NullString
	var date sql.NullTime
	var order sql.NullInt64
	var winner, title sql.NullInt64
	err := row.Scan(
		&m.ID, &m.ShowID, &name, &m.MatchType, &stip,
		&date, &order, &winner, &m.IsTitleMatch, &title,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.MatchName = strPtr(name)
	m.Stipulation = strPtr(stip)
	if date.Valid {
		t := date.Time
		m.ScheduledDate = &t
	}
	m.MatchOrder = intPtr(order)
	if winner.Valid {
		v := winner.Int64
		m.WinnerID = &v
	}
	if title.Valid {
		v := title.Int64
		m.TitleID = &v
	}
	return &m, nil
}

// ParticipantSpec describes one wrestler's slot when booking a match.
type ParticipantSpec struct {
	WrestlerID    int64
	TeamNumber    *int
	EntranceOrder *int
}

// BookParams carries everything needed to put a match on a show's card.
type BookParams struct {
	ShowID        int64
	MatchName     *string
	MatchType     string
	Stipulation   *string
	ScheduledDate *string // YYYY-MM-DD, optional
	MatchOrder    *int
	IsTitleMatch  bool
	TitleID       *int64
	Participants  []ParticipantSpec
}

// Book inserts the match and all its participant slots in one transaction.
// Every referenced id is verified inside the transaction; a wrestler
// appearing twice yields ErrDuplicateParticipant and nothing is applied.
func (r *MatchRepo) Book(ctx context.Context, p BookParams) (*model.Match, error) {
	seen := make(map[int64]struct{}, len(p.Participants))
	for _, ps := range p.Participants {
		if _, dup := seen[ps.WrestlerID]; dup {
			return nil, fmt.Errorf("wrestler %d: %w", ps.WrestlerID, ErrDuplicateParticipant)
		}
		seen[ps.WrestlerID] = struct{}{}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrConflict, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := requireExistsTx(ctx, tx, "shows", p.ShowID); err != nil {
		return nil, err
	}
	if p.TitleID != nil {
		if err := requireExistsTx(ctx, tx, "titles", *p.TitleID); err != nil {
			return nil, err
		}
	}
	for _, ps := range p.Participants {
		if err := requireExistsTx(ctx, tx, "wrestlers", ps.WrestlerID); err != nil {
			return nil, err
		}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO matches (show_id, match_name, match_type, match_stipulation,
		                      scheduled_date, match_order, is_title_match, title_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ShowID, p.MatchName, p.MatchType, p.Stipulation,
		p.ScheduledDate, p.MatchOrder, p.IsTitleMatch, p.TitleID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert match: %v", ErrConflict, err)
	}
	matchID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if len(p.Participants) > 0 {
		// Single bulk INSERT for all slots.
		query := `INSERT INTO match_participants (match_id, wrestler_id, team_number, entrance_order) VALUES `
		args := make([]any, 0, len(p.Participants)*4)
		for i, ps := range p.Participants {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?)"
			args = append(args, matchID, ps.WrestlerID, ps.TeamNumber, ps.EntranceOrder)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("%w: insert participants: %v", ErrConflict, err)
		}
	}

	m, err := scanMatch(tx.QueryRowContext(ctx,
		`SELECT `+matchCols+` FROM matches WHERE id = ?`, matchID))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrConflict, err)
	}
	committed = true
	return m, nil
}

// RecordResult resolves a match. It sets the winner and, for a title match
// whose winner is not the current holder, crowns the winner inside the same
// transaction. The reported bool is true when a championship changed hands.
//
// Returns ErrNotFound for an unknown match, ErrInvalidParticipant when the
// winner is not booked in the match, and ErrAlreadyResolved when a winner
// is already recorded (the stored result is left untouched).
func (r *MatchRepo) RecordResult(ctx context.Context, matchID, winnerID int64) (*model.Match, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: begin: %v", ErrConflict, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	m, err := scanMatch(tx.QueryRowContext(ctx,
		`SELECT `+matchCols+` FROM matches WHERE id = ?`, matchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("match %d: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, false, err
	}
	if m.WinnerID != nil {
		return nil, false, fmt.Errorf("match %d: %w", matchID, ErrAlreadyResolved)
	}

	var one int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM match_participants WHERE match_id = ? AND wrestler_id = ?`,
		matchID, winnerID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("wrestler %d in match %d: %w", winnerID, matchID, ErrInvalidParticipant)
	}
	if err != nil {
		return nil, false, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE matches SET winner_id = ? WHERE id = ?`, winnerID, matchID,
	); err != nil {
		return nil, false, fmt.Errorf("%w: set winner: %v", ErrConflict, err)
	}
	m.WinnerID = &winnerID

	titleChanged := false
	if m.IsTitleMatch && m.TitleID != nil {
		var holder sql.NullInt64
		err := tx.QueryRowContext(ctx,
			`SELECT wrestler_id FROM title_holders WHERE title_id = ? AND held_until IS NULL`,
			*m.TitleID,
		).Scan(&holder)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, false, err
		}
		if !holder.Valid || holder.Int64 != winnerID {
			// Reign metadata comes from the match billing.
			meta := ReignMeta{EventName: m.MatchName, ChangeMethod: m.Stipulation}
			if err := r.titles.CrownTx(ctx, tx, *m.TitleID, winnerID, meta); err != nil {
				return nil, false, err
			}
			titleChanged = true
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("%w: commit: %v", ErrConflict, err)
	}
	committed = true
	return m, titleChanged, nil
}

// GetByID returns one match or ErrNotFound.
func (r *MatchRepo) GetByID(ctx context.Context, id int64) (*model.Match, error) {
	m, err := scanMatch(r.db.QueryRowContext(ctx,
		`SELECT `+matchCols+` FROM matches WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %d: %w", id, ErrNotFound)
	}
	return m, err
}

// ForShow returns a show's card in running order.
func (r *MatchRepo) ForShow(ctx context.Context, showID int64) ([]model.Match, error) {
	if err := requireExists(ctx, r.db, "shows", showID); err != nil {
		return nil, err
	}
	q := `SELECT ` + matchCols + ` FROM matches WHERE show_id = ? ORDER BY match_order ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// Participants returns the match's slots in entrance order, each with the
// wrestler's display name.
func (r *MatchRepo) Participants(ctx context.Context, matchID int64) ([]model.Participant, error) {
	if err := requireExists(ctx, r.db, "matches", matchID); err != nil {
		return nil, err
	}
	const q = `SELECT mp.id, mp.match_id, mp.wrestler_id, mp.team_number, mp.entrance_order, w.name
	           FROM match_participants mp
	           JOIN wrestlers w ON w.id = mp.wrestler_id
	           WHERE mp.match_id = ?
	           ORDER BY mp.entrance_order ASC, mp.id ASC`
	rows, err := r.db.QueryContext(ctx, q, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Participant, 0)
	for rows.Next() {
		var p model.Participant
		var team, order sql.NullInt64
		if err := rows.Scan(&p.ID, &p.MatchID, &p.WrestlerID, &team, &order, &p.WrestlerName); err != nil {
			return nil, err
		}
		p.TeamNumber = intPtr(team)
		p.EntranceOrder = intPtr(order)
		out = append(out, p)
	}
	return out, rows.Err()
}
