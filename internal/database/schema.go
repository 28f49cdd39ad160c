package database

import (
	"context"
	"database/sql"
	"fmt"
)

// statements holds the full schema in dependency order. Every statement is
// idempotent (IF NOT EXISTS) so Migrate can run at each startup.
//
// Two invariants are enforced structurally rather than by application code
// alone:
//
//   - a wrestler has at most one active roster row system-wide
//     (uq_show_rosters_active),
//   - a title has at most one open reign (uq_title_holders_open).
//
// The partial unique indexes turn any violation into a constraint error,
// which aborts the surrounding transaction.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS wrestlers (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT    NOT NULL,
		gender          TEXT    NOT NULL,
		wins            INTEGER NOT NULL DEFAULT 0,
		losses          INTEGER NOT NULL DEFAULT 0,
		real_name       TEXT,
		nickname        TEXT,
		height          TEXT,
		weight          TEXT,
		debut_year      INTEGER,
		strength        INTEGER CHECK (strength  IS NULL OR strength  BETWEEN 1 AND 10),
		speed           INTEGER CHECK (speed     IS NULL OR speed     BETWEEN 1 AND 10),
		agility         INTEGER CHECK (agility   IS NULL OR agility   BETWEEN 1 AND 10),
		stamina         INTEGER CHECK (stamina   IS NULL OR stamina   BETWEEN 1 AND 10),
		charisma        INTEGER CHECK (charisma  IS NULL OR charisma  BETWEEN 1 AND 10),
		technique       INTEGER CHECK (technique IS NULL OR technique BETWEEN 1 AND 10),
		biography       TEXT,
		is_user_created INTEGER NOT NULL DEFAULT 0,
		created_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS shows (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS show_rosters (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		show_id     INTEGER NOT NULL REFERENCES shows (id)     ON DELETE CASCADE,
		wrestler_id INTEGER NOT NULL REFERENCES wrestlers (id) ON DELETE CASCADE,
		assigned_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		is_active   INTEGER NOT NULL DEFAULT 1,
		UNIQUE (show_id, wrestler_id)
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS uq_show_rosters_active
		ON show_rosters (wrestler_id) WHERE is_active = 1`,

	`CREATE TABLE IF NOT EXISTS titles (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		name              TEXT    NOT NULL,
		title_type        TEXT    NOT NULL,
		division          TEXT    NOT NULL,
		prestige_tier     INTEGER NOT NULL DEFAULT 1 CHECK (prestige_tier BETWEEN 1 AND 5),
		gender            TEXT    NOT NULL,
		show_id           INTEGER REFERENCES shows (id)     ON DELETE SET NULL,
		current_holder_id INTEGER REFERENCES wrestlers (id) ON DELETE SET NULL,
		is_active         INTEGER NOT NULL DEFAULT 1,
		is_user_created   INTEGER NOT NULL DEFAULT 0,
		created_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS title_holders (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		title_id       INTEGER NOT NULL REFERENCES titles (id)    ON DELETE CASCADE,
		wrestler_id    INTEGER NOT NULL REFERENCES wrestlers (id) ON DELETE CASCADE,
		held_since     TIMESTAMP NOT NULL,
		held_until     TIMESTAMP,
		event_name     TEXT,
		event_location TEXT,
		change_method  TEXT,
		created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS uq_title_holders_open
		ON title_holders (title_id) WHERE held_until IS NULL`,

	`CREATE TABLE IF NOT EXISTS matches (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		show_id           INTEGER NOT NULL REFERENCES shows (id) ON DELETE CASCADE,
		match_name        TEXT,
		match_type        TEXT NOT NULL,
		match_stipulation TEXT,
		scheduled_date    DATE,
		match_order       INTEGER,
		winner_id         INTEGER REFERENCES wrestlers (id) ON DELETE SET NULL,
		is_title_match    INTEGER NOT NULL DEFAULT 0,
		title_id          INTEGER REFERENCES titles (id) ON DELETE SET NULL,
		created_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS match_participants (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id       INTEGER NOT NULL REFERENCES matches (id)   ON DELETE CASCADE,
		wrestler_id    INTEGER NOT NULL REFERENCES wrestlers (id) ON DELETE CASCADE,
		team_number    INTEGER,
		entrance_order INTEGER,
		UNIQUE (match_id, wrestler_id)
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		username   TEXT NOT NULL UNIQUE,
		password   TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		token_hash TEXT NOT NULL UNIQUE,
		expires_at TIMESTAMP NOT NULL,
		revoked_at TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE INDEX IF NOT EXISTS idx_show_rosters_show   ON show_rosters (show_id)`,
	`CREATE INDEX IF NOT EXISTS idx_title_holders_title ON title_holders (title_id)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_show        ON matches (show_id)`,
	`CREATE INDEX IF NOT EXISTS idx_participants_match  ON match_participants (match_id)`,
}

// triggerTables lists every table carrying an updated_at column. A trigger
// per table keeps the column current on UPDATE without application help.
var triggerTables = []string{
	"wrestlers", "shows", "titles", "title_holders", "matches", "users",
}

// Migrate applies the schema. All statements are idempotent so it is safe
// to run on every startup and on every fresh test store.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	for _, table := range triggerTables {
		trig := fmt.Sprintf(`CREATE TRIGGER IF NOT EXISTS trg_%[1]s_updated_at
			AFTER UPDATE ON %[1]s FOR EACH ROW
			WHEN NEW.updated_at = OLD.updated_at
			BEGIN
				UPDATE %[1]s SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
			END`, table)
		if _, err := db.ExecContext(ctx, trig); err != nil {
			return fmt.Errorf("create trigger for %s: %w", table, err)
		}
	}
	return nil
}
