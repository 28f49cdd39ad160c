package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer db.Close()

	// OpenMemory already migrated once; two more runs must be harmless.
	require.NoError(t, Migrate(context.Background(), db))
	require.NoError(t, Migrate(context.Background(), db))

	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'wrestlers'`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPartialIndexEnforcesSingleActiveAssignment(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO wrestlers (name, gender) VALUES ('Index Case', 'Male')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO shows (name) VALUES ('A'), ('B')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO show_rosters (show_id, wrestler_id, is_active) VALUES (1, 1, 1)`)
	require.NoError(t, err)

	// A second active row for the same wrestler, even on another show, hits
	// uq_show_rosters_active.
	_, err = db.Exec(`INSERT INTO show_rosters (show_id, wrestler_id, is_active) VALUES (2, 1, 1)`)
	assert.Error(t, err)

	// An inactive history row is fine.
	_, err = db.Exec(`INSERT INTO show_rosters (show_id, wrestler_id, is_active) VALUES (2, 1, 0)`)
	assert.NoError(t, err)
}

func TestPartialIndexEnforcesSingleOpenReign(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO wrestlers (name, gender) VALUES ('Champ', 'Male'), ('Challenger', 'Male')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO titles (name, title_type, division, prestige_tier, gender) VALUES ('Belt', 'singles', 'world', 1, 'Male')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO title_holders (title_id, wrestler_id, held_since) VALUES (1, 1, CURRENT_TIMESTAMP)`)
	require.NoError(t, err)

	// A second open reign hits uq_title_holders_open.
	_, err = db.Exec(`INSERT INTO title_holders (title_id, wrestler_id, held_since) VALUES (1, 2, CURRENT_TIMESTAMP)`)
	assert.Error(t, err)

	// Closing the first reign frees the slot.
	_, err = db.Exec(`UPDATE title_holders SET held_until = CURRENT_TIMESTAMP WHERE title_id = 1 AND held_until IS NULL`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO title_holders (title_id, wrestler_id, held_since) VALUES (1, 2, CURRENT_TIMESTAMP)`)
	assert.NoError(t, err)
}

func TestRatingCheckConstraint(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO wrestlers (name, gender, strength) VALUES ('Too Strong', 'Male', 11)`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO wrestlers (name, gender, strength) VALUES ('Just Right', 'Male', 10)`)
	assert.NoError(t, err)
}
