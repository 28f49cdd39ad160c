package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grapplehq/ringside/internal/database"
	"github.com/grapplehq/ringside/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func mustWrestler(t *testing.T, r *WrestlerRepo, name string) *model.Wrestler {
	t.Helper()
	w, err := r.Create(context.Background(), name, "Male", true)
	require.NoError(t, err)
	return w
}

func mustShow(t *testing.T, r *ShowRepo, name string) *model.Show {
	t.Helper()
	s, err := r.Create(context.Background(), name, "")
	require.NoError(t, err)
	return s
}

func mustTitle(t *testing.T, r *TitleRepo, name string, showID *int64) *model.Title {
	t.Helper()
	title, err := r.Create(context.Background(), TitleParams{
		Name:         name,
		TitleType:    "singles",
		Division:     "world",
		PrestigeTier: 1,
		Gender:       "Male",
		ShowID:       showID,
		UserCreated:  true,
	})
	require.NoError(t, err)
	return title
}

// activeAssignments counts the wrestler's active roster rows directly, so a
// test can check exclusivity without going through the repository under test.
func activeAssignments(t *testing.T, db *sql.DB, wrestlerID int64) int {
	t.Helper()
	var n int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM show_rosters WHERE wrestler_id = ? AND is_active = 1`,
		wrestlerID,
	).Scan(&n)
	require.NoError(t, err)
	return n
}
