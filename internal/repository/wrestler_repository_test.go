package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grapplehq/ringside/internal/model"
)

func TestCreateEnhancedStoresFullProfile(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)

	real := "Jonathan Good"
	nick := "The Lunatic"
	year := 2004
	strength := 8
	w, err := wrestlers.CreateEnhanced(ctx, "Jon Chaos", "Male", true, EnhancedProfile{
		RealName:  &real,
		Nickname:  &nick,
		DebutYear: &year,
		Strength:  &strength,
	})
	require.NoError(t, err)

	got, err := wrestlers.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jon Chaos", got.Name)
	require.NotNil(t, got.RealName)
	assert.Equal(t, real, *got.RealName)
	require.NotNil(t, got.DebutYear)
	assert.Equal(t, year, *got.DebutYear)
	require.NotNil(t, got.Strength)
	assert.Equal(t, strength, *got.Strength)
	assert.Nil(t, got.Speed)
}

func TestCreateEnhancedRejectsBadRating(t *testing.T) {
	db := newTestDB(t)
	wrestlers := NewWrestlerRepo(db)

	for _, bad := range []int{0, 11, -3} {
		v := bad
		_, err := wrestlers.CreateEnhanced(context.Background(), "Glass Cannon", "Male", true,
			EnhancedProfile{Speed: &v})
		assert.ErrorIs(t, err, ErrInvalidRating, "rating %d", bad)
	}
}

func TestUpdatePowerRatings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)

	w := mustWrestler(t, wrestlers, "Stat Sheet")
	ratings := model.PowerRatings{Strength: 7, Speed: 6, Agility: 5, Stamina: 8, Charisma: 9, Technique: 4}
	require.NoError(t, wrestlers.UpdatePowerRatings(ctx, w.ID, ratings))

	got, err := wrestlers.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Charisma)
	assert.Equal(t, 9, *got.Charisma)

	bad := ratings
	bad.Technique = 11
	assert.ErrorIs(t, wrestlers.UpdatePowerRatings(ctx, w.ID, bad), ErrInvalidRating)

	assert.ErrorIs(t, wrestlers.UpdatePowerRatings(ctx, 9999, ratings), ErrNotFound)
}

func TestUpdateProfileFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)

	w := mustWrestler(t, wrestlers, "Old Gimmick")

	require.NoError(t, wrestlers.UpdateName(ctx, w.ID, "New Gimmick"))
	bio := "Reinvented after the brand split."
	require.NoError(t, wrestlers.UpdateBiography(ctx, w.ID, &bio))

	got, err := wrestlers.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Gimmick", got.Name)
	require.NotNil(t, got.Biography)
	assert.Equal(t, bio, *got.Biography)

	// Clearing works with a nil pointer.
	require.NoError(t, wrestlers.UpdateBiography(ctx, w.ID, nil))
	got, err = wrestlers.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Biography)
}

func TestDeleteWrestlerCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)
	shows := NewShowRepo(db)
	rosters := NewRosterRepo(db)

	w := mustWrestler(t, wrestlers, "Short Tenure")
	s := mustShow(t, shows, "One Night Only")
	require.NoError(t, rosters.Assign(ctx, w.ID, s.ID))

	require.NoError(t, wrestlers.Delete(ctx, w.ID))
	_, err := wrestlers.GetByID(ctx, w.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The roster row went with the wrestler.
	roster, err := rosters.RosterOf(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, roster)

	assert.ErrorIs(t, wrestlers.Delete(ctx, w.ID), ErrNotFound)
}
