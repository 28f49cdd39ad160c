package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrownOpensAndClosesReigns(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)
	titles := NewTitleRepo(db)

	champ := mustWrestler(t, wrestlers, "First Champ")
	next := mustWrestler(t, wrestlers, "Second Champ")
	belt := mustTitle(t, titles, "World Heavyweight", nil)

	event := "Clash of Kings"
	method := "Pinfall"
	require.NoError(t, titles.Crown(ctx, belt.ID, champ.ID, ReignMeta{EventName: &event, ChangeMethod: &method}))

	holder, err := titles.CurrentHolder(ctx, belt.ID)
	require.NoError(t, err)
	require.NotNil(t, holder)
	assert.Equal(t, champ.ID, *holder)

	require.NoError(t, titles.Crown(ctx, belt.ID, next.ID, ReignMeta{}))

	history, err := titles.History(ctx, belt.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// The first reign is closed and keeps its event metadata; the second is
	// still open.
	assert.Equal(t, champ.ID, history[0].Holder.WrestlerID)
	assert.NotNil(t, history[0].Holder.HeldUntil)
	require.NotNil(t, history[0].Holder.EventName)
	assert.Equal(t, event, *history[0].Holder.EventName)
	require.NotNil(t, history[0].Holder.ChangeMethod)
	assert.Equal(t, method, *history[0].Holder.ChangeMethod)

	assert.Equal(t, next.ID, history[1].Holder.WrestlerID)
	assert.Nil(t, history[1].Holder.HeldUntil)
	assert.Equal(t, "Second Champ", history[1].WrestlerName)

	// The denormalized pointer tracks the open reign.
	got, err := titles.GetByID(ctx, belt.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CurrentHolderID)
	assert.Equal(t, next.ID, *got.CurrentHolderID)
}

func TestVacateClosesOpenReign(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)
	titles := NewTitleRepo(db)

	champ := mustWrestler(t, wrestlers, "Reluctant Champ")
	belt := mustTitle(t, titles, "Intercontinental", nil)

	require.NoError(t, titles.Crown(ctx, belt.ID, champ.ID, ReignMeta{}))
	require.NoError(t, titles.Vacate(ctx, belt.ID))

	holder, err := titles.CurrentHolder(ctx, belt.ID)
	require.NoError(t, err)
	assert.Nil(t, holder)

	history, err := titles.History(ctx, belt.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.NotNil(t, history[0].Holder.HeldUntil)

	got, err := titles.GetByID(ctx, belt.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CurrentHolderID)

	// Vacating a vacant title is a no-op.
	require.NoError(t, titles.Vacate(ctx, belt.ID))
	history, err = titles.History(ctx, belt.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestCrownRetiredTitle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)
	titles := NewTitleRepo(db)

	w := mustWrestler(t, wrestlers, "Hopeful Challenger")
	belt := mustTitle(t, titles, "Legacy Belt", nil)

	require.NoError(t, titles.SetActive(ctx, belt.ID, false))
	err := titles.Crown(ctx, belt.ID, w.ID, ReignMeta{})
	assert.ErrorIs(t, err, ErrTitleRetired)

	// Reinstating makes the belt crownable again.
	require.NoError(t, titles.SetActive(ctx, belt.ID, true))
	require.NoError(t, titles.Crown(ctx, belt.ID, w.ID, ReignMeta{}))
}

func TestCrownUnknownIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)
	titles := NewTitleRepo(db)

	w := mustWrestler(t, wrestlers, "Real Wrestler")
	belt := mustTitle(t, titles, "Real Belt", nil)

	assert.ErrorIs(t, titles.Crown(ctx, 9999, w.ID, ReignMeta{}), ErrNotFound)
	assert.ErrorIs(t, titles.Crown(ctx, belt.ID, 9999, ReignMeta{}), ErrNotFound)

	// The failed crowning left the belt vacant.
	holder, err := titles.CurrentHolder(ctx, belt.ID)
	require.NoError(t, err)
	assert.Nil(t, holder)
}

func TestCreateValidatesPrestigeTier(t *testing.T) {
	db := newTestDB(t)
	titles := NewTitleRepo(db)

	for _, tier := range []int{0, 6, -1} {
		_, err := titles.Create(context.Background(), TitleParams{
			Name: "Bad Tier", TitleType: "singles", Division: "world",
			PrestigeTier: tier, Gender: "Male",
		})
		assert.ErrorIs(t, err, ErrInvalidPrestige, "tier %d", tier)
	}
}

func TestListWithHolders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)
	titles := NewTitleRepo(db)

	champ := mustWrestler(t, wrestlers, "Crowned One")
	held := mustTitle(t, titles, "Held Belt", nil)
	vacant := mustTitle(t, titles, "Vacant Belt", nil)
	require.NoError(t, titles.Crown(ctx, held.ID, champ.ID, ReignMeta{}))

	list, err := titles.ListWithHolders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := map[int64]*string{}
	for _, item := range list {
		byID[item.ID] = item.HolderName
	}
	require.NotNil(t, byID[held.ID])
	assert.Equal(t, "Crowned One", *byID[held.ID])
	assert.Nil(t, byID[vacant.ID])
}

func TestTitleShowScoping(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	shows := NewShowRepo(db)
	titles := NewTitleRepo(db)

	s := mustShow(t, shows, "Flagship")
	scoped := mustTitle(t, titles, "Flagship Title", &s.ID)
	floating := mustTitle(t, titles, "Floating Title", nil)

	forShow, err := titles.ForShow(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, forShow, 1)
	assert.Equal(t, scoped.ID, forShow[0].ID)

	free, err := titles.Unassigned(ctx)
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, floating.ID, free[0].ID)

	// Releasing the reservation makes the belt float again.
	require.NoError(t, titles.AssignToShow(ctx, scoped.ID, nil))
	free, err = titles.Unassigned(ctx)
	require.NoError(t, err)
	assert.Len(t, free, 2)

	_, err = titles.ForShow(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
