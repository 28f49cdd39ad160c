package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookInsertsMatchWithParticipants(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)
	shows := NewShowRepo(db)
	titles := NewTitleRepo(db)
	matches := NewMatchRepo(db, titles)

	s := mustShow(t, shows, "Summer Slamdown")
	w1 := mustWrestler(t, wrestlers, "Ace Aurora")
	w2 := mustWrestler(t, wrestlers, "Bruiser Bell")

	name := "Opening Contest"
	date := "2026-09-01"
	one, two := 1, 2
	m, err := matches.Book(ctx, BookParams{
		ShowID:        s.ID,
		MatchName:     &name,
		MatchType:     "singles",
		ScheduledDate: &date,
		Participants: []ParticipantSpec{
			{WrestlerID: w1.ID, EntranceOrder: &one},
			{WrestlerID: w2.ID, EntranceOrder: &two},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, m.WinnerID)
	require.NotNil(t, m.MatchName)
	assert.Equal(t, name, *m.MatchName)

	ps, err := matches.Participants(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "Ace Aurora", ps[0].WrestlerName)
	assert.Equal(t, "Bruiser Bell", ps[1].WrestlerName)

	card, err := matches.ForShow(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, card, 1)
}

func TestBookRejectsDuplicateParticipant(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)
	shows := NewShowRepo(db)
	titles := NewTitleRepo(db)
	matches := NewMatchRepo(db, titles)

	s := mustShow(t, shows, "Double Trouble")
	w := mustWrestler(t, wrestlers, "Mirror Match")

	_, err := matches.Book(ctx, BookParams{
		ShowID:    s.ID,
		MatchType: "singles",
		Participants: []ParticipantSpec{
			{WrestlerID: w.ID},
			{WrestlerID: w.ID},
		},
	})
	assert.ErrorIs(t, err, ErrDuplicateParticipant)
	assert.ErrorIs(t, err, ErrConflict)

	// Nothing was booked.
	card, err := matches.ForShow(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, card)
}

func TestBookUnknownReferences(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)
	shows := NewShowRepo(db)
	titles := NewTitleRepo(db)
	matches := NewMatchRepo(db, titles)

	s := mustShow(t, shows, "Real Show")
	w := mustWrestler(t, wrestlers, "Real Wrestler")

	_, err := matches.Book(ctx, BookParams{
		ShowID: 9999, MatchType: "singles",
		Participants: []ParticipantSpec{{WrestlerID: w.ID}},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = matches.Book(ctx, BookParams{
		ShowID: s.ID, MatchType: "singles",
		Participants: []ParticipantSpec{{WrestlerID: 9999}},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	badTitle := int64(9999)
	_, err = matches.Book(ctx, BookParams{
		ShowID: s.ID, MatchType: "singles", IsTitleMatch: true, TitleID: &badTitle,
		Participants: []ParticipantSpec{{WrestlerID: w.ID}},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordResultResolvesOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)
	shows := NewShowRepo(db)
	titles := NewTitleRepo(db)
	matches := NewMatchRepo(db, titles)

	s := mustShow(t, shows, "Final Countdown")
	w1 := mustWrestler(t, wrestlers, "Winner Woods")
	w2 := mustWrestler(t, wrestlers, "Runner-Up Reed")

	m, err := matches.Book(ctx, BookParams{
		ShowID: s.ID, MatchType: "singles",
		Participants: []ParticipantSpec{{WrestlerID: w1.ID}, {WrestlerID: w2.ID}},
	})
	require.NoError(t, err)

	resolved, titleChanged, err := matches.RecordResult(ctx, m.ID, w1.ID)
	require.NoError(t, err)
	assert.False(t, titleChanged)
	require.NotNil(t, resolved.WinnerID)
	assert.Equal(t, w1.ID, *resolved.WinnerID)

	// A resolved match is immutable, even for the same winner.
	_, _, err = matches.RecordResult(ctx, m.ID, w2.ID)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
	_, _, err = matches.RecordResult(ctx, m.ID, w1.ID)
	assert.ErrorIs(t, err, ErrAlreadyResolved)

	got, err := matches.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got.WinnerID)
	assert.Equal(t, w1.ID, *got.WinnerID)
}

func TestRecordResultRejectsNonParticipant(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)
	shows := NewShowRepo(db)
	titles := NewTitleRepo(db)
	matches := NewMatchRepo(db, titles)

	s := mustShow(t, shows, "Outside Interference")
	w1 := mustWrestler(t, wrestlers, "Booked Wrestler")
	outsider := mustWrestler(t, wrestlers, "Outsider")

	m, err := matches.Book(ctx, BookParams{
		ShowID: s.ID, MatchType: "singles",
		Participants: []ParticipantSpec{{WrestlerID: w1.ID}},
	})
	require.NoError(t, err)

	_, _, err = matches.RecordResult(ctx, m.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrInvalidParticipant)

	// The match stays unresolved.
	got, err := matches.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Nil(t, got.WinnerID)
}

func TestRecordResultUnknownMatch(t *testing.T) {
	db := newTestDB(t)
	titles := NewTitleRepo(db)
	matches := NewMatchRepo(db, titles)

	_, _, err := matches.RecordResult(context.Background(), 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTitleMatchCrownsWinner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)
	shows := NewShowRepo(db)
	titles := NewTitleRepo(db)
	matches := NewMatchRepo(db, titles)

	s := mustShow(t, shows, "Title Night")
	champ := mustWrestler(t, wrestlers, "Defending Champ")
	challenger := mustWrestler(t, wrestlers, "Hungry Challenger")
	belt := mustTitle(t, titles, "World Title", nil)

	require.NoError(t, titles.Crown(ctx, belt.ID, champ.ID, ReignMeta{}))

	name := "Main Event"
	stip := "Ladder Match"
	m, err := matches.Book(ctx, BookParams{
		ShowID: s.ID, MatchName: &name, MatchType: "singles", Stipulation: &stip,
		IsTitleMatch: true, TitleID: &belt.ID,
		Participants: []ParticipantSpec{{WrestlerID: champ.ID}, {WrestlerID: challenger.ID}},
	})
	require.NoError(t, err)

	_, titleChanged, err := matches.RecordResult(ctx, m.ID, challenger.ID)
	require.NoError(t, err)
	assert.True(t, titleChanged)

	holder, err := titles.CurrentHolder(ctx, belt.ID)
	require.NoError(t, err)
	require.NotNil(t, holder)
	assert.Equal(t, challenger.ID, *holder)

	// The new reign records the match billing as its event metadata.
	history, err := titles.History(ctx, belt.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	open := history[1]
	assert.Nil(t, open.Holder.HeldUntil)
	require.NotNil(t, open.Holder.EventName)
	assert.Equal(t, name, *open.Holder.EventName)
	require.NotNil(t, open.Holder.ChangeMethod)
	assert.Equal(t, stip, *open.Holder.ChangeMethod)
}

func TestTitleMatchChampionRetains(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)
	shows := NewShowRepo(db)
	titles := NewTitleRepo(db)
	matches := NewMatchRepo(db, titles)

	s := mustShow(t, shows, "Retention Night")
	champ := mustWrestler(t, wrestlers, "Long Reign")
	challenger := mustWrestler(t, wrestlers, "Short Notice")
	belt := mustTitle(t, titles, "Midcard Title", nil)

	require.NoError(t, titles.Crown(ctx, belt.ID, champ.ID, ReignMeta{}))

	m, err := matches.Book(ctx, BookParams{
		ShowID: s.ID, MatchType: "singles", IsTitleMatch: true, TitleID: &belt.ID,
		Participants: []ParticipantSpec{{WrestlerID: champ.ID}, {WrestlerID: challenger.ID}},
	})
	require.NoError(t, err)

	_, titleChanged, err := matches.RecordResult(ctx, m.ID, champ.ID)
	require.NoError(t, err)
	assert.False(t, titleChanged)

	// The champ's original reign is untouched.
	history, err := titles.History(ctx, belt.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Nil(t, history[0].Holder.HeldUntil)
}

func TestTitleMatchOnVacantTitle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	wrestlers := NewWrestlerRepo(db)
	shows := NewShowRepo(db)
	titles := NewTitleRepo(db)
	matches := NewMatchRepo(db, titles)

	s := mustShow(t, shows, "Vacancy Filled")
	w1 := mustWrestler(t, wrestlers, "Finalist One")
	w2 := mustWrestler(t, wrestlers, "Finalist Two")
	belt := mustTitle(t, titles, "Vacant Gold", nil)

	m, err := matches.Book(ctx, BookParams{
		ShowID: s.ID, MatchType: "singles", IsTitleMatch: true, TitleID: &belt.ID,
		Participants: []ParticipantSpec{{WrestlerID: w1.ID}, {WrestlerID: w2.ID}},
	})
	require.NoError(t, err)

	_, titleChanged, err := matches.RecordResult(ctx, m.ID, w1.ID)
	require.NoError(t, err)
	assert.True(t, titleChanged)

	holder, err := titles.CurrentHolder(ctx, belt.ID)
	require.NoError(t, err)
	require.NotNil(t, holder)
	assert.Equal(t, w1.ID, *holder)
}
