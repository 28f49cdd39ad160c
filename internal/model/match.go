package model

import "time"

// Match represents one booked match on a show's card. A match moves
// through exactly two states: scheduled (WinnerID nil) and resolved
// (WinnerID set). Resolution is terminal.
//
// Fields:
//
//	ID            – primary key identifier.
//	ShowID        – show the match belongs to.
//	MatchName     – optional billing name ("Main Event").
//	MatchType     – e.g. "Singles", "Tag Team", "Battle Royal".
//	Stipulation   – optional stipulation ("Steel Cage").
//	ScheduledDate – optional card date.
//	MatchOrder    – position on the card.
//	WinnerID      – winning wrestler once resolved.
//	IsTitleMatch  – whether the outcome can move a championship.
//	TitleID       – the championship at stake when IsTitleMatch.
type Match struct {
	ID            int64      // matches.id
	ShowID        int64      // matches.show_id
	MatchName     *string    // matches.match_name (nullable)
	MatchType     string     // matches.match_type
	Stipulation   *string    // matches.match_stipulation (nullable)
	ScheduledDate *time.Time // matches.scheduled_date (nullable)
	MatchOrder    *int       // matches.match_order (nullable)
	WinnerID      *int64     // matches.winner_id (nullable)
	IsTitleMatch  bool       // matches.is_title_match
	TitleID       *int64     // matches.title_id (nullable)
	CreatedAt     time.Time  // matches.created_at
	UpdatedAt     time.Time  // matches.updated_at
}
