package model

// MatchParticipant is one wrestler's slot in a match. TeamNumber groups
// participants into sides for tag and multi-team matches; EntranceOrder
// fixes presentation order. A wrestler appears at most once per match.
type MatchParticipant struct {
	ID            int64 // match_participants.id
	MatchID       int64 // match_participants.match_id
	WrestlerID    int64 // match_participants.wrestler_id
	TeamNumber    *int  // match_participants.team_number (nullable)
	EntranceOrder *int  // match_participants.entrance_order (nullable)
}

// Participant pairs a slot with the wrestler's display fields for
// card listings.
type Participant struct {
	MatchParticipant
	WrestlerName string
}
