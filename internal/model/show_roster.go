package model

import "time"

// ShowRoster is one assignment record linking a wrestler to a show.
// Rows are append-mostly history: an assignment is deactivated, never
// deleted, when the wrestler moves elsewhere. Despite the join-table
// shape, membership is exclusive: at most one row per wrestler is
// active at any time, across all shows.
//
// Fields:
//
//	ID         – primary key identifier.
//	ShowID     – show the wrestler is assigned to.
//	WrestlerID – the assigned wrestler.
//	AssignedAt – when this assignment was (re)activated.
//	IsActive   – whether this is the wrestler's current assignment.
type ShowRoster struct {
	ID         int64     // show_rosters.id
	ShowID     int64     // show_rosters.show_id
	WrestlerID int64     // show_rosters.wrestler_id
	AssignedAt time.Time // show_rosters.assigned_at
	IsActive   bool      // show_rosters.is_active
}
