package model

import "time"

// TitleHolder is one reign: a continuous holding period of a championship
// by a single wrestler. The open reign (HeldUntil nil) is the present-tense
// state of the belt; at most one open row exists per title. History rows
// are closed, never deleted.
//
// Fields:
//
//	ID            – primary key identifier.
//	TitleID       – the championship.
//	WrestlerID    – the holder during this reign.
//	HeldSince     – reign start.
//	HeldUntil     – reign end, nil while the reign is current.
//	EventName     – event where the title changed hands.
//	EventLocation – venue/city of that event.
//	ChangeMethod  – free text, e.g. "Pinfall", "Submission".
type TitleHolder struct {
	ID            int64      // title_holders.id
	TitleID       int64      // title_holders.title_id
	WrestlerID    int64      // title_holders.wrestler_id
	HeldSince     time.Time  // title_holders.held_since
	HeldUntil     *time.Time // title_holders.held_until (nullable)
	EventName     *string    // title_holders.event_name (nullable)
	EventLocation *string    // title_holders.event_location (nullable)
	ChangeMethod  *string    // title_holders.change_method (nullable)
	CreatedAt     time.Time  // title_holders.created_at
	UpdatedAt     time.Time  // title_holders.updated_at
}

// Reign pairs a history row with the holder's display fields for
// championship history listings.
type Reign struct {
	Holder         TitleHolder
	WrestlerName   string
	WrestlerGender string
}
