package model

import "time"

// Title represents a championship belt. Titles are global but may be
// reserved to a single show via ShowID to avoid cross-show double-booking.
// CurrentHolderID is a denormalized pointer to the wrestler of the open
// title_holders row; it is written only inside the same transaction that
// writes reign history so the two can never drift.
//
// Fields:
//
//	ID              – primary key identifier.
//	Name            – belt name.
//	TitleType       – e.g. "Singles", "Tag Team".
//	Division        – e.g. "World", "Intercontinental".
//	PrestigeTier    – 1 (top) through 5.
//	Gender          – gender scope ("Male", "Female", "Mixed").
//	ShowID          – optional show the belt is reserved to.
//	CurrentHolderID – wrestler of the open reign, nil when vacant.
//	IsActive        – false once the belt is retired.
//	IsUserCreated   – distinguishes user entries from seeded data.
type Title struct {
	ID              int64     // titles.id
	Name            string    // titles.name
	TitleType       string    // titles.title_type
	Division        string    // titles.division
	PrestigeTier    int       // titles.prestige_tier (1–5)
	Gender          string    // titles.gender
	ShowID          *int64    // titles.show_id (nullable)
	CurrentHolderID *int64    // titles.current_holder_id (nullable)
	IsActive        bool      // titles.is_active
	IsUserCreated   bool      // titles.is_user_created
	CreatedAt       time.Time // titles.created_at
	UpdatedAt       time.Time // titles.updated_at
}

// TitleWithHolder pairs a title with the display name of its current holder
// for listing endpoints. HolderName is nil when the belt is vacant.
type TitleWithHolder struct {
	Title
	HolderName *string
}
