package model

import "time"

// Wrestler represents one performer in the roster pool. Wrestlers are
// global: they exist independently of any show and are attached to a show
// only through an active show_rosters row.
//
// The enhanced profile fields (real name, physique, power ratings) are all
// optional; a wrestler created through the quick form carries only a name
// and gender. Power ratings are bounded 1–10, enforced both here and by
// CHECK constraints in the schema.
//
// Fields:
//
//	ID            – primary key identifier.
//	Name          – ring name, required.
//	Gender        – division gender, required.
//	Wins, Losses  – career counters, manually curated profile stats.
//	RealName      – legal name, optional.
//	Nickname      – billed nickname, optional.
//	Height        – billed height, free text (e.g. "6'4\"").
//	Weight        – billed weight, free text (e.g. "245 lbs").
//	DebutYear     – year of first match, optional.
//	Strength …    – six power ratings, each 1–10 when set.
//	Biography     – long-form profile text.
//	IsUserCreated – distinguishes user entries from seeded roster data.
type Wrestler struct {
	ID            int64     // wrestlers.id
	Name          string    // wrestlers.name
	Gender        string    // wrestlers.gender
	Wins          int       // wrestlers.wins
	Losses        int       // wrestlers.losses
	RealName      *string   // wrestlers.real_name (nullable)
	Nickname      *string   // wrestlers.nickname (nullable)
	Height        *string   // wrestlers.height (nullable)
	Weight        *string   // wrestlers.weight (nullable)
	DebutYear     *int      // wrestlers.debut_year (nullable)
	Strength      *int      // wrestlers.strength (nullable, 1–10)
	Speed         *int      // wrestlers.speed (nullable, 1–10)
	Agility       *int      // wrestlers.agility (nullable, 1–10)
	Stamina       *int      // wrestlers.stamina (nullable, 1–10)
	Charisma      *int      // wrestlers.charisma (nullable, 1–10)
	Technique     *int      // wrestlers.technique (nullable, 1–10)
	Biography     *string   // wrestlers.biography (nullable)
	IsUserCreated bool      // wrestlers.is_user_created
	CreatedAt     time.Time // wrestlers.created_at
	UpdatedAt     time.Time // wrestlers.updated_at
}

// PowerRatings groups the six rated attributes for update operations.
type PowerRatings struct {
	Strength  int `json:"strength"`
	Speed     int `json:"speed"`
	Agility   int `json:"agility"`
	Stamina   int `json:"stamina"`
	Charisma  int `json:"charisma"`
	Technique int `json:"technique"`
}
