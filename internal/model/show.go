package model

import "time"

// Show represents one recurring program (e.g. a weekly broadcast). Shows
// own roster assignments and matches; deleting a show cascades to both.
type Show struct {
	ID          int64     // shows.id
	Name        string    // shows.name
	Description string    // shows.description
	CreatedAt   time.Time // shows.created_at
	UpdatedAt   time.Time // shows.updated_at
}
