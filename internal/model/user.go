package model

import "time"

// User is an operator account for the booking tool. The password column
// stores a bcrypt hash, never plaintext.
type User struct {
	ID        int64     // users.id
	Username  string    // users.username
	Password  string    // users.password (bcrypt hash)
	CreatedAt time.Time // users.created_at
	UpdatedAt time.Time // users.updated_at
}
