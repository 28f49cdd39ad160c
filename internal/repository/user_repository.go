package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/grapplehq/ringside/internal/model"
	"github.com/grapplehq/ringside/internal/utils"
)

// ErrUsernameExists is returned when registering a username that is taken.
var ErrUsernameExists = errors.New("username already exists")

// UserRepo persists operator accounts. Passwords are bcrypt-hashed before
// they reach the database.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a UserRepo bound to the provided database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a hashed password and returns its id.
func (r *UserRepo) Create(ctx context.Context, username, password string, cost int) (int64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (username, password) VALUES (?, ?)`, username, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	return res.LastInsertId()
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, username, password, created_at, updated_at FROM users WHERE username = ? LIMIT 1`,
		username).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, username, password, created_at, updated_at FROM users WHERE id = ? LIMIT 1`,
		id).Scan(&u.ID, &u.Username, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
