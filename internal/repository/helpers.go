package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// execer covers both *sql.DB and *sql.Tx so existence checks can run inside
// or outside a transaction.
type execer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// requireExists verifies that a row with the given id exists in the table,
// returning ErrNotFound otherwise. The table name is always a compile-time
// constant at call sites, never user input.
func requireExists(ctx context.Context, q execer, table string, id int64) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", strings.TrimSuffix(table, "s"), id, ErrNotFound)
	}
	return err
}

// requireExistsTx is requireExists scoped to an open transaction.
func requireExistsTx(ctx context.Context, tx *sql.Tx, table string, id int64) error {
	return requireExists(ctx, tx, table, id)
}

// prefixCols qualifies every column in a comma-separated column list with
// a table alias, for use in JOIN queries.
func prefixCols(alias, cols string) string {
	parts := strings.Split(cols, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
