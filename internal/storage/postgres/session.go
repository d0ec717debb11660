package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// WithSession checks a dedicated connection out of db for the duration of fn.
// The connection goes back to the pool on every exit path, including panics.
func WithSession(ctx context.Context, db *sql.DB, fn func(conn *sql.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire session: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// WithTx runs fn in a transaction on conn. It commits when fn returns nil and
// rolls back otherwise.
func WithTx(ctx context.Context, conn *sql.Conn, fn func(tx *sql.Tx) error) (err error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
