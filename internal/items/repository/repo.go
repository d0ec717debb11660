package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/items-api/internal/items/domain"
	"github.com/GoSim-25-26J-441/items-api/internal/storage/postgres"
)

// Repo provides persistence operations for items. Every call checks out its
// own session and hands it back before returning.
type Repo struct {
	db *sql.DB
}

// NewRepo creates a new item repository
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var it domain.Item
	if err := row.Scan(&it.ID, &it.Name, &it.Description, &it.CreatedAt); err != nil {
		return nil, err
	}
	return &it, nil
}

// List returns at most limit items ordered by id, skipping the first offset.
func (r *Repo) List(ctx context.Context, offset, limit int) ([]domain.Item, error) {
	const q = `
SELECT id, name, description, created_at
FROM items
ORDER BY id
OFFSET $1 LIMIT $2;
`
	out := make([]domain.Item, 0, 16)
	err := postgres.WithSession(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, q, offset, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			it, err := scanItem(rows)
			if err != nil {
				return err
			}
			out = append(out, *it)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return out, nil
}

// Get returns the item with the given id or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, id int64) (*domain.Item, error) {
	const q = `
SELECT id, name, description, created_at
FROM items
WHERE id = $1;
`
	var it *domain.Item
	err := postgres.WithSession(ctx, r.db, func(conn *sql.Conn) error {
		var err error
		it, err = scanItem(conn.QueryRowContext(ctx, q, id))
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	return it, nil
}

// Insert stores a new item and returns it with the id and created_at the
// database assigned.
func (r *Repo) Insert(ctx context.Context, name string, description *string) (*domain.Item, error) {
	const q = `
INSERT INTO items (name, description)
VALUES ($1, $2)
RETURNING id, name, description, created_at;
`
	var it *domain.Item
	err := postgres.WithSession(ctx, r.db, func(conn *sql.Conn) error {
		return postgres.WithTx(ctx, conn, func(tx *sql.Tx) error {
			var err error
			it, err = scanItem(tx.QueryRowContext(ctx, q, name, description))
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return it, nil
}

// Update overwrites name and description of an existing item. id and
// created_at are left alone. Returns domain.ErrNotFound if the id is absent.
func (r *Repo) Update(ctx context.Context, id int64, name string, description *string) (*domain.Item, error) {
	const q = `
UPDATE items
SET name = $2, description = $3
WHERE id = $1
RETURNING id, name, description, created_at;
`
	var it *domain.Item
	err := postgres.WithSession(ctx, r.db, func(conn *sql.Conn) error {
		return postgres.WithTx(ctx, conn, func(tx *sql.Tx) error {
			var err error
			it, err = scanItem(tx.QueryRowContext(ctx, q, id, name, description))
			return err
		})
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}
	return it, nil
}

// Delete removes the item with the given id or returns domain.ErrNotFound.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM items WHERE id = $1;`

	var affected int64
	err := postgres.WithSession(ctx, r.db, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, q, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
