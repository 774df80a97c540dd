package store

import (
	"context"
	"database/sql"

	"github.com/invtrack/apiserver/types"
)

// ItemRepository handles persistence for inventory items. Every method issues
// exactly one statement against the pool; no connection outlives a call.
type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// List returns all items ordered by name ascending. The ordering is part of
// the API contract.
func (r *ItemRepository) List(ctx context.Context) ([]types.Item, error) {
	const query = `
		SELECT name, quantity
		FROM items
		ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	items := make([]types.Item, 0)
	for rows.Next() {
		var item types.Item
		if err := rows.Scan(&item.Name, &item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, translate(err)
	}

	return items, nil
}

// Create inserts a new item. A duplicate name yields ErrConflict via the
// unique constraint on items.name.
func (r *ItemRepository) Create(ctx context.Context, name string, quantity int) error {
	const query = `
		INSERT INTO items (name, quantity)
		VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, name, quantity); err != nil {
		return translate(err)
	}
	return nil
}

// UpdateQuantity sets the quantity for the named item. ErrNotFound is
// returned when no row matched.
func (r *ItemRepository) UpdateQuantity(ctx context.Context, name string, quantity int) error {
	const query = `
		UPDATE items
		SET quantity = $1,
			updated_at = now()
		WHERE name = $2`
	result, err := r.db.ExecContext(ctx, query, quantity, name)
	if err != nil {
		return translate(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the named item. ErrNotFound is returned when no row matched.
func (r *ItemRepository) Delete(ctx context.Context, name string) error {
	const query = `DELETE FROM items WHERE name = $1`
	result, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return translate(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
