// Package repository provides data access over the SQLite store.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stocktake/stocktake/internal/models"
)

// ItemRepository handles inventory item data access.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new item repository.
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts a new item.
func (r *ItemRepository) Create(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	query := `
		INSERT INTO items (
			id, name, category, quantity, threshold, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	execer := r.getExecer(tx)
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := execer.ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Category,
		item.Quantity,
		item.Threshold,
		item.CreatedAt.Format(time.RFC3339),
		item.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}
	return nil
}

// Get retrieves an item by ID.
func (r *ItemRepository) Get(ctx context.Context, id string) (*models.Item, error) {
	query := `
		SELECT id, name, category, quantity, threshold, created_at, updated_at
		FROM items
		WHERE id = ?`

	item, err := r.scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.ItemNotFoundError{ID: id}
	}
	return item, err
}

// List retrieves all items ordered by category then name.
func (r *ItemRepository) List(ctx context.Context) ([]*models.Item, error) {
	query := `
		SELECT id, name, category, quantity, threshold, created_at, updated_at
		FROM items
		ORDER BY category, name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := r.scanItemRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListByCategory retrieves the items in a single category ordered by name.
func (r *ItemRepository) ListByCategory(ctx context.Context, category string) ([]*models.Item, error) {
	query := `
		SELECT id, name, category, quantity, threshold, created_at, updated_at
		FROM items
		WHERE category = ?
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("querying items by category: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := r.scanItemRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Update rewrites an item's mutable fields.
func (r *ItemRepository) Update(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	query := `
		UPDATE items SET
			name = ?, category = ?, quantity = ?, threshold = ?, updated_at = ?
		WHERE id = ?`

	execer := r.getExecer(tx)
	item.UpdatedAt = time.Now().UTC()

	result, err := execer.ExecContext(ctx, query,
		item.Name,
		item.Category,
		item.Quantity,
		item.Threshold,
		item.UpdatedAt.Format(time.RFC3339),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return &models.ItemNotFoundError{ID: item.ID}
	}
	return nil
}

// ApplyChange updates one item's quantity, and threshold when the
// change carries one. Returns ItemNotFoundError for unknown IDs.
func (r *ItemRepository) ApplyChange(ctx context.Context, tx *sql.Tx, change models.QuantityChange) error {
	execer := r.getExecer(tx)
	updatedAt := time.Now().UTC().Format(time.RFC3339)

	var result sql.Result
	var err error
	if change.Threshold != nil {
		result, err = execer.ExecContext(ctx,
			"UPDATE items SET quantity = ?, threshold = ?, updated_at = ? WHERE id = ?",
			change.Quantity, *change.Threshold, updatedAt, change.ID,
		)
	} else {
		result, err = execer.ExecContext(ctx,
			"UPDATE items SET quantity = ?, updated_at = ? WHERE id = ?",
			change.Quantity, updatedAt, change.ID,
		)
	}
	if err != nil {
		return fmt.Errorf("applying change: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return &models.ItemNotFoundError{ID: change.ID}
	}
	return nil
}

// Delete removes an item.
func (r *ItemRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	execer := r.getExecer(tx)

	result, err := execer.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return &models.ItemNotFoundError{ID: id}
	}
	return nil
}

// Count returns the number of items.
func (r *ItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return count, nil
}

func (r *ItemRepository) getExecer(tx *sql.Tx) interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ItemRepository) scanItem(row *sql.Row) (*models.Item, error) {
	var item models.Item
	var createdStr, updatedStr string

	err := row.Scan(
		&item.ID, &item.Name, &item.Category,
		&item.Quantity, &item.Threshold,
		&createdStr, &updatedStr,
	)
	if err != nil {
		return nil, err
	}

	item.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	item.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)

	return &item, nil
}

func (r *ItemRepository) scanItemRow(rows *sql.Rows) (*models.Item, error) {
	var item models.Item
	var createdStr, updatedStr string

	err := rows.Scan(
		&item.ID, &item.Name, &item.Category,
		&item.Quantity, &item.Threshold,
		&createdStr, &updatedStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning item row: %w", err)
	}

	item.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	item.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)

	return &item, nil
}
