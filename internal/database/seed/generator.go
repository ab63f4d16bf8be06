// Package seed populates a fresh database with the starting inventory.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/stocktake/stocktake/internal/config"
	"github.com/stocktake/stocktake/internal/util"
)

// Generator inserts the default checklist into an empty items table.
type Generator struct {
	db    *sql.DB
	cfg   *config.Config
	idGen *util.IDGenerator
}

// NewGenerator creates a new seed generator.
func NewGenerator(db *sql.DB, cfg *config.Config) *Generator {
	return &Generator{
		db:    db,
		cfg:   cfg,
		idGen: util.NewIDGenerator(),
	}
}

// Generate seeds the default checklist in a single transaction.
// It is a no-op when the items table already has rows.
func (g *Generator) Generate(ctx context.Context) error {
	var count int
	if err := g.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		return fmt.Errorf("counting items: %w", err)
	}
	if count > 0 {
		slog.Debug("skipping seed, items already present", "count", count)
		return nil
	}

	slog.Info("seeding default checklist")

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO items (
		id, name, category, quantity, threshold, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC().Format(time.RFC3339)
	seeded := 0

	for _, entry := range DefaultChecklist {
		threshold := g.cfg.DefaultThresholdFor(entry.Category)
		for _, name := range entry.Items {
			id := g.idGen.NewID()
			if _, err := tx.ExecContext(ctx, query, id, name, entry.Category, 0, threshold, now, now); err != nil {
				return fmt.Errorf("inserting %s: %w", name, err)
			}
			seeded++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	slog.Info("seed complete", "items", seeded)

	return nil
}
