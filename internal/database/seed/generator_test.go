package seed

import (
	"context"
	"testing"

	"github.com/stocktake/stocktake/internal/config"
	"github.com/stocktake/stocktake/internal/testutil"
)

func checklistSize() int {
	total := 0
	for _, entry := range DefaultChecklist {
		total += len(entry.Items)
	}
	return total
}

func TestGenerator_Generate(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Close(t)

	cfg := config.Default()
	gen := NewGenerator(db.DB, cfg)

	if err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	db.AssertRowCount(t, "items", checklistSize())

	// Every seeded item starts at quantity zero with the category default
	// threshold, so the dashboard flags the whole checklist as NEEDS.
	var quantity, threshold int
	err := db.QueryRow(
		"SELECT quantity, threshold FROM items WHERE name = ? AND category = ?",
		"Coke", "Drinks",
	).Scan(&quantity, &threshold)
	if err != nil {
		t.Fatalf("failed to read seeded item: %v", err)
	}
	if quantity != 0 {
		t.Errorf("expected seeded quantity 0, got %d", quantity)
	}
	if want := cfg.DefaultThresholdFor("Drinks"); threshold != want {
		t.Errorf("expected threshold %d for Drinks, got %d", want, threshold)
	}

	var nonzero int
	if err := db.QueryRow("SELECT COUNT(*) FROM items WHERE quantity != 0").Scan(&nonzero); err != nil {
		t.Fatalf("failed to count nonzero quantities: %v", err)
	}
	if nonzero != 0 {
		t.Errorf("expected all seeded quantities to be 0, found %d nonzero", nonzero)
	}

	t.Run("SecondRunIsNoOp", func(t *testing.T) {
		if err := gen.Generate(context.Background()); err != nil {
			t.Fatalf("second Generate failed: %v", err)
		}
		db.AssertRowCount(t, "items", checklistSize())
	})
}

func TestGenerator_SkipsNonEmptyTable(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Close(t)

	db.ExecSQL(t,
		`INSERT INTO items (id, name, category, quantity, threshold, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"existing-1", "Buns", "Buns & Chips", 7, 10,
		"2026-01-01T00:00:00Z", "2026-01-01T00:00:00Z",
	)

	gen := NewGenerator(db.DB, config.Default())
	if err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	db.AssertRowCount(t, "items", 1)
}
