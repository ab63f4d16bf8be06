package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stocktake/stocktake/internal/models"
	"github.com/stocktake/stocktake/internal/testutil"
)

func setupTestDB(t *testing.T) *testutil.TestDB {
	t.Helper()
	return testutil.NewTestDB(t)
}

func TestItemRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewItemRepository(db.DB)
	ctx := context.Background()

	t.Run("Create valid item", func(t *testing.T) {
		item := testutil.FixtureItem()

		err := repo.Create(ctx, nil, item)
		if err != nil {
			t.Fatalf("failed to create item: %v", err)
		}

		found, err := repo.Get(ctx, item.ID)
		if err != nil {
			t.Fatalf("failed to get item: %v", err)
		}

		if found.Name != item.Name {
			t.Errorf("expected name %s, got %s", item.Name, found.Name)
		}
		if found.Quantity != item.Quantity {
			t.Errorf("expected quantity %d, got %d", item.Quantity, found.Quantity)
		}
	})

	t.Run("Create with transaction", func(t *testing.T) {
		item := testutil.FixtureItem(func(i *models.Item) {
			i.Name = "Tomatoes"
			i.Category = "Veggies"
		})

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("failed to begin transaction: %v", err)
		}
		defer tx.Rollback()

		if err := repo.Create(ctx, tx, item); err != nil {
			t.Fatalf("failed to create item: %v", err)
		}

		if err := tx.Commit(); err != nil {
			t.Fatalf("failed to commit transaction: %v", err)
		}

		found, err := repo.Get(ctx, item.ID)
		if err != nil {
			t.Fatalf("failed to get item: %v", err)
		}
		if found.ID != item.ID {
			t.Errorf("expected ID %s, got %s", item.ID, found.ID)
		}
	})

	t.Run("Negative quantity rejected by schema", func(t *testing.T) {
		item := testutil.FixtureItem(func(i *models.Item) {
			i.Name = "Pickles"
			i.Category = "Veggies"
			i.Quantity = -1
		})

		if err := repo.Create(ctx, nil, item); err == nil {
			t.Error("expected error for negative quantity, got nil")
		}
	})

	t.Run("Duplicate name in category rejected", func(t *testing.T) {
		first := testutil.FixtureItem(func(i *models.Item) {
			i.Name = "Onions"
			i.Category = "Veggies"
		})
		if err := repo.Create(ctx, nil, first); err != nil {
			t.Fatalf("failed to create first item: %v", err)
		}

		dup := testutil.FixtureItem(func(i *models.Item) {
			i.Name = "Onions"
			i.Category = "Veggies"
		})
		if err := repo.Create(ctx, nil, dup); err == nil {
			t.Error("expected error for duplicate name, got nil")
		}
	})
}

func TestItemRepository_Get_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewItemRepository(db.DB)

	_, err := repo.Get(context.Background(), "no-such-id")
	var notFound *models.ItemNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ItemNotFoundError, got %v", err)
	}
}

func TestItemRepository_List_Ordering(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewItemRepository(db.DB)
	ctx := context.Background()

	// Insert out of order to verify the query sorts
	fixtures := []*models.Item{
		testutil.FixtureItem(func(i *models.Item) { i.Name = "Water"; i.Category = "Drinks" }),
		testutil.FixtureItem(func(i *models.Item) { i.Name = "Chips"; i.Category = "Buns & Chips" }),
		testutil.FixtureItem(func(i *models.Item) { i.Name = "Coke"; i.Category = "Drinks" }),
		testutil.FixtureItem(func(i *models.Item) { i.Name = "Buns"; i.Category = "Buns & Chips" }),
	}
	for _, f := range fixtures {
		if err := repo.Create(ctx, nil, f); err != nil {
			t.Fatalf("failed to create item: %v", err)
		}
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("failed to list items: %v", err)
	}

	want := []string{"Buns", "Chips", "Coke", "Water"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, items[i].Name)
		}
	}
}

func TestItemRepository_ApplyChange(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewItemRepository(db.DB)
	ctx := context.Background()

	item := testutil.FixtureItem()
	if err := repo.Create(ctx, nil, item); err != nil {
		t.Fatalf("failed to create item: %v", err)
	}

	t.Run("Quantity only leaves threshold alone", func(t *testing.T) {
		err := repo.ApplyChange(ctx, nil, models.QuantityChange{ID: item.ID, Quantity: 3})
		if err != nil {
			t.Fatalf("failed to apply change: %v", err)
		}

		found, err := repo.Get(ctx, item.ID)
		if err != nil {
			t.Fatalf("failed to get item: %v", err)
		}
		if found.Quantity != 3 {
			t.Errorf("expected quantity 3, got %d", found.Quantity)
		}
		if found.Threshold != item.Threshold {
			t.Errorf("expected threshold %d, got %d", item.Threshold, found.Threshold)
		}
	})

	t.Run("Quantity and threshold", func(t *testing.T) {
		threshold := 7
		err := repo.ApplyChange(ctx, nil, models.QuantityChange{
			ID: item.ID, Quantity: 9, Threshold: &threshold,
		})
		if err != nil {
			t.Fatalf("failed to apply change: %v", err)
		}

		found, err := repo.Get(ctx, item.ID)
		if err != nil {
			t.Fatalf("failed to get item: %v", err)
		}
		if found.Quantity != 9 || found.Threshold != 7 {
			t.Errorf("expected 9/7, got %d/%d", found.Quantity, found.Threshold)
		}
	})

	t.Run("Unknown ID returns ItemNotFoundError", func(t *testing.T) {
		err := repo.ApplyChange(ctx, nil, models.QuantityChange{ID: "missing", Quantity: 1})
		var notFound *models.ItemNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected ItemNotFoundError, got %v", err)
		}
	})
}

func TestItemRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close(t)

	repo := NewItemRepository(db.DB)
	ctx := context.Background()

	item := testutil.FixtureItem()
	if err := repo.Create(ctx, nil, item); err != nil {
		t.Fatalf("failed to create item: %v", err)
	}

	if err := repo.Delete(ctx, nil, item.ID); err != nil {
		t.Fatalf("failed to delete item: %v", err)
	}

	_, err := repo.Get(ctx, item.ID)
	var notFound *models.ItemNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ItemNotFoundError after delete, got %v", err)
	}

	if err := repo.Delete(ctx, nil, item.ID); err == nil {
		t.Error("expected error deleting missing item, got nil")
	}
}
