package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/stocktake/stocktake/internal/models"
)

// FixtureItem creates a test item with sensible defaults.
func FixtureItem(overrides ...func(*models.Item)) *models.Item {
	now := time.Now().UTC()

	item := &models.Item{
		ID:        uuid.New().String(),
		Name:      "Buns",
		Category:  "Buns & Chips",
		Quantity:  12,
		Threshold: 10,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, override := range overrides {
		override(item)
	}

	return item
}

// FixtureDepletedItem creates an item with zero stock.
func FixtureDepletedItem(overrides ...func(*models.Item)) *models.Item {
	return FixtureItem(append([]func(*models.Item){
		func(i *models.Item) {
			i.Name = "Chips"
			i.Quantity = 0
		},
	}, overrides...)...)
}

// FixtureLowItem creates an item below its threshold.
func FixtureLowItem(overrides ...func(*models.Item)) *models.Item {
	return FixtureItem(append([]func(*models.Item){
		func(i *models.Item) {
			i.Name = "Lettuce"
			i.Category = "Veggies"
			i.Quantity = 2
			i.Threshold = 5
		},
	}, overrides...)...)
}
