package models

import (
	"fmt"
	"time"
)

// StockStatus represents the stock level classification of an item.
type StockStatus string

const (
	StockStatusNeeds StockStatus = "NEEDS"
	StockStatusLow   StockStatus = "LOW"
	StockStatusGood  StockStatus = "GOOD"
)

func (s StockStatus) String() string {
	return string(s)
}

// Classify maps a quantity and threshold to a stock status.
// Zero quantity is always NEEDS, even when the threshold is zero.
// A zero threshold with stock on hand is GOOD.
func Classify(quantity, threshold int) StockStatus {
	switch {
	case quantity == 0:
		return StockStatusNeeds
	case quantity < threshold:
		return StockStatusLow
	default:
		return StockStatusGood
	}
}

// Item represents a tracked inventory item.
type Item struct {
	ID        string
	Name      string
	Category  string
	Quantity  int
	Threshold int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status returns the item's stock classification.
func (i *Item) Status() StockStatus {
	return Classify(i.Quantity, i.Threshold)
}

// QuantityChange describes a pending edit to a single item. A nil
// Threshold leaves the stored threshold untouched.
type QuantityChange struct {
	ID        string
	Quantity  int
	Threshold *int
}

// ItemNotFoundError indicates a lookup or update referenced an unknown item.
type ItemNotFoundError struct {
	ID string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item not found: %s", e.ID)
}
