package stock

// CreateItemInput contains data for creating an inventory item.
// A nil Threshold takes the category's configured default.
type CreateItemInput struct {
	Name      string
	Category  string
	Quantity  int
	Threshold *int
}

// UpdateItemInput contains data for editing an item's identity and levels.
type UpdateItemInput struct {
	ID        string
	Name      string
	Category  string
	Quantity  int
	Threshold int
}
