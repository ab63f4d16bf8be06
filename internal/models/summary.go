package models

// CategorySummary groups a category's items by stock status. The slices
// preserve the name ordering of the underlying listing.
type CategorySummary struct {
	Category string
	Needs    []*Item
	Low      []*Item
	Good     []*Item
}

// ItemCount returns the number of items in the category.
func (c *CategorySummary) ItemCount() int {
	return len(c.Needs) + len(c.Low) + len(c.Good)
}

// DashboardSummary holds whole-inventory status counts.
type DashboardSummary struct {
	Total int
	Needs int
	Low   int
	Good  int
}
