package stock

import (
	"github.com/stocktake/stocktake/internal/models"
)

// Aggregate buckets items by category and stock status and tallies the
// dashboard counts. Known categories appear in the given order even
// when empty; categories only present on items are appended in
// first-seen order. Items keep their input ordering within buckets.
func Aggregate(items []*models.Item, categories []string) ([]*models.CategorySummary, *models.DashboardSummary) {
	byName := make(map[string]*models.CategorySummary, len(categories))
	var ordered []*models.CategorySummary

	for _, name := range categories {
		summary := &models.CategorySummary{Category: name}
		byName[name] = summary
		ordered = append(ordered, summary)
	}

	dashboard := &models.DashboardSummary{}

	for _, item := range items {
		summary, ok := byName[item.Category]
		if !ok {
			summary = &models.CategorySummary{Category: item.Category}
			byName[item.Category] = summary
			ordered = append(ordered, summary)
		}

		dashboard.Total++
		switch item.Status() {
		case models.StockStatusNeeds:
			summary.Needs = append(summary.Needs, item)
			dashboard.Needs++
		case models.StockStatusLow:
			summary.Low = append(summary.Low, item)
			dashboard.Low++
		default:
			summary.Good = append(summary.Good, item)
			dashboard.Good++
		}
	}

	return ordered, dashboard
}
