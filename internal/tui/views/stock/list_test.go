package stock

import (
	"strings"
	"testing"
	"time"

	"github.com/stocktake/stocktake/internal/models"
)

func testItem(id, name, category string, quantity, threshold int) *models.Item {
	now := time.Now().UTC()
	return &models.Item{
		ID:        id,
		Name:      name,
		Category:  category,
		Quantity:  quantity,
		Threshold: threshold,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newLoadedListView(items ...*models.Item) *ListView {
	view := NewListView(nil)
	view.items = items
	view.dashboard = &models.DashboardSummary{}
	for _, item := range items {
		view.dashboard.Total++
		switch item.Status() {
		case models.StockStatusNeeds:
			view.dashboard.Needs++
		case models.StockStatusLow:
			view.dashboard.Low++
		default:
			view.dashboard.Good++
		}
	}
	view.refreshRows()
	return view
}

func TestListView_New(t *testing.T) {
	view := NewListView(nil)
	if view == nil {
		t.Fatal("expected non-nil view")
	}
	if view.table == nil {
		t.Fatal("expected non-nil table")
	}
}

func TestListView_EmptyRender(t *testing.T) {
	view := NewListView(nil)
	output := view.Render(120, 40)

	if !strings.Contains(output, "STOCK CHECKLIST") {
		t.Error("expected title in output")
	}
	if !strings.Contains(output, "No items found") {
		t.Error("expected empty state message")
	}
}

func TestListView_RenderRows(t *testing.T) {
	view := newLoadedListView(
		testItem("1", "Buns", "Buns & Chips", 12, 10),
		testItem("2", "Chips", "Buns & Chips", 0, 10),
		testItem("3", "Lettuce", "Veggies", 2, 5),
	)

	output := view.Render(120, 40)

	checks := []string{"Buns", "Chips", "Lettuce", "NEEDS", "LOW", "GOOD"}
	for _, want := range checks {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestListView_SearchFilter(t *testing.T) {
	view := newLoadedListView(
		testItem("1", "Buns", "Buns & Chips", 12, 10),
		testItem("2", "Coke", "Drinks", 6, 24),
	)

	view.SetSearch("coke")
	output := view.Render(120, 40)

	if !strings.Contains(output, "Coke") {
		t.Error("expected matching item in output")
	}
	if strings.Contains(output, "Buns") {
		t.Error("expected non-matching item filtered out")
	}
}

func TestListView_SearchMatchesCategory(t *testing.T) {
	view := newLoadedListView(
		testItem("1", "Coke", "Drinks", 6, 24),
		testItem("2", "Buns", "Buns & Chips", 12, 10),
	)

	view.SetSearch("drinks")

	if got := len(view.visible); got != 1 {
		t.Fatalf("expected 1 visible item, got %d", got)
	}
	if view.visible[0].Name != "Coke" {
		t.Errorf("expected Coke visible, got %s", view.visible[0].Name)
	}
}

func TestListView_SelectedItem(t *testing.T) {
	view := newLoadedListView(
		testItem("1", "Buns", "Buns & Chips", 12, 10),
		testItem("2", "Chips", "Buns & Chips", 4, 10),
	)

	if item := view.SelectedItem(); item == nil || item.Name != "Buns" {
		t.Errorf("expected first item selected, got %+v", item)
	}

	view.MoveDown()
	if item := view.SelectedItem(); item == nil || item.Name != "Chips" {
		t.Errorf("expected second item selected, got %+v", item)
	}
}

func TestListView_SelectedItem_Empty(t *testing.T) {
	view := NewListView(nil)
	if item := view.SelectedItem(); item != nil {
		t.Errorf("expected nil selection on empty view, got %+v", item)
	}
}

func TestListView_AdjustSelected(t *testing.T) {
	view := newLoadedListView(testItem("1", "Buns", "Buns & Chips", 4, 10))

	view.AdjustSelected(1)
	view.AdjustSelected(1)

	if !view.HasPending() {
		t.Fatal("expected pending edit")
	}

	changes := view.PendingChanges()
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0].ID != "1" || changes[0].Quantity != 6 {
		t.Errorf("expected change {1, 6}, got %+v", changes[0])
	}

	// Stored quantity untouched until saved
	if view.items[0].Quantity != 4 {
		t.Errorf("expected stored quantity 4, got %d", view.items[0].Quantity)
	}
}

func TestListView_AdjustSelected_FloorsAtZero(t *testing.T) {
	view := newLoadedListView(testItem("1", "Buns", "Buns & Chips", 1, 10))

	view.AdjustSelected(-1)
	view.AdjustSelected(-1)
	view.AdjustSelected(-1)

	changes := view.PendingChanges()
	if len(changes) != 1 || changes[0].Quantity != 0 {
		t.Errorf("expected quantity floored at 0, got %+v", changes)
	}
}

func TestListView_AdjustSelected_BackToStoredClears(t *testing.T) {
	view := newLoadedListView(testItem("1", "Buns", "Buns & Chips", 4, 10))

	view.AdjustSelected(1)
	view.AdjustSelected(-1)

	if view.HasPending() {
		t.Error("expected no pending edit after returning to stored quantity")
	}
}

func TestListView_PendingMarkerAndReclassification(t *testing.T) {
	// At quantity 1 the item is LOW; editing it to 0 shows NEEDS live
	view := newLoadedListView(testItem("1", "Eggs", "Others", 1, 5))

	view.AdjustSelected(-1)
	output := view.Render(120, 40)

	if !strings.Contains(output, "0*") {
		t.Error("expected edited quantity marker in output")
	}
	if !strings.Contains(output, "NEEDS") {
		t.Error("expected live reclassification to NEEDS")
	}
	if !strings.Contains(output, "unsaved change") {
		t.Error("expected unsaved changes warning")
	}
}

func TestListView_ClearPending(t *testing.T) {
	view := newLoadedListView(testItem("1", "Buns", "Buns & Chips", 4, 10))

	view.AdjustSelected(1)
	view.ClearPending()

	if view.HasPending() {
		t.Error("expected pending cleared")
	}
	if len(view.PendingChanges()) != 0 {
		t.Error("expected no changes after clear")
	}
}

func TestListView_PendingChanges_StableOrder(t *testing.T) {
	view := newLoadedListView(
		testItem("a", "Buns", "Buns & Chips", 1, 10),
		testItem("b", "Chips", "Buns & Chips", 2, 10),
		testItem("c", "Coke", "Drinks", 3, 24),
	)

	// Edit in reverse selection order
	view.MoveDown()
	view.MoveDown()
	view.AdjustSelected(1)
	view.MoveUp()
	view.MoveUp()
	view.AdjustSelected(1)

	changes := view.PendingChanges()
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	// Batch follows item order, not edit order
	if changes[0].ID != "a" || changes[1].ID != "c" {
		t.Errorf("expected changes ordered a, c; got %s, %s", changes[0].ID, changes[1].ID)
	}
}

func TestListView_RenderTotals(t *testing.T) {
	view := newLoadedListView(
		testItem("1", "Buns", "Buns & Chips", 12, 10),
		testItem("2", "Chips", "Buns & Chips", 0, 10),
	)

	output := view.Render(120, 40)
	for _, want := range []string{"Total:", "Needs:", "Low:", "Good:"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in totals line", want)
		}
	}
}

func TestListView_RenderDetail_NilItem(t *testing.T) {
	view := NewListView(nil)
	output := view.RenderDetail(nil)

	if !strings.Contains(output, "No item selected") {
		t.Error("expected 'No item selected' for nil item")
	}
	if strings.Contains(output, "\n") {
		t.Errorf("empty-state message should not wrap: %q", output)
	}
}

func TestListView_RenderDetail_WithItem(t *testing.T) {
	view := NewListView(nil)
	item := testItem("1", "Lettuce", "Veggies", 2, 5)

	output := view.RenderDetail(item)

	checks := []struct {
		label string
		value string
	}{
		{"title", "ITEM DETAILS"},
		{"name", "Lettuce"},
		{"category", "Veggies"},
		{"quantity", "2"},
		{"threshold", "5"},
		{"status", "LOW"},
		{"help", "Esc:Back"},
	}

	for _, check := range checks {
		if !strings.Contains(output, check.value) {
			t.Errorf("expected %s (%q) in detail output", check.label, check.value)
		}
	}
}
