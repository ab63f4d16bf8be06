// Package stock provides TUI views for the stock checklist.
package stock

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/stocktake/stocktake/internal/models"
	"github.com/stocktake/stocktake/internal/services/stock"
	"github.com/stocktake/stocktake/internal/tui/components"
)

// ListView displays the stock checklist with inline quantity editing.
// Edits accumulate in memory and are committed as a single batch.
type ListView struct {
	service   *stock.Service
	table     *components.Table
	items     []*models.Item
	visible   []*models.Item
	dashboard *models.DashboardSummary
	pending   map[string]int
	search    string
	loading   bool
	err       error
}

// NewListView creates a new stock list view.
func NewListView(service *stock.Service) *ListView {
	columns := []components.Column{
		{Title: "Item", Width: 20, Weight: 1.0, Priority: 5},
		{Title: "Category", Width: 20, Priority: 3},
		{Title: "Qty", Width: 6, Align: lipgloss.Right, Priority: 4},
		{Title: "Threshold", Width: 9, Align: lipgloss.Right, Priority: 2},
		{Title: "Status", Width: 7, Priority: 4},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(20)
	table.Focus(true)

	return &ListView{
		service: service,
		table:   table,
		pending: make(map[string]int),
	}
}

// Load fetches the checklist from the database.
func (v *ListView) Load(ctx context.Context) error {
	v.loading = true
	v.err = nil

	items, err := v.service.Snapshot(ctx)
	if err != nil {
		v.loading = false
		v.err = err
		return err
	}

	_, dashboard, err := v.service.Overview(ctx)
	if err != nil {
		v.loading = false
		v.err = err
		return err
	}

	v.items = items
	v.dashboard = dashboard
	v.loading = false
	v.refreshRows()

	return nil
}

// refreshRows rebuilds the table rows from the items, the search
// filter, and any pending quantity edits. visible stays index-aligned
// with the table rows.
func (v *ListView) refreshRows() {
	v.visible = v.visible[:0]
	var rows [][]string

	needle := strings.ToLower(v.search)
	for _, item := range v.items {
		if needle != "" &&
			!strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.Category), needle) {
			continue
		}

		quantity := item.Quantity
		qtyCell := fmt.Sprintf("%d", quantity)
		if edited, ok := v.pending[item.ID]; ok {
			quantity = edited
			qtyCell = fmt.Sprintf("%d*", quantity)
		}

		status := models.Classify(quantity, item.Threshold)

		v.visible = append(v.visible, item)
		rows = append(rows, []string{
			item.Name,
			item.Category,
			qtyCell,
			fmt.Sprintf("%d", item.Threshold),
			status.String(),
		})
	}

	v.table.SetRows(rows)
}

// SetVisibleRows adjusts how many rows the table shows at once.
func (v *ListView) SetVisibleRows(n int) {
	v.table.SetVisibleRows(n)
}

// SetSearch sets the search filter and rebuilds the rows.
func (v *ListView) SetSearch(search string) {
	v.search = search
	v.refreshRows()
}

// Dashboard returns the last loaded status totals.
func (v *ListView) Dashboard() *models.DashboardSummary {
	return v.dashboard
}

// MoveUp moves the selection up.
func (v *ListView) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *ListView) MoveDown() {
	v.table.MoveDown()
}

// PageUp moves up one page.
func (v *ListView) PageUp() {
	v.table.PageUp()
}

// PageDown moves down one page.
func (v *ListView) PageDown() {
	v.table.PageDown()
}

// SelectedItem returns the currently selected item.
func (v *ListView) SelectedItem() *models.Item {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.visible) {
		return v.visible[idx]
	}
	return nil
}

// AdjustSelected changes the edited quantity of the selected item by
// delta, floored at zero. The stored quantity is untouched until the
// batch is saved.
func (v *ListView) AdjustSelected(delta int) {
	item := v.SelectedItem()
	if item == nil {
		return
	}

	quantity := item.Quantity
	if edited, ok := v.pending[item.ID]; ok {
		quantity = edited
	}
	quantity += delta
	if quantity < 0 {
		quantity = 0
	}

	if quantity == item.Quantity {
		delete(v.pending, item.ID)
	} else {
		v.pending[item.ID] = quantity
	}
	v.refreshRows()
}

// HasPending reports whether there are uncommitted quantity edits.
func (v *ListView) HasPending() bool {
	return len(v.pending) > 0
}

// PendingChanges returns the accumulated edits as a batch.
func (v *ListView) PendingChanges() []models.QuantityChange {
	changes := make([]models.QuantityChange, 0, len(v.pending))
	for _, item := range v.items {
		if quantity, ok := v.pending[item.ID]; ok {
			changes = append(changes, models.QuantityChange{
				ID:       item.ID,
				Quantity: quantity,
			})
		}
	}
	return changes
}

// ClearPending discards all uncommitted edits.
func (v *ListView) ClearPending() {
	v.pending = make(map[string]int)
	v.refreshRows()
}

// Render renders the checklist view.
func (v *ListView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	goodStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render("=== STOCK CHECKLIST ==="))
	b.WriteString("\n\n")

	// Status totals
	if v.dashboard != nil {
		b.WriteString(labelStyle.Render("Total: "))
		b.WriteString(goodStyle.Render(fmt.Sprintf("%d", v.dashboard.Total)))
		b.WriteString(labelStyle.Render("  Needs: "))
		b.WriteString(errStyle.Render(fmt.Sprintf("%d", v.dashboard.Needs)))
		b.WriteString(labelStyle.Render("  Low: "))
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d", v.dashboard.Low)))
		b.WriteString(labelStyle.Render("  Good: "))
		b.WriteString(goodStyle.Render(fmt.Sprintf("%d", v.dashboard.Good)))
		b.WriteString("\n\n")
	}

	// Search filter info
	if v.search != "" {
		b.WriteString(labelStyle.Render("Filter: "))
		b.WriteString(goodStyle.Render(v.search))
		b.WriteString("\n\n")
	}

	// Error display
	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	// Loading indicator
	if v.loading {
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
	} else if v.table.Empty() {
		b.WriteString(labelStyle.Render("No items found."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.RenderResponsive(width))
	}

	// Unsaved edits indicator
	if v.HasPending() {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d unsaved change(s) - Ctrl+S to save, Esc to discard", len(v.pending))))
	}

	// Help
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Up/Down:Select  +/-:Adjust  Ctrl+S:Save  Enter:Details  a:Add  e:Edit  x:Delete  /:Search"))

	return b.String()
}

// RenderDetail renders the detail view for the selected item.
func (v *ListView) RenderDetail(item *models.Item) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Width(14)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	if item == nil {
		return helpStyle.Render("No item selected")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== ITEM DETAILS ==="))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Name:") + " " + valueStyle.Render(item.Name) + "\n")
	b.WriteString(labelStyle.Render("Category:") + " " + valueStyle.Render(item.Category) + "\n")
	b.WriteString(labelStyle.Render("Quantity:") + " " + valueStyle.Render(fmt.Sprintf("%d", item.Quantity)) + "\n")
	b.WriteString(labelStyle.Render("Threshold:") + " " + valueStyle.Render(fmt.Sprintf("%d", item.Threshold)) + "\n")

	var statusStr string
	switch item.Status() {
	case models.StockStatusNeeds:
		statusStr = errStyle.Render("NEEDS")
	case models.StockStatusLow:
		statusStr = warnStyle.Render("LOW")
	default:
		statusStr = valueStyle.Render("GOOD")
	}
	b.WriteString(labelStyle.Render("Status:") + " " + statusStr + "\n")

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Added:") + " " + valueStyle.Render(item.CreatedAt.Format("2006-01-02")) + "\n")
	b.WriteString(labelStyle.Render("Updated:") + " " + valueStyle.Render(item.UpdatedAt.Format("2006-01-02 15:04")) + "\n")

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Esc:Back  e:Edit  x:Delete"))

	return b.String()
}
