// Package order provides TUI views for reorder planning.
package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/stocktake/stocktake/internal/models"
	"github.com/stocktake/stocktake/internal/services/reorder"
	"github.com/stocktake/stocktake/internal/services/stock"
	"github.com/stocktake/stocktake/internal/tui/components"
)

// PlannerView drives the reorder workflow. It lists candidates at or
// below their threshold so the user can tune quantities and notes
// before composing the final order message.
type PlannerView struct {
	service *stock.Service
	planner *reorder.Planner

	table      *components.Table
	candidates []*models.OrderCandidate
	requested  map[string]int
	notes      map[string]string
	preview    *models.OrderMessage
	shareLink  string
	loading    bool
	err        error
}

// NewPlannerView creates a new reorder planner view.
func NewPlannerView(service *stock.Service, planner *reorder.Planner) *PlannerView {
	columns := []components.Column{
		{Title: "Item", Width: 20, Weight: 1.0, Priority: 5},
		{Title: "Category", Width: 20, Priority: 2},
		{Title: "On Hand", Width: 7, Align: lipgloss.Right, Priority: 3},
		{Title: "Suggested", Width: 9, Align: lipgloss.Right, Priority: 3},
		{Title: "Order", Width: 6, Align: lipgloss.Right, Priority: 5},
		{Title: "Note", Width: 18, Priority: 1},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(20)
	table.Focus(true)

	return &PlannerView{
		service:   service,
		planner:   planner,
		table:     table,
		requested: make(map[string]int),
		notes:     make(map[string]string),
	}
}

// Load fetches the stock snapshot and rebuilds the candidate list.
// Requested quantities start at the suggested amount; tuned values
// survive a reload as long as the item is still a candidate.
func (v *PlannerView) Load(ctx context.Context) error {
	v.loading = true
	v.err = nil

	items, err := v.service.Snapshot(ctx)
	if err != nil {
		v.loading = false
		v.err = err
		return err
	}

	v.candidates = v.planner.Candidates(items)
	v.loading = false

	current := make(map[string]bool, len(v.candidates))
	for _, candidate := range v.candidates {
		current[candidate.Item.ID] = true
		if _, ok := v.requested[candidate.Item.ID]; !ok {
			v.requested[candidate.Item.ID] = candidate.Suggested
		}
	}
	for id := range v.requested {
		if !current[id] {
			delete(v.requested, id)
			delete(v.notes, id)
		}
	}

	v.refreshRows()
	return nil
}

func (v *PlannerView) refreshRows() {
	rows := make([][]string, len(v.candidates))
	for i, candidate := range v.candidates {
		rows[i] = []string{
			candidate.Item.Name,
			candidate.Item.Category,
			fmt.Sprintf("%d", candidate.Item.Quantity),
			fmt.Sprintf("%d", candidate.Suggested),
			fmt.Sprintf("%d", v.requested[candidate.Item.ID]),
			v.notes[candidate.Item.ID],
		}
	}
	v.table.SetRows(rows)
}

// SetVisibleRows adjusts how many rows the table shows at once.
func (v *PlannerView) SetVisibleRows(n int) {
	v.table.SetVisibleRows(n)
}

// MoveUp moves the selection up.
func (v *PlannerView) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *PlannerView) MoveDown() {
	v.table.MoveDown()
}

// SelectedCandidate returns the currently selected candidate.
func (v *PlannerView) SelectedCandidate() *models.OrderCandidate {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.candidates) {
		return v.candidates[idx]
	}
	return nil
}

// AdjustSelected changes the requested quantity of the selected
// candidate by delta, floored at zero.
func (v *PlannerView) AdjustSelected(delta int) {
	candidate := v.SelectedCandidate()
	if candidate == nil {
		return
	}

	qty := v.requested[candidate.Item.ID] + delta
	if qty < 0 {
		qty = 0
	}
	v.requested[candidate.Item.ID] = qty
	v.refreshRows()
}

// ZeroSelected drops the selected candidate from the order.
func (v *PlannerView) ZeroSelected() {
	candidate := v.SelectedCandidate()
	if candidate == nil {
		return
	}
	v.requested[candidate.Item.ID] = 0
	v.refreshRows()
}

// ResetSuggested restores every requested quantity to the suggestion.
func (v *PlannerView) ResetSuggested() {
	for _, candidate := range v.candidates {
		v.requested[candidate.Item.ID] = candidate.Suggested
	}
	v.refreshRows()
}

// NoteForSelected returns the note attached to the selected candidate.
func (v *PlannerView) NoteForSelected() string {
	candidate := v.SelectedCandidate()
	if candidate == nil {
		return ""
	}
	return v.notes[candidate.Item.ID]
}

// SetNoteForSelected attaches a note to the selected candidate.
func (v *PlannerView) SetNoteForSelected(note string) {
	candidate := v.SelectedCandidate()
	if candidate == nil {
		return
	}
	if strings.TrimSpace(note) == "" {
		delete(v.notes, candidate.Item.ID)
	} else {
		v.notes[candidate.Item.ID] = note
	}
	v.refreshRows()
}

// Compose builds the order message from the current selection and
// stores it for the preview. Returns reorder.ErrEmptySelection when
// every quantity is zero.
func (v *PlannerView) Compose() error {
	msg, err := v.planner.Compose(v.candidates, v.requested, v.notes)
	if err != nil {
		v.preview = nil
		v.shareLink = ""
		return err
	}

	v.preview = msg
	v.shareLink = v.planner.ShareLink(msg)
	return nil
}

// Preview returns the last composed order message, if any.
func (v *PlannerView) Preview() *models.OrderMessage {
	return v.preview
}

// ClearPreview discards the composed message.
func (v *PlannerView) ClearPreview() {
	v.preview = nil
	v.shareLink = ""
}

// Render renders the candidate list.
func (v *PlannerView) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== REORDER PLANNER ==="))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(errStyle.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	if v.loading {
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
	} else if len(v.candidates) == 0 {
		b.WriteString(labelStyle.Render("Nothing at or below threshold. Stock is in good shape."))
		b.WriteString("\n")
	} else {
		b.WriteString(v.table.RenderResponsive(width))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Up/Down:Select  +/-:Adjust  0:Drop  r:Reset  n:Note  Enter:Compose"))

	return b.String()
}

// RenderPreview renders the composed order message and share link.
func (v *PlannerView) RenderPreview(width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#006600"))
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))

	if v.preview == nil {
		return labelStyle.Render("No order composed")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("=== ORDER PREVIEW ==="))
	b.WriteString("\n\n")

	for _, line := range strings.Split(v.preview.Text(), "\n") {
		b.WriteString(valueStyle.Render(line))
		b.WriteString("\n")
	}

	if v.shareLink != "" {
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Share link:"))
		b.WriteString("\n")
		link := v.shareLink
		if width > 4 && len(link) > width-4 {
			link = link[:width-5] + "…"
		}
		b.WriteString(mutedStyle.Render(link))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Esc:Back to planner"))

	return b.String()
}
