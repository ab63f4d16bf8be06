// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column. Width is the fixed width unless
// Weight is set, in which case Width acts as the minimum and the
// column takes a proportional share of the remaining space. Columns
// with lower Priority are dropped first on narrow terminals.
type Column struct {
	Title    string
	Width    int
	Align    lipgloss.Position
	Weight   float64
	Priority int
}

// Table is a scrollable table component.
type Table struct {
	columns     []Column
	rows        [][]string
	selected    int
	offset      int
	visibleRows int
	focused     bool

	// Styles
	headerStyle   lipgloss.Style
	rowStyle      lipgloss.Style
	rowAltStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	borderStyle   lipgloss.Style
}

// NewTable creates a new table with the given columns.
func NewTable(columns []Column) *Table {
	return &Table{
		columns:       columns,
		rows:          [][]string{},
		selected:      0,
		offset:        0,
		visibleRows:   10,
		headerStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#66FF66")),
		rowStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")),
		rowAltStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")),
		selectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("#00FF00")).Foreground(lipgloss.Color("#000000")),
		borderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")),
	}
}

// SetRows sets the table data. The selection is clamped so it stays
// valid when the row count shrinks.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
	if t.selected >= len(rows) {
		t.selected = len(rows) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
	if t.offset > t.selected {
		t.offset = t.selected
	}
}

// SetColumns replaces the column definitions.
func (t *Table) SetColumns(columns []Column) {
	t.columns = columns
}

// SetVisibleRows sets the number of visible rows.
func (t *Table) SetVisibleRows(n int) {
	t.visibleRows = n
}

// SetStyles sets the table styles.
func (t *Table) SetStyles(header, row, rowAlt, selected, border lipgloss.Style) {
	t.headerStyle = header
	t.rowStyle = row
	t.rowAltStyle = rowAlt
	t.selectedStyle = selected
	t.borderStyle = border
}

// Focus sets the table focus state.
func (t *Table) Focus(focused bool) {
	t.focused = focused
}

// Selected returns the currently selected row index.
func (t *Table) Selected() int {
	return t.selected
}

// SelectedRow returns the currently selected row data.
func (t *Table) SelectedRow() []string {
	if t.selected >= 0 && t.selected < len(t.rows) {
		return t.rows[t.selected]
	}
	return nil
}

// MoveUp moves the selection up.
func (t *Table) MoveUp() {
	if t.selected > 0 {
		t.selected--
		if t.selected < t.offset {
			t.offset = t.selected
		}
	}
}

// MoveDown moves the selection down.
func (t *Table) MoveDown() {
	if t.selected < len(t.rows)-1 {
		t.selected++
		if t.selected >= t.offset+t.visibleRows {
			t.offset = t.selected - t.visibleRows + 1
		}
	}
}

// PageUp moves up one page.
func (t *Table) PageUp() {
	t.selected -= t.visibleRows
	if t.selected < 0 {
		t.selected = 0
	}
	t.offset = t.selected
}

// PageDown moves down one page.
func (t *Table) PageDown() {
	t.selected += t.visibleRows
	if t.selected >= len(t.rows) {
		t.selected = len(t.rows) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
	t.offset = t.selected - t.visibleRows + 1
	if t.offset < 0 {
		t.offset = 0
	}
}

// GoToTop goes to the first row.
func (t *Table) GoToTop() {
	t.selected = 0
	t.offset = 0
}

// GoToBottom goes to the last row.
func (t *Table) GoToBottom() {
	if len(t.rows) > 0 {
		t.selected = len(t.rows) - 1
		t.offset = t.selected - t.visibleRows + 1
		if t.offset < 0 {
			t.offset = 0
		}
	}
}

// computeWidths resolves column widths for the available terminal
// width, dropping the lowest-priority columns when space runs out.
// A width of 0 in the result hides that column.
func (t *Table) computeWidths(availableWidth int) []int {
	widths := make([]int, len(t.columns))

	visible := make([]bool, len(t.columns))
	totalFixed := 0
	totalWeight := 0.0
	visibleCount := 0

	for i, col := range t.columns {
		visible[i] = true
		visibleCount++
		if col.Weight > 0 {
			totalWeight += col.Weight
		} else {
			totalFixed += col.Width
		}
	}

	// " | " between columns plus row padding
	remaining := func() int {
		sep := 0
		if visibleCount > 1 {
			sep = (visibleCount - 1) * 3
		}
		return availableWidth - totalFixed - sep - 2
	}

	for remaining() < 0 && visibleCount > 1 {
		lowestPri := 0
		lowestIdx := -1
		for i, col := range t.columns {
			if !visible[i] {
				continue
			}
			if lowestIdx == -1 || col.Priority < lowestPri {
				lowestPri = col.Priority
				lowestIdx = i
			}
		}
		if lowestIdx < 0 {
			break
		}
		visible[lowestIdx] = false
		visibleCount--
		if t.columns[lowestIdx].Weight > 0 {
			totalWeight -= t.columns[lowestIdx].Weight
		} else {
			totalFixed -= t.columns[lowestIdx].Width
		}
	}

	rem := remaining()
	if rem < 0 {
		rem = 0
	}

	for i, col := range t.columns {
		if !visible[i] {
			widths[i] = 0
			continue
		}
		if col.Weight > 0 && totalWeight > 0 {
			w := int(float64(rem) * col.Weight / totalWeight)
			if w < col.Width {
				w = col.Width
			}
			widths[i] = w
		} else {
			widths[i] = col.Width
		}
	}

	return widths
}

// Render renders the table using the fixed column widths.
func (t *Table) Render() string {
	return t.RenderResponsive(0)
}

// RenderResponsive renders the table fitted to the given terminal
// width. A width of 0 falls back to the fixed column widths.
func (t *Table) RenderResponsive(availableWidth int) string {
	var widths []int
	if availableWidth > 0 {
		widths = t.computeWidths(availableWidth)
	} else {
		widths = make([]int, len(t.columns))
		for i, col := range t.columns {
			widths[i] = col.Width
		}
	}

	var b strings.Builder

	// Separator width across visible columns
	totalWidth := 0
	for _, w := range widths {
		if w > 0 {
			totalWidth += w + 3 // +3 for padding and separator
		}
	}

	// Render header
	b.WriteString(t.renderRow(t.getHeaders(), widths, t.headerStyle))
	b.WriteString("\n")

	// Render separator
	b.WriteString(t.borderStyle.Render(strings.Repeat("-", totalWidth)))
	b.WriteString("\n")

	// Render visible rows
	endIdx := t.offset + t.visibleRows
	if endIdx > len(t.rows) {
		endIdx = len(t.rows)
	}

	for i := t.offset; i < endIdx; i++ {
		isSelected := i == t.selected && t.focused
		isAlt := (i-t.offset)%2 == 1

		var style lipgloss.Style
		if isSelected {
			style = t.selectedStyle
		} else if isAlt {
			style = t.rowAltStyle
		} else {
			style = t.rowStyle
		}

		b.WriteString(t.renderRow(t.rows[i], widths, style))
		b.WriteString("\n")
	}

	// Scroll indicator when rows extend past the viewport
	if len(t.rows) > t.visibleRows {
		b.WriteString(t.borderStyle.Render(strings.Repeat("-", totalWidth)))
		b.WriteString("\n")
		b.WriteString(t.borderStyle.Render(fmt.Sprintf("%d-%d of %d", t.offset+1, endIdx, len(t.rows))))
	}

	return b.String()
}

func (t *Table) getHeaders() []string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Title
	}
	return headers
}

func (t *Table) renderRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string

	for i, col := range t.columns {
		width := widths[i]
		if width <= 0 {
			continue
		}

		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}

		// Truncate if too long
		if len(cell) > width {
			cell = cell[:width-1] + "…"
		}

		// Pad to width
		switch col.Align {
		case lipgloss.Right:
			cell = fmt.Sprintf("%*s", width, cell)
		case lipgloss.Center:
			padding := width - len(cell)
			leftPad := padding / 2
			rightPad := padding - leftPad
			cell = strings.Repeat(" ", leftPad) + cell + strings.Repeat(" ", rightPad)
		default: // Left
			cell = fmt.Sprintf("%-*s", width, cell)
		}

		parts = append(parts, style.Render(cell))
	}

	return " " + strings.Join(parts, " | ") + " "
}

// Empty returns true if the table has no rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}
