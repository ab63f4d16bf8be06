package stock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/stocktake/stocktake/internal/models"
	"github.com/stocktake/stocktake/internal/services/stock"
	"github.com/stocktake/stocktake/internal/tui/components"
)

// FormMode indicates the form mode.
type FormMode int

const (
	FormModeAdd FormMode = iota
	FormModeEdit
)

// ItemForm is a form for adding and editing checklist items.
type ItemForm struct {
	mode FormMode
	item *models.Item

	// Form fields
	name      *components.Input
	category  *components.Select
	quantity  *components.Input
	threshold *components.Input

	// State
	focusIndex int
	fields     []components.FormField
	submitted  bool
	cancelled  bool
	err        string
}

// NewItemForm creates a new item form. The select offers the
// configured categories; existing items in other categories keep
// theirs through SetItem.
func NewItemForm(mode FormMode, categories []string) *ItemForm {
	if len(categories) == 0 {
		categories = []string{"Others"}
	}

	f := &ItemForm{
		mode: mode,

		name:      components.NewInput("Name").SetRequired(true).SetWidth(25),
		category:  components.NewSelect("Category", categories),
		quantity:  components.NewInput("Quantity").SetWidth(6).SetMaxLength(5).SetPlaceholder("0"),
		threshold: components.NewInput("Threshold").SetWidth(6).SetMaxLength(5).SetPlaceholder("default"),
	}

	f.fields = []components.FormField{
		f.name,
		f.category,
		f.quantity,
		f.threshold,
	}

	f.fields[0].Focus(true)

	return f
}

// SetItem populates the form with existing item data.
func (f *ItemForm) SetItem(item *models.Item, categories []string) {
	f.item = item
	f.name.SetValue(item.Name)
	f.quantity.SetValue(fmt.Sprintf("%d", item.Quantity))
	f.threshold.SetValue(fmt.Sprintf("%d", item.Threshold))

	for i, cat := range categories {
		if cat == item.Category {
			f.category.SetSelected(i)
			break
		}
	}
}

// HandleKey handles key input.
func (f *ItemForm) HandleKey(key string) {
	switch key {
	case "tab", "down":
		f.nextField()
	case "shift+tab", "up":
		f.prevField()
	case "ctrl+s":
		f.submit()
	case "esc":
		f.cancelled = true
	case "enter":
		// Move to next field, or submit on last field
		if f.focusIndex == len(f.fields)-1 {
			f.submit()
		} else {
			f.nextField()
		}
	default:
		f.fields[f.focusIndex].HandleKey(key)
	}
}

func (f *ItemForm) nextField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex++
	if f.focusIndex >= len(f.fields) {
		f.focusIndex = 0
	}
	f.fields[f.focusIndex].Focus(true)
}

func (f *ItemForm) prevField() {
	f.fields[f.focusIndex].Focus(false)
	f.focusIndex--
	if f.focusIndex < 0 {
		f.focusIndex = len(f.fields) - 1
	}
	f.fields[f.focusIndex].Focus(true)
}

func (f *ItemForm) submit() {
	f.err = ""

	if !f.name.Validate() {
		f.err = "Please fill in the item name"
		return
	}

	f.submitted = true
}

// Mode returns whether the form is adding or editing an item.
func (f *ItemForm) Mode() FormMode {
	return f.mode
}

// IsSubmitted returns true if the form was submitted.
func (f *ItemForm) IsSubmitted() bool {
	return f.submitted
}

// IsCancelled returns true if the form was cancelled.
func (f *ItemForm) IsCancelled() bool {
	return f.cancelled
}

// parseCount turns free-text numeric input into a count, treating
// anything unparseable as zero and clamping negatives to zero.
func parseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// CreateInput returns the form data for creating a new item. A blank
// threshold is left nil so the category default applies.
func (f *ItemForm) CreateInput() stock.CreateItemInput {
	input := stock.CreateItemInput{
		Name:     f.name.Value(),
		Category: f.category.Value(),
		Quantity: parseCount(f.quantity.Value()),
	}

	if strings.TrimSpace(f.threshold.Value()) != "" {
		threshold := parseCount(f.threshold.Value())
		input.Threshold = &threshold
	}

	return input
}

// UpdateInput returns the form data for updating the existing item.
// A cleared threshold field keeps the stored value.
func (f *ItemForm) UpdateInput() stock.UpdateItemInput {
	input := stock.UpdateItemInput{
		Name:     f.name.Value(),
		Category: f.category.Value(),
		Quantity: parseCount(f.quantity.Value()),
	}
	if f.item != nil {
		input.ID = f.item.ID
		input.Threshold = f.item.Threshold
	}
	if strings.TrimSpace(f.threshold.Value()) != "" {
		input.Threshold = parseCount(f.threshold.Value())
	}
	return input
}

// Render renders the form with default width.
func (f *ItemForm) Render() string {
	return f.RenderResponsive(0)
}

// RenderResponsive renders the form adapted to the given terminal width.
func (f *ItemForm) RenderResponsive(width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66")).Bold(true)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))

	// Adapt label width to terminal
	labelWidth := 12
	if width > 0 && width < 60 {
		labelWidth = 10
	}

	var b strings.Builder

	// Title
	title := "ADD ITEM"
	if f.mode == FormModeEdit {
		title = "EDIT ITEM"
	}
	b.WriteString(titleStyle.Render("═══ " + title + " ═══"))
	b.WriteString("\n\n")

	b.WriteString(f.name.RenderWithLabelWidth(labelWidth))
	b.WriteString("\n")
	b.WriteString(f.category.RenderWithLabelWidth(labelWidth))
	b.WriteString("\n\n")

	b.WriteString(f.quantity.RenderWithLabelWidth(labelWidth))
	b.WriteString("\n")
	b.WriteString(f.threshold.RenderWithLabelWidth(labelWidth))
	b.WriteString("\n")

	// Error message
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(errStyle.Render("Error: " + f.err))
	}

	// Help - adapt to width
	b.WriteString("\n\n")
	if width > 0 && width < 60 {
		b.WriteString(helpStyle.Render("Tab:Next  Ctrl+S:Save  Esc:Cancel"))
	} else {
		b.WriteString(helpStyle.Render("Tab/Down:Next  Shift+Tab/Up:Prev  Left/Right:Category  Ctrl+S:Save  Esc:Cancel"))
	}

	return b.String()
}
