package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultLabelWidth is the label column width used by Render.
const DefaultLabelWidth = 16

// Shared field styles. Green phosphor to match the application theme.
var (
	fieldLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	fieldValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	fieldFocusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#66FF66"))
	fieldErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444"))
	fieldMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#006600"))
	fieldSelectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
)

// Input is a single-line text field with cursor editing.
type Input struct {
	label       string
	value       string
	placeholder string
	width       int
	focused     bool
	cursor      int
	maxLength   int
	required    bool
	err         string
}

// NewInput creates a new input field.
func NewInput(label string) *Input {
	return &Input{
		label:     label,
		width:     20,
		maxLength: 100,
	}
}

// SetValue sets the input value and moves the cursor to the end.
func (i *Input) SetValue(v string) *Input {
	i.value = v
	i.cursor = len(v)
	return i
}

// SetPlaceholder sets the placeholder text.
func (i *Input) SetPlaceholder(p string) *Input {
	i.placeholder = p
	return i
}

// SetWidth sets the input width.
func (i *Input) SetWidth(w int) *Input {
	i.width = w
	return i
}

// SetMaxLength sets the maximum input length.
func (i *Input) SetMaxLength(m int) *Input {
	i.maxLength = m
	return i
}

// SetRequired marks the field as required.
func (i *Input) SetRequired(r bool) *Input {
	i.required = r
	return i
}

// SetError sets an error message.
func (i *Input) SetError(e string) *Input {
	i.err = e
	return i
}

// Focus sets the focus state.
func (i *Input) Focus(focused bool) {
	i.focused = focused
	if focused && i.cursor > len(i.value) {
		i.cursor = len(i.value)
	}
}

// IsFocused returns the focus state.
func (i *Input) IsFocused() bool {
	return i.focused
}

// Value returns the current value.
func (i *Input) Value() string {
	return i.value
}

// HandleKey applies one key press to the field. Unfocused fields
// ignore input.
func (i *Input) HandleKey(key string) {
	if !i.focused {
		return
	}

	switch key {
	case "backspace":
		if i.cursor > 0 {
			i.value = i.value[:i.cursor-1] + i.value[i.cursor:]
			i.cursor--
		}
	case "delete":
		if i.cursor < len(i.value) {
			i.value = i.value[:i.cursor] + i.value[i.cursor+1:]
		}
	case "left":
		if i.cursor > 0 {
			i.cursor--
		}
	case "right":
		if i.cursor < len(i.value) {
			i.cursor++
		}
	case "home", "ctrl+a":
		i.cursor = 0
	case "end", "ctrl+e":
		i.cursor = len(i.value)
	default:
		i.insert(key)
	}
}

func (i *Input) insert(key string) {
	// Anything longer than one byte is a control sequence name
	if len(key) != 1 || len(i.value) >= i.maxLength {
		return
	}
	i.value = i.value[:i.cursor] + key + i.value[i.cursor:]
	i.cursor++
}

// Validate checks the required constraint and records the error state.
func (i *Input) Validate() bool {
	if i.required && strings.TrimSpace(i.value) == "" {
		i.err = "Required"
		return false
	}
	i.err = ""
	return true
}

// Render renders the input field with the default label width.
func (i *Input) Render() string {
	return i.RenderWithLabelWidth(DefaultLabelWidth)
}

// RenderWithLabelWidth renders the input field. A labelWidth of 0
// omits the label entirely, which lets composite fields lay out
// several inputs behind a single shared label.
func (i *Input) RenderWithLabelWidth(labelWidth int) string {
	display := i.renderValue()

	// Pad out to the field width
	shown := len(i.value)
	if i.focused {
		shown++ // cursor
	}
	if shown < i.width {
		display += strings.Repeat(" ", i.width-shown)
	}

	var result string
	if labelWidth > 0 {
		label := i.label
		if i.required {
			label += "*"
		}
		result = fieldLabelStyle.Width(labelWidth).Render(label+":") + " " + display
	} else {
		result = display
	}

	if i.err != "" {
		result += " " + fieldErrorStyle.Render(i.err)
	}
	return result
}

func (i *Input) renderValue() string {
	if i.focused {
		return fieldFocusStyle.Render(i.value[:i.cursor] + "_" + i.value[i.cursor:])
	}
	if i.value == "" && i.placeholder != "" {
		return fieldMutedStyle.Render(i.placeholder)
	}
	return fieldValueStyle.Render(i.value)
}

// Select cycles through a fixed set of options with the arrow keys.
type Select struct {
	label    string
	options  []string
	selected int
	focused  bool
}

// NewSelect creates a new select input.
func NewSelect(label string, options []string) *Select {
	return &Select{
		label:   label,
		options: options,
	}
}

// SetSelected sets the selected index.
func (s *Select) SetSelected(idx int) *Select {
	if idx >= 0 && idx < len(s.options) {
		s.selected = idx
	}
	return s
}

// Focus sets the focus state.
func (s *Select) Focus(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state.
func (s *Select) IsFocused() bool {
	return s.focused
}

// Value returns the selected option.
func (s *Select) Value() string {
	if s.selected >= 0 && s.selected < len(s.options) {
		return s.options[s.selected]
	}
	return ""
}

// SelectedIndex returns the selected index.
func (s *Select) SelectedIndex() int {
	return s.selected
}

// HandleKey moves the selection left or right.
func (s *Select) HandleKey(key string) {
	if !s.focused {
		return
	}

	switch key {
	case "left", "h":
		if s.selected > 0 {
			s.selected--
		}
	case "right", "l":
		if s.selected < len(s.options)-1 {
			s.selected++
		}
	}
}

// Render renders the select with the default label width.
func (s *Select) Render() string {
	return s.RenderWithLabelWidth(DefaultLabelWidth)
}

// RenderWithLabelWidth renders the select. A labelWidth of 0 omits the label.
func (s *Select) RenderWithLabelWidth(labelWidth int) string {
	var b strings.Builder
	if labelWidth > 0 {
		b.WriteString(fieldLabelStyle.Width(labelWidth).Render(s.label + ":"))
		b.WriteString(" ")
	}

	for i, opt := range s.options {
		if i > 0 {
			b.WriteString(" ")
		}

		switch {
		case i == s.selected && s.focused:
			b.WriteString(fieldSelectStyle.Render("[" + opt + "]"))
		case i == s.selected:
			b.WriteString(fieldSelectStyle.Render("(" + opt + ")"))
		default:
			b.WriteString(fieldLabelStyle.Render(" " + opt + " "))
		}
	}

	return b.String()
}

// FormField is the interface shared by focusable form components.
type FormField interface {
	Focus(bool)
	IsFocused() bool
	HandleKey(string)
	Render() string
}

var (
	_ FormField = (*Input)(nil)
	_ FormField = (*Select)(nil)
)
