// Package tui provides the terminal user interface for stocktake.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/stocktake/stocktake/internal/config"
	"github.com/stocktake/stocktake/internal/models"
)

// Theme contains all style definitions for the TUI.
type Theme struct {
	// Raw colors for styles built at render time
	PrimaryColor    lipgloss.Color
	SecondaryColor  lipgloss.Color
	AccentColor     lipgloss.Color
	BackgroundColor lipgloss.Color
	ForegroundColor lipgloss.Color
	ErrorColor      lipgloss.Color
	WarningColor    lipgloss.Color
	SuccessColor    lipgloss.Color
	MutedColor      lipgloss.Color

	Base lipgloss.Style
	Bold lipgloss.Style

	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
	Muted     lipgloss.Style

	Header    lipgloss.Style
	Footer    lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Box       lipgloss.Style
	Border    lipgloss.Style
	Selected  lipgloss.Style
	Disabled  lipgloss.Style
	Alert     lipgloss.Style
	AlertWarn lipgloss.Style
	AlertCrit lipgloss.Style

	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	TableRowAlt lipgloss.Style

	StatusNeeds lipgloss.Style
	StatusLow   lipgloss.Style
	StatusGood  lipgloss.Style

	FormLabel lipgloss.Style
	FormInput lipgloss.Style
	FormError lipgloss.Style

	StatusDivider lipgloss.Style
}

// palette holds the raw colors a scheme is built from.
type palette struct {
	primary    lipgloss.Color
	secondary  lipgloss.Color
	accent     lipgloss.Color
	background lipgloss.Color
	foreground lipgloss.Color
	muted      lipgloss.Color
	err        lipgloss.Color
	warn       lipgloss.Color
	ok         lipgloss.Color
}

func paletteFor(scheme config.ColorScheme) palette {
	switch scheme {
	case config.ColorSchemeAmber:
		return palette{
			primary:    "#FFAA00",
			secondary:  "#AA7700",
			accent:     "#FFCC66",
			background: "#000000",
			foreground: "#FFAA00",
			muted:      "#664400",
			err:        "#FF4444",
			warn:       "#FFFF00",
			ok:         "#FFAA00",
		}
	case config.ColorSchemeWhite:
		return palette{
			primary:    "#FFFFFF",
			secondary:  "#AAAAAA",
			accent:     "#FFFFFF",
			background: "#000000",
			foreground: "#FFFFFF",
			muted:      "#666666",
			err:        "#FF4444",
			warn:       "#FFAA00",
			ok:         "#00FF00",
		}
	default:
		// Classic green phosphor
		return palette{
			primary:    "#00FF00",
			secondary:  "#00AA00",
			accent:     "#66FF66",
			background: "#000000",
			foreground: "#00FF00",
			muted:      "#006600",
			err:        "#FF4444",
			warn:       "#FFAA00",
			ok:         "#00FF00",
		}
	}
}

// NewTheme builds the style set for the configured color scheme.
func NewTheme(scheme config.ColorScheme) *Theme {
	p := paletteFor(scheme)
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	t := &Theme{
		PrimaryColor:    p.primary,
		SecondaryColor:  p.secondary,
		AccentColor:     p.accent,
		BackgroundColor: p.background,
		ForegroundColor: p.foreground,
		MutedColor:      p.muted,
		ErrorColor:      p.err,
		WarningColor:    p.warn,
		SuccessColor:    p.ok,

		Base: fg(p.foreground),

		Primary:   fg(p.primary),
		Secondary: fg(p.secondary),
		Accent:    fg(p.accent),
		Error:     fg(p.err),
		Warning:   fg(p.warn),
		Success:   fg(p.ok),
		Muted:     fg(p.muted),

		Header:   fg(p.primary).Bold(true).Padding(0, 1),
		Footer:   fg(p.secondary).Padding(0, 1),
		Title:    fg(p.accent).Bold(true).Padding(0, 1),
		Subtitle: fg(p.primary).Padding(0, 1),
		Label:    fg(p.secondary),
		Value:    fg(p.primary),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.secondary).
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.secondary),

		Selected: lipgloss.NewStyle().
			Foreground(p.background).
			Background(p.primary).
			Bold(true),
		Disabled: fg(p.muted),

		Alert:     fg(p.primary).Bold(true),
		AlertWarn: fg(p.warn).Bold(true),
		AlertCrit: fg(p.err).Bold(true).Blink(true),

		TableHeader: fg(p.accent).Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.secondary).
			BorderBottom(true).
			Padding(0, 1),
		TableRow:    fg(p.primary).Padding(0, 1),
		TableRowAlt: fg(p.secondary).Padding(0, 1),

		StatusNeeds: fg(p.err).Bold(true),
		StatusLow:   fg(p.warn),
		StatusGood:  fg(p.ok),

		FormLabel: fg(p.secondary).Width(20),
		FormInput: fg(p.primary).
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.secondary).
			Padding(0, 1),
		FormError: fg(p.err),

		StatusDivider: fg(p.muted).SetString(" │ "),
	}

	t.Bold = t.Base.Bold(true)
	return t
}

// StatusStyle returns the style for rendering a stock status.
func (t *Theme) StatusStyle(status models.StockStatus) lipgloss.Style {
	switch status {
	case models.StockStatusNeeds:
		return t.StatusNeeds
	case models.StockStatusLow:
		return t.StatusLow
	default:
		return t.StatusGood
	}
}

// Box characters for drawing
const (
	BoxHorizontal       = "─"
	BoxVertical         = "│"
	BoxDoubleHorizontal = "═"
)

// DrawBox draws a box around the given content.
func (t *Theme) DrawBox(content string, width int) string {
	return t.Box.Width(width).Render(content)
}

// DrawHorizontalLine draws a single horizontal rule.
func (t *Theme) DrawHorizontalLine(width int) string {
	return t.Secondary.Render(strings.Repeat(BoxHorizontal, width))
}

// DrawDoubleLine draws a double horizontal rule.
func (t *Theme) DrawDoubleLine(width int) string {
	return t.Primary.Render(strings.Repeat(BoxDoubleHorizontal, width))
}
