package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ScreenClass buckets the terminal width so views can pick between a
// compact and a full layout.
type ScreenClass int

const (
	ScreenNarrow ScreenClass = iota
	ScreenMedium
	ScreenWide
)

const (
	narrowLimit = 60
	mediumLimit = 100
)

// Screen classifies the given terminal width.
func Screen(width int) ScreenClass {
	if width < narrowLimit {
		return ScreenNarrow
	}
	if width < mediumLimit {
		return ScreenMedium
	}
	return ScreenWide
}

// Panel draws content inside a rounded border with the title inlined
// into the top rule.
func (t *Theme) Panel(title, content string, width int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.SecondaryColor).
		Width(width - 2).
		Padding(0, 1).
		Render(content)

	if title == "" {
		return box
	}

	lines := strings.SplitN(box, "\n", 2)
	if len(lines) < 2 {
		return box
	}

	label := t.Accent.Bold(true).Render(" " + title + " ")
	top := []rune(lines[0])
	lw := lipgloss.Width(label)
	if lw+4 >= len(top) {
		return box
	}
	lines[0] = string(top[:2]) + label + string(top[2+lw:])
	return lines[0] + "\n" + lines[1]
}

// SideBySide joins two blocks horizontally when they fit in
// totalWidth, stacking them otherwise.
func SideBySide(left, right string, totalWidth, gap int) string {
	needed := lipgloss.Width(left) + lipgloss.Width(right) + gap
	if needed > totalWidth {
		return left + "\n\n" + right
	}
	spacer := strings.Repeat(" ", max(gap, totalWidth-needed+gap))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, right)
}

// ProgressBar renders a bracketed bar colored by fill ratio.
func (t *Theme) ProgressBar(value, total float64, width int) string {
	if total <= 0 {
		total = 1
	}
	ratio := min(max(value/total, 0), 1)

	cells := max(width-2, 4)
	filled := int(ratio * float64(cells))
	bar := "[" + strings.Repeat("█", filled) + strings.Repeat("░", cells-filled) + "]"

	style := t.Error
	if ratio > 0.6 {
		style = t.Success
	} else if ratio > 0.3 {
		style = t.Warning
	}
	return style.Render(bar)
}

// Truncate cuts a string down to maxWidth cells, ending with an
// ellipsis when anything was removed.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	if maxWidth <= 3 {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-1]) + "…"
}

// PadRight space-pads s on the right up to width cells.
func PadRight(s string, width int) string {
	return pad(s, width, false)
}

// PadLeft space-pads s on the left up to width cells.
func PadLeft(s string, width int) string {
	return pad(s, width, true)
}

func pad(s string, width int, left bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	fill := strings.Repeat(" ", gap)
	if left {
		return fill + s
	}
	return s + fill
}

// ContentWidth clamps the terminal width into the usable range.
func ContentWidth(termWidth, minWidth, maxWidth int) int {
	w := max(termWidth, minWidth)
	if maxWidth > 0 {
		w = min(w, maxWidth)
	}
	return w
}

// ContentHeight returns the rows left for content once the chrome
// lines (header, alert bar, footer) are subtracted.
func ContentHeight(termHeight, chromeLines int) int {
	return max(termHeight-chromeLines, 5)
}
