package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Key is a named binding over one or more raw key strings.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

func bind(help string, keys ...string) Key {
	return Key{Keys: keys, Help: help, Enabled: true}
}

// Matches reports whether the message triggers this binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}
	pressed := msg.String()
	for _, want := range k.Keys {
		if pressed == want {
			return true
		}
	}
	return false
}

// MatchesAny reports whether the message triggers any of the bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// KeyMap holds every binding the application reacts to.
type KeyMap struct {
	Up       Key
	Down     Key
	Left     Key
	Right    Key
	PageUp   Key
	PageDown Key
	Home     Key
	End      Key

	Select Key
	Back   Key
	Quit   Key
	Search Key

	// Function keys switch modules directly from anywhere.
	ShowHelp      Key
	ShowDashboard Key
	ShowStock     Key
	ShowOrder     Key
	Exit          Key

	Tab      Key
	ShiftTab Key
	Enter    Key
	Escape   Key
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       bind("up", "up", "k"),
		Down:     bind("down", "down", "j"),
		Left:     bind("left", "left", "h"),
		Right:    bind("right", "right", "l"),
		PageUp:   bind("page up", "pgup", "ctrl+u"),
		PageDown: bind("page down", "pgdown", "ctrl+d"),
		Home:     bind("home", "home", "g"),
		End:      bind("end", "end", "G"),

		Select: bind("select", "enter", " "),
		Back:   bind("back", "esc", "backspace"),
		Quit:   bind("quit", "q", "ctrl+c"),
		Search: bind("search", "/"),

		ShowHelp:      bind("Help", "f1"),
		ShowDashboard: bind("Dashboard", "f2"),
		ShowStock:     bind("Stock", "f3"),
		ShowOrder:     bind("Order", "f4"),
		Exit:          bind("Quit", "f10"),

		Tab:      bind("next field", "tab"),
		ShiftTab: bind("prev field", "shift+tab"),
		Enter:    bind("confirm", "enter"),
		Escape:   bind("cancel", "esc"),
	}
}

// IsQuit reports whether the message asks to leave the application.
func (km KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return km.Quit.Matches(msg) || km.Exit.Matches(msg)
}

// IsNavigation reports whether the message moves a selection.
func (km KeyMap) IsNavigation(msg tea.KeyMsg) bool {
	return MatchesAny(msg, km.Up, km.Down, km.Left, km.Right,
		km.PageUp, km.PageDown, km.Home, km.End)
}

// ModuleFor maps a function key to its target module. The second
// return is false when the message is not a module switch.
func (km KeyMap) ModuleFor(msg tea.KeyMsg) (Module, bool) {
	switch {
	case km.ShowHelp.Matches(msg):
		return ModuleHelp, true
	case km.ShowDashboard.Matches(msg):
		return ModuleDashboard, true
	case km.ShowStock.Matches(msg):
		return ModuleStock, true
	case km.ShowOrder.Matches(msg):
		return ModuleOrder, true
	default:
		return "", false
	}
}

// StatusBarHelp lists the function key bindings for the footer.
func (km KeyMap) StatusBarHelp() string {
	var parts []string
	for _, k := range []Key{km.ShowHelp, km.ShowDashboard, km.ShowStock, km.ShowOrder, km.Exit} {
		parts = append(parts, fmt.Sprintf("[%s]%s", strings.ToUpper(k.Keys[0]), k.Help))
	}
	return strings.Join(parts, " ")
}
