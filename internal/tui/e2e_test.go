package tui

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stocktake/stocktake/internal/config"
	"github.com/stocktake/stocktake/internal/database"
)

// newE2EApp creates an App for end-to-end testing via teatest.
// Unlike newTestApp, this does NOT pre-configure width/height/ready
// since teatest sends WindowSizeMsg via WithInitialTermSize.
func newE2EApp(t *testing.T) *App {
	t.Helper()

	db, err := database.NewInMemory()
	if err != nil {
		t.Fatalf("creating test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrator, err := database.NewMigrator(db)
	if err != nil {
		t.Fatalf("creating migrator: %v", err)
	}
	if _, err := migrator.MigrateUp(context.Background()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return New(db, config.Default())
}

// waitFor is a convenience wrapper around teatest.WaitFor with a standard timeout.
func waitFor(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte(text))
	}, teatest.WithDuration(5*time.Second))
}

// --- End-to-end tests ---
// These launch the real Bubble Tea program in a headless virtual terminal,
// send actual keystrokes, and assert on the rendered screen output.

func TestE2E_DashboardOnStartup(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "STOCK STATUS OVERVIEW")
}

func TestE2E_NavigateToStock(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "STOCK STATUS OVERVIEW")

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "STOCK CHECKLIST")
}

func TestE2E_NavigateToOrder(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyF4})
	waitFor(t, tm, "REORDER PLANNER")
}

func TestE2E_HelpScreenAndBack(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "STOCK STATUS OVERVIEW")

	// F1 → Help
	tm.Send(tea.KeyMsg{Type: tea.KeyF1})
	waitFor(t, tm, "HELP")

	// Esc → Back to dashboard
	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	waitFor(t, tm, "STOCK STATUS OVERVIEW")
}

func TestE2E_QuitFlow(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))

	waitFor(t, tm, "STOCK STATUS OVERVIEW")

	// Press q → confirm dialog
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	waitFor(t, tm, "CONFIRM EXIT")

	// Press y → quit
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	// Program should terminate; verify final model state
	m := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	app, ok := m.(*App)
	if !ok {
		t.Fatal("expected *App final model")
	}
	if !app.quitting {
		t.Error("expected app to be quitting")
	}
}

func TestE2E_QuitCancel(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "STOCK STATUS OVERVIEW")

	// Press q → confirm dialog
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	waitFor(t, tm, "CONFIRM EXIT")

	// Press n → cancel
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})

	// Verify app is still responsive by navigating to another module
	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "STOCK CHECKLIST")
}

func TestE2E_StockEmptyList(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})

	// Both the title and empty state appear in the same frame
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("STOCK CHECKLIST")) &&
			bytes.Contains(bts, []byte("No items found"))
	}, teatest.WithDuration(5*time.Second))
}

func TestE2E_OrderEmptyList(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyF4})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("REORDER PLANNER")) &&
			bytes.Contains(bts, []byte("Nothing at or below threshold"))
	}, teatest.WithDuration(5*time.Second))
}

func TestE2E_SearchFlow(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	// Navigate to the checklist
	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "STOCK CHECKLIST")

	// Enter search mode with '/'
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	waitFor(t, tm, "SEARCH")

	// Type search term
	tm.Type("Buns")
	waitFor(t, tm, "Buns")

	// Submit search with Enter
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	// Verify app is still responsive
	tm.Send(tea.KeyMsg{Type: tea.KeyF2})
	waitFor(t, tm, "STOCK STATUS OVERVIEW")
}

func TestE2E_SearchCancel(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "STOCK CHECKLIST")

	// Enter search mode
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	waitFor(t, tm, "SEARCH")

	// Type then cancel
	tm.Type("test")
	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})

	// Verify app is still responsive after cancel
	tm.Send(tea.KeyMsg{Type: tea.KeyF4})
	waitFor(t, tm, "REORDER PLANNER")
}

func TestE2E_FullNavigationRoundTrip(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	// Dashboard
	waitFor(t, tm, "STOCK STATUS OVERVIEW")

	// Checklist
	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "STOCK CHECKLIST")

	// Planner
	tm.Send(tea.KeyMsg{Type: tea.KeyF4})
	waitFor(t, tm, "REORDER PLANNER")

	// Help
	tm.Send(tea.KeyMsg{Type: tea.KeyF1})
	waitFor(t, tm, "HELP")

	// Esc → Back to planner
	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})
	waitFor(t, tm, "REORDER PLANNER")

	// F2 → Back to dashboard
	tm.Send(tea.KeyMsg{Type: tea.KeyF2})
	waitFor(t, tm, "STOCK STATUS OVERVIEW")
}

func TestE2E_NarrowTerminal(t *testing.T) {
	// Test responsive layout with a narrow terminal (like Pi Zero)
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(50, 24))
	t.Cleanup(func() { tm.Quit() })

	// Should still render the dashboard
	waitFor(t, tm, "STOCK STATUS OVERVIEW")

	// Navigate to the checklist - compact layout
	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "STOCK CHECKLIST")
}

func TestE2E_WideTerminal(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(200, 50))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "STOCK STATUS OVERVIEW")

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "STOCK CHECKLIST")
}

func TestE2E_AddItemFormOpen(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	tm.Send(tea.KeyMsg{Type: tea.KeyF3})
	waitFor(t, tm, "STOCK CHECKLIST")

	// Press 'a' to open the add item form
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	waitFor(t, tm, "ADD ITEM")

	// Cancel form with Esc
	tm.Send(tea.KeyMsg{Type: tea.KeyEscape})

	// Should return to the checklist - verify it's still responsive
	tm.Send(tea.KeyMsg{Type: tea.KeyF2})
	waitFor(t, tm, "STOCK STATUS OVERVIEW")
}

func TestE2E_HeaderShowsShopInfo(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	// Header and dashboard panels should render in the same frame
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Food Truck")) &&
			bytes.Contains(bts, []byte("TOTALS")) &&
			bytes.Contains(bts, []byte("HEALTH"))
	}, teatest.WithDuration(5*time.Second))
}

func TestE2E_StatusBarShowsKeyBindings(t *testing.T) {
	tm := teatest.NewTestModel(t, newE2EApp(t),
		teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	// Footer key bindings should be in the rendered output
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("[F1]Help")) &&
			bytes.Contains(bts, []byte("[F3]Stock")) &&
			bytes.Contains(bts, []byte("[F4]Order"))
	}, teatest.WithDuration(5*time.Second))
}
