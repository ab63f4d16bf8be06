package order

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stocktake/stocktake/internal/config"
	"github.com/stocktake/stocktake/internal/models"
	"github.com/stocktake/stocktake/internal/services/reorder"
)

func testPlanner() *reorder.Planner {
	return reorder.NewPlanner(&config.ReorderConfig{
		OrderHeader:  "Shopping order:",
		ShareBaseURL: "https://wa.me/?text=",
	})
}

func testCandidate(id, name, category string, quantity, suggested int) *models.OrderCandidate {
	now := time.Now().UTC()
	return &models.OrderCandidate{
		Item: &models.Item{
			ID:        id,
			Name:      name,
			Category:  category,
			Quantity:  quantity,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Suggested: suggested,
	}
}

func newLoadedPlannerView(candidates ...*models.OrderCandidate) *PlannerView {
	view := NewPlannerView(nil, testPlanner())
	view.candidates = candidates
	for _, candidate := range candidates {
		view.requested[candidate.Item.ID] = candidate.Suggested
	}
	view.refreshRows()
	return view
}

func TestPlannerView_New(t *testing.T) {
	view := NewPlannerView(nil, testPlanner())
	if view == nil {
		t.Fatal("expected non-nil view")
	}
	if view.table == nil {
		t.Fatal("expected non-nil table")
	}
}

func TestPlannerView_EmptyRender(t *testing.T) {
	view := NewPlannerView(nil, testPlanner())
	output := view.Render(120, 40)

	if !strings.Contains(output, "REORDER PLANNER") {
		t.Error("expected title in output")
	}
	if !strings.Contains(output, "Nothing at or below threshold") {
		t.Error("expected empty state message")
	}
}

func TestPlannerView_RenderCandidates(t *testing.T) {
	view := newLoadedPlannerView(
		testCandidate("1", "Buns", "Buns & Chips", 2, 18),
		testCandidate("2", "Coke", "Drinks", 0, 48),
	)

	output := view.Render(120, 40)

	for _, want := range []string{"Buns", "Coke", "18", "48"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestPlannerView_AdjustSelected(t *testing.T) {
	view := newLoadedPlannerView(testCandidate("1", "Buns", "Buns & Chips", 2, 18))

	view.AdjustSelected(2)
	if view.requested["1"] != 20 {
		t.Errorf("expected requested 20, got %d", view.requested["1"])
	}

	view.AdjustSelected(-25)
	if view.requested["1"] != 0 {
		t.Errorf("expected requested floored at 0, got %d", view.requested["1"])
	}
}

func TestPlannerView_ZeroAndReset(t *testing.T) {
	view := newLoadedPlannerView(testCandidate("1", "Buns", "Buns & Chips", 2, 18))

	view.ZeroSelected()
	if view.requested["1"] != 0 {
		t.Errorf("expected requested 0 after drop, got %d", view.requested["1"])
	}

	view.ResetSuggested()
	if view.requested["1"] != 18 {
		t.Errorf("expected requested restored to 18, got %d", view.requested["1"])
	}
}

func TestPlannerView_Notes(t *testing.T) {
	view := newLoadedPlannerView(testCandidate("1", "Coke", "Drinks", 0, 48))

	view.SetNoteForSelected("cans not bottles")
	if got := view.NoteForSelected(); got != "cans not bottles" {
		t.Errorf("expected note stored, got %q", got)
	}

	output := view.Render(120, 40)
	if !strings.Contains(output, "cans not bottles") {
		t.Error("expected note in rendered row")
	}

	// Blank note removes the entry
	view.SetNoteForSelected("  ")
	if got := view.NoteForSelected(); got != "" {
		t.Errorf("expected note cleared, got %q", got)
	}
}

func TestPlannerView_Compose(t *testing.T) {
	view := newLoadedPlannerView(
		testCandidate("1", "Buns", "Buns & Chips", 2, 18),
		testCandidate("2", "Coke", "Drinks", 0, 48),
	)
	view.SetNoteForSelected("sesame")

	if err := view.Compose(); err != nil {
		t.Fatalf("composing order: %v", err)
	}

	preview := view.Preview()
	if preview == nil {
		t.Fatal("expected preview after compose")
	}

	text := preview.Text()
	for _, want := range []string{"Shopping order:", "Buns x 18 (sesame)", "Coke x 48"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in message, got:\n%s", want, text)
		}
	}
}

func TestPlannerView_Compose_EmptySelection(t *testing.T) {
	view := newLoadedPlannerView(testCandidate("1", "Buns", "Buns & Chips", 2, 18))
	view.ZeroSelected()

	err := view.Compose()
	if !errors.Is(err, reorder.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if view.Preview() != nil {
		t.Error("expected no preview after failed compose")
	}
}

func TestPlannerView_RenderPreview(t *testing.T) {
	view := newLoadedPlannerView(testCandidate("1", "Buns", "Buns & Chips", 2, 18))

	if err := view.Compose(); err != nil {
		t.Fatalf("composing order: %v", err)
	}

	output := view.RenderPreview(120)
	for _, want := range []string{"ORDER PREVIEW", "Buns x 18", "Share link:", "https://wa.me/?text="} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in preview", want)
		}
	}
}

func TestPlannerView_RenderPreview_NothingComposed(t *testing.T) {
	view := NewPlannerView(nil, testPlanner())
	output := view.RenderPreview(120)

	if !strings.Contains(output, "No order composed") {
		t.Error("expected placeholder when nothing composed")
	}
}

func TestPlannerView_ClearPreview(t *testing.T) {
	view := newLoadedPlannerView(testCandidate("1", "Buns", "Buns & Chips", 2, 18))

	if err := view.Compose(); err != nil {
		t.Fatalf("composing order: %v", err)
	}

	view.ClearPreview()
	if view.Preview() != nil {
		t.Error("expected preview cleared")
	}
	if view.shareLink != "" {
		t.Error("expected share link cleared")
	}
}

func TestPlannerView_SelectedCandidate_Empty(t *testing.T) {
	view := NewPlannerView(nil, testPlanner())
	if candidate := view.SelectedCandidate(); candidate != nil {
		t.Errorf("expected nil selection on empty view, got %+v", candidate)
	}
}
