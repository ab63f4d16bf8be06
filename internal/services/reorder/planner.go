// Package reorder selects restock candidates and composes shareable
// order messages.
package reorder

import (
	"errors"
	"net/url"

	"github.com/stocktake/stocktake/internal/config"
	"github.com/stocktake/stocktake/internal/models"
)

// ErrEmptySelection is returned when an order is composed with no
// requested quantities above zero.
var ErrEmptySelection = errors.New("no items selected for order")

// Planner builds reorder suggestions and order messages.
type Planner struct {
	cfg *config.ReorderConfig
}

// NewPlanner creates a new reorder planner.
func NewPlanner(cfg *config.ReorderConfig) *Planner {
	return &Planner{cfg: cfg}
}

// Suggested returns the restock quantity for an item at the given
// levels: enough to reach double the threshold, but never less than
// the threshold itself.
func Suggested(quantity, threshold int) int {
	suggested := threshold*2 - quantity
	if suggested < threshold {
		return threshold
	}
	return suggested
}

// SelectCandidates returns the items eligible for reordering, keeping
// the input ordering. An item qualifies when quantity <= threshold.
// This boundary is inclusive, unlike the LOW classification which uses
// a strict comparison, so an item sitting exactly at its threshold is
// offered for reorder while still reading as GOOD on the dashboard.
func SelectCandidates(items []*models.Item) []*models.OrderCandidate {
	var candidates []*models.OrderCandidate
	for _, item := range items {
		if item.Quantity <= item.Threshold {
			candidates = append(candidates, &models.OrderCandidate{
				Item:      item,
				Suggested: Suggested(item.Quantity, item.Threshold),
			})
		}
	}
	return candidates
}

// Candidates returns the reorder candidates for the given snapshot.
func (p *Planner) Candidates(items []*models.Item) []*models.OrderCandidate {
	return SelectCandidates(items)
}

// Compose builds an order message from the candidates and the
// quantities the user confirmed, keyed by item ID. Candidates with no
// requested quantity (or zero) are skipped; a non-empty note is
// appended to the item's line. Returns ErrEmptySelection when nothing
// qualifies.
func (p *Planner) Compose(candidates []*models.OrderCandidate, requested map[string]int, notes map[string]string) (*models.OrderMessage, error) {
	var lines []models.OrderLine
	for _, candidate := range candidates {
		qty := requested[candidate.Item.ID]
		if qty <= 0 {
			continue
		}
		lines = append(lines, models.OrderLine{
			Name:     candidate.Item.Name,
			Quantity: qty,
			Note:     notes[candidate.Item.ID],
		})
	}

	if len(lines) == 0 {
		return nil, ErrEmptySelection
	}

	return &models.OrderMessage{
		Header: p.cfg.OrderHeader,
		Lines:  lines,
	}, nil
}

// ShareLink percent-encodes the message text onto the configured share
// base URL. Returns the bare message text when no base is configured.
func (p *Planner) ShareLink(msg *models.OrderMessage) string {
	text := msg.Text()
	if p.cfg.ShareBaseURL == "" {
		return text
	}
	return p.cfg.ShareBaseURL + url.QueryEscape(text)
}
