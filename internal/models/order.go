package models

import (
	"fmt"
	"strings"
)

// OrderCandidate is an item eligible for reordering, paired with the
// quantity the planner suggests buying.
type OrderCandidate struct {
	Item      *Item
	Suggested int
}

// OrderLine is one confirmed entry in a composed order.
type OrderLine struct {
	Name     string
	Quantity int
	Note     string
}

// OrderMessage is a composed, human-readable order ready to share.
type OrderMessage struct {
	Header string
	Lines  []OrderLine
}

// Text renders the message as the header followed by one line per
// entry, newline separated.
func (m *OrderMessage) Text() string {
	var b strings.Builder
	b.WriteString(m.Header)
	for _, line := range m.Lines {
		b.WriteString("\n")
		b.WriteString(line.String())
	}
	return b.String()
}

func (l OrderLine) String() string {
	if l.Note != "" {
		return fmt.Sprintf("%s x %d (%s)", l.Name, l.Quantity, l.Note)
	}
	return fmt.Sprintf("%s x %d", l.Name, l.Quantity)
}
