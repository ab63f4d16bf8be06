// Package util provides shared helpers for stocktake.
package util

import (
	"github.com/google/uuid"
)

// IDGenerator hands out UUIDv7 identifiers. Time-ordered IDs keep the
// primary key index append-mostly, which suits SQLite.
type IDGenerator struct{}

// NewIDGenerator creates a new ID generator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// NewID returns a new UUIDv7 string. A failure to read randomness
// falls back to a random UUIDv4.
func (g *IDGenerator) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// NewID generates an identifier from the package-level generator.
func NewID() string {
	var g IDGenerator
	return g.NewID()
}
