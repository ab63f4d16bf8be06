package util

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewID_Valid(t *testing.T) {
	id := NewID()

	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("NewID produced an unparseable ID %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected UUID version 7, got %d", parsed.Version())
	}
}

func TestNewID_Unique(t *testing.T) {
	gen := NewIDGenerator()

	seen := make(map[string]bool)
	for range 1000 {
		id := gen.NewID()
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
