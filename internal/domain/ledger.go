package domain

import (
	"time"

	"github.com/google/uuid"
)

// LedgerEntry is a derived route the user has accepted into their itinerary.
// Entries are ordered by insertion (Position is assigned by the database and
// only ever grows); duplicates of the same route are permitted and are
// distinguished by ID. The same route added twice yields two entries.
type LedgerEntry struct {
	ID        uuid.UUID    `json:"id"`
	Position  int64        `json:"-"`
	Route     DerivedRoute `json:"route"`
	CreatedAt time.Time    `json:"created_at"`
}
