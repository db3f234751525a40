package storage

import "time"

// Item is the persisted form of a tracked problem. Calendar dates are
// stored as canonical YYYY-MM-DD strings so SQL ordering matches
// chronology.
type Item struct {
	ID        string
	OwnerID   string
	URL       string
	Slug      string
	Title     string
	AddedOn   string
	CreatedAt time.Time
}

// Checkpoint is one persisted review slot. CompletedOn is empty while
// the review is open.
type Checkpoint struct {
	ItemID      string
	Kind        string
	Label       string
	DueOn       string
	CompletedOn string
}

type ItemListFilter struct {
	OwnerID string
	Limit   int
	Offset  int
}
