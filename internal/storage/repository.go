package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("storage: not found")
	// ErrDuplicate reports a second item with the same (owner, slug) pair.
	ErrDuplicate = errors.New("storage: duplicate item")
	// ErrConflict reports a conditional checkpoint write that lost a race:
	// the stored completion state no longer matches what the caller read.
	ErrConflict = errors.New("storage: checkpoint state changed concurrently")
)

type Repository interface {
	CreateItem(ctx context.Context, item Item, checkpoints []Checkpoint) error
	GetItem(ctx context.Context, ownerID, id string) (Item, []Checkpoint, error)
	FindItemBySlug(ctx context.Context, ownerID, slug string) (Item, []Checkpoint, error)
	ListItems(ctx context.Context, filter ItemListFilter) ([]Item, error)
	ListCheckpoints(ctx context.Context, ownerID string) ([]Checkpoint, error)
	UpdateCheckpoint(ctx context.Context, itemID, kind, expectedCompletedOn, completedOn string) error
	DeleteItem(ctx context.Context, ownerID, id string) error
}
