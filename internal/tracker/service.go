// Package tracker ties the pure engine to persistence: it parses
// submitted URLs, fixes the review cadence at creation time, and runs
// the toggle's read-modify-write under a per-item lock.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/leettrack/internal/dashboard"
	"github.com/example/leettrack/internal/dateutil"
	"github.com/example/leettrack/internal/model"
	"github.com/example/leettrack/internal/problemurl"
	"github.com/example/leettrack/internal/storage"
)

var (
	// ErrAlreadyTracked reports a duplicate (owner, slug) submission.
	ErrAlreadyTracked = errors.New("tracker: problem already tracked")
	ErrItemNotFound   = errors.New("tracker: item not found")
)

type Service struct {
	repo storage.Repository
	now  func() time.Time

	mu        sync.Mutex
	itemLocks map[string]*sync.Mutex
}

func New(repo storage.Repository) *Service {
	return &Service{
		repo:      repo,
		now:       time.Now,
		itemLocks: make(map[string]*sync.Mutex),
	}
}

// Create parses the URL, derives the slug and title, generates the
// checkpoint cadence anchored at today, and persists the new item. A
// slug the owner already tracks is rejected, never merged.
func (s *Service) Create(ctx context.Context, ownerID, rawURL string, today dateutil.Date) (model.TrackedItem, error) {
	parsed, err := problemurl.Parse(rawURL)
	if err != nil {
		return model.TrackedItem{}, err
	}

	if _, _, err := s.repo.FindItemBySlug(ctx, ownerID, parsed.Slug); err == nil {
		return model.TrackedItem{}, ErrAlreadyTracked
	} else if !errors.Is(err, storage.ErrNotFound) {
		return model.TrackedItem{}, fmt.Errorf("lookup slug: %w", err)
	}

	item := model.TrackedItem{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		URL:         problemurl.Sanitize(rawURL),
		Slug:        parsed.Slug,
		Title:       parsed.Title,
		AddedOn:     today,
		Checkpoints: model.GenerateCheckpoints(today),
	}
	if err := item.Validate(); err != nil {
		return model.TrackedItem{}, err
	}

	row, cps := toStorage(item, s.now().UTC())
	if err := s.repo.CreateItem(ctx, row, cps); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// The unique index closes the find-then-create window.
			return model.TrackedItem{}, ErrAlreadyTracked
		}
		return model.TrackedItem{}, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// List returns the owner's items, newest anchor first.
func (s *Service) List(ctx context.Context, ownerID string) ([]model.TrackedItem, error) {
	rows, err := s.repo.ListItems(ctx, storage.ItemListFilter{OwnerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	cps, err := s.repo.ListCheckpoints(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}

	byItem := make(map[string][]storage.Checkpoint, len(rows))
	for _, cp := range cps {
		byItem[cp.ItemID] = append(byItem[cp.ItemID], cp)
	}

	out := make([]model.TrackedItem, 0, len(rows))
	for _, row := range rows {
		item, convErr := fromStorage(row, byItem[row.ID])
		if convErr != nil {
			return nil, convErr
		}
		out = append(out, item)
	}
	return out, nil
}

// Get loads a single item for the owner.
func (s *Service) Get(ctx context.Context, ownerID, itemID string) (model.TrackedItem, error) {
	row, cps, err := s.repo.GetItem(ctx, ownerID, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.TrackedItem{}, ErrItemNotFound
		}
		return model.TrackedItem{}, fmt.Errorf("get item: %w", err)
	}
	return fromStorage(row, cps)
}

// Snapshot loads the owner's items and builds the dashboard view-model
// for the supplied today.
func (s *Service) Snapshot(ctx context.Context, ownerID string, today dateutil.Date) (dashboard.Snapshot, error) {
	items, err := s.List(ctx, ownerID)
	if err != nil {
		return dashboard.Snapshot{}, err
	}
	return dashboard.Build(items, today), nil
}

// Toggle flips one checkpoint's completion state. Toggles on the same
// item are serialized by an in-process mutex, and the storage write is
// conditional on the state that was read, so a racing writer surfaces
// as storage.ErrConflict instead of silently clobbering.
func (s *Service) Toggle(ctx context.Context, ownerID, itemID string, kind model.Cadence, today dateutil.Date) (model.TrackedItem, error) {
	lock := s.lockFor(itemID)
	lock.Lock()
	defer lock.Unlock()

	item, err := s.Get(ctx, ownerID, itemID)
	if err != nil {
		return model.TrackedItem{}, err
	}

	before, ok := item.Checkpoint(kind)
	if !ok {
		return model.TrackedItem{}, model.ErrCheckpointNotFound
	}

	updated, err := model.Toggle(item, kind, today)
	if err != nil {
		return model.TrackedItem{}, err
	}
	after, _ := updated.Checkpoint(kind)

	err = s.repo.UpdateCheckpoint(ctx, itemID, string(kind), formatOrEmpty(before.CompletedOn), formatOrEmpty(after.CompletedOn))
	if err != nil {
		return model.TrackedItem{}, fmt.Errorf("persist toggle: %w", err)
	}
	return updated, nil
}

// Remove deletes an item outright. Not part of the review engine; kept
// for operator cleanup from the CLI.
func (s *Service) Remove(ctx context.Context, ownerID, itemID string) error {
	if err := s.repo.DeleteItem(ctx, ownerID, itemID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (s *Service) lockFor(itemID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.itemLocks[itemID]
	if !ok {
		lock = &sync.Mutex{}
		s.itemLocks[itemID] = lock
	}
	return lock
}

func toStorage(item model.TrackedItem, createdAt time.Time) (storage.Item, []storage.Checkpoint) {
	row := storage.Item{
		ID:        item.ID,
		OwnerID:   item.OwnerID,
		URL:       item.URL,
		Slug:      item.Slug,
		Title:     item.Title,
		AddedOn:   item.AddedOn.Format(),
		CreatedAt: createdAt,
	}
	cps := make([]storage.Checkpoint, 0, len(item.Checkpoints))
	for _, cp := range item.Checkpoints {
		cps = append(cps, storage.Checkpoint{
			ItemID:      item.ID,
			Kind:        string(cp.Kind),
			Label:       cp.Label,
			DueOn:       cp.DueOn.Format(),
			CompletedOn: formatOrEmpty(cp.CompletedOn),
		})
	}
	return row, cps
}

func fromStorage(row storage.Item, cps []storage.Checkpoint) (model.TrackedItem, error) {
	addedOn, err := dateutil.Parse(row.AddedOn)
	if err != nil {
		return model.TrackedItem{}, fmt.Errorf("item %s: %w", row.ID, err)
	}
	item := model.TrackedItem{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		URL:         row.URL,
		Slug:        row.Slug,
		Title:       row.Title,
		AddedOn:     addedOn,
		Checkpoints: make([]model.Checkpoint, 0, len(cps)),
	}
	for _, cp := range cps {
		dueOn, err := dateutil.Parse(cp.DueOn)
		if err != nil {
			return model.TrackedItem{}, fmt.Errorf("checkpoint %s/%s: %w", cp.ItemID, cp.Kind, err)
		}
		converted := model.Checkpoint{
			Kind:  model.Cadence(cp.Kind),
			Label: cp.Label,
			DueOn: dueOn,
		}
		if cp.CompletedOn != "" {
			completedOn, err := dateutil.Parse(cp.CompletedOn)
			if err != nil {
				return model.TrackedItem{}, fmt.Errorf("checkpoint %s/%s: %w", cp.ItemID, cp.Kind, err)
			}
			converted.CompletedOn = completedOn
		}
		item.Checkpoints = append(item.Checkpoints, converted)
	}
	return item, nil
}

func formatOrEmpty(d dateutil.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Format()
}
