package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateItem inserts the item and its checkpoint set in one
// transaction; checkpoints never exist without their item.
func (r *SQLiteRepository) CreateItem(ctx context.Context, item Item, checkpoints []Checkpoint) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO items (id, owner_id, url, slug, title, added_on, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.OwnerID, item.URL, item.Slug, item.Title, item.AddedOn, mustTime(item.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}

	for _, cp := range checkpoints {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO checkpoints (item_id, kind, label, due_on, completed_on)
			VALUES (?, ?, ?, ?, ?)`,
			item.ID, cp.Kind, cp.Label, cp.DueOn, nullString(cp.CompletedOn),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) GetItem(ctx context.Context, ownerID, id string) (Item, []Checkpoint, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, url, slug, title, added_on, created_at
		FROM items WHERE owner_id = ? AND id = ?`, ownerID, id)
	return r.itemWithCheckpoints(ctx, row)
}

func (r *SQLiteRepository) FindItemBySlug(ctx context.Context, ownerID, slug string) (Item, []Checkpoint, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, url, slug, title, added_on, created_at
		FROM items WHERE owner_id = ? AND slug = ?`, ownerID, slug)
	return r.itemWithCheckpoints(ctx, row)
}

func (r *SQLiteRepository) ListItems(ctx context.Context, filter ItemListFilter) ([]Item, error) {
	query := `SELECT id, owner_id, url, slug, title, added_on, created_at FROM items`
	args := make([]any, 0, 3)
	if filter.OwnerID != "" {
		query += ` WHERE owner_id = ?`
		args = append(args, filter.OwnerID)
	}
	query += ` ORDER BY added_on DESC, created_at DESC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Item, 0)
	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) ListCheckpoints(ctx context.Context, ownerID string) ([]Checkpoint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.item_id, c.kind, c.label, c.due_on, c.completed_on
		FROM checkpoints c
		JOIN items i ON i.id = c.item_id
		WHERE i.owner_id = ?
		ORDER BY c.item_id, c.due_on ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Checkpoint, 0)
	for rows.Next() {
		cp, scanErr := scanCheckpoint(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

// UpdateCheckpoint writes the new completion state only if the stored
// state still matches what the caller read, making the toggle's
// read-modify-write detectable when it races.
func (r *SQLiteRepository) UpdateCheckpoint(ctx context.Context, itemID, kind, expectedCompletedOn, completedOn string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE checkpoints
		SET completed_on = ?
		WHERE item_id = ? AND kind = ? AND completed_on IS ?`,
		nullString(completedOn), itemID, kind, nullString(expectedCompletedOn),
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Distinguish a missing checkpoint from a lost race.
		var n int
		row := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM checkpoints WHERE item_id = ? AND kind = ?`, itemID, kind)
		if scanErr := row.Scan(&n); scanErr != nil {
			return scanErr
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

func (r *SQLiteRepository) DeleteItem(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) itemWithCheckpoints(ctx context.Context, row *sql.Row) (Item, []Checkpoint, error) {
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, nil, ErrNotFound
		}
		return Item{}, nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT item_id, kind, label, due_on, completed_on
		FROM checkpoints WHERE item_id = ? ORDER BY due_on ASC`, item.ID)
	if err != nil {
		return Item{}, nil, err
	}
	defer rows.Close()

	checkpoints := make([]Checkpoint, 0, 3)
	for rows.Next() {
		cp, scanErr := scanCheckpoint(rows)
		if scanErr != nil {
			return Item{}, nil, scanErr
		}
		checkpoints = append(checkpoints, cp)
	}
	return item, checkpoints, rows.Err()
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (Item, error) {
	var out Item
	var created string
	if err := s.Scan(&out.ID, &out.OwnerID, &out.URL, &out.Slug, &out.Title, &out.AddedOn, &created); err != nil {
		return Item{}, err
	}
	createdAt, err := time.Parse(sqliteTimeLayout, created)
	if err != nil {
		return Item{}, err
	}
	out.CreatedAt = createdAt
	return out, nil
}

func scanCheckpoint(s scanner) (Checkpoint, error) {
	var out Checkpoint
	var completed sql.NullString
	if err := s.Scan(&out.ItemID, &out.Kind, &out.Label, &out.DueOn, &completed); err != nil {
		return Checkpoint{}, err
	}
	if completed.Valid {
		out.CompletedOn = completed.String
	}
	return out, nil
}
