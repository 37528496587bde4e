package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/bucketbuddy/bucketbuddy/internal/model"
	"github.com/bucketbuddy/bucketbuddy/internal/store"
)

// Open opens (or creates) a SQLite database at the given path with WAL
// journal mode enabled for better read concurrency.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the items table and owner index if missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS items (
            id          TEXT PRIMARY KEY,
            owner_id    TEXT NOT NULL,
            title       TEXT NOT NULL,
            category    TEXT NOT NULL,
            priority    TEXT NOT NULL,
            target_date DATE,
            added_at    TIMESTAMP NOT NULL,
            completed   INTEGER NOT NULL DEFAULT 0
        );
        CREATE INDEX IF NOT EXISTS items_owner_added_idx ON items (owner_id, added_at);
    `)
	return err
}

// NewWithDB constructs a SQLite store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct {
	db     *sql.DB
	closed atomic.Bool
}

func (s *sqliteStore) Items() store.Items { return &sqliteItems{s} }

func (s *sqliteStore) HealthPing(ctx context.Context) error {
	if s.closed.Load() {
		return model.ErrStoreNotReady
	}
	return s.db.PingContext(ctx)
}

func (s *sqliteStore) Close(ctx context.Context) error {
	s.closed.Store(true)
	return s.db.Close()
}

type sqliteItems struct{ s *sqliteStore }

func (q *sqliteItems) Insert(ctx context.Context, it *model.Item) (*model.Item, error) {
	if q.s.closed.Load() {
		return nil, model.ErrStoreNotReady
	}

	out := *it
	out.ID = uuid.New().String()
	out.AddedAt = time.Now().UTC()

	var target interface{}
	if it.TargetDate != nil {
		target = time.Time(*it.TargetDate)
	}
	_, err := q.s.db.ExecContext(ctx, `
        INSERT INTO items (id, owner_id, title, category, priority, target_date, added_at, completed)
        VALUES (?,?,?,?,?,?,?,?)
    `, out.ID, out.OwnerID, out.Title, out.Category, out.Priority, target, out.AddedAt, out.Completed)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (q *sqliteItems) ListByOwner(ctx context.Context, ownerID string) ([]*model.Item, error) {
	if q.s.closed.Load() {
		return nil, model.ErrStoreNotReady
	}

	rows, err := q.s.db.QueryContext(ctx, `
        SELECT id, title, category, priority, target_date, added_at, completed
        FROM items WHERE owner_id=? ORDER BY added_at ASC
    `, ownerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make([]*model.Item, 0)
	for rows.Next() {
		var it model.Item
		it.OwnerID = ownerID
		var target sql.NullTime
		if err := rows.Scan(&it.ID, &it.Title, &it.Category, &it.Priority, &target, &it.AddedAt, &it.Completed); err != nil {
			return nil, err
		}
		if target.Valid {
			d := strfmt.Date(target.Time)
			it.TargetDate = &d
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

func (q *sqliteItems) MarkCompleted(ctx context.Context, id, ownerID string) (bool, error) {
	if q.s.closed.Load() {
		return false, model.ErrStoreNotReady
	}

	res, err := q.s.db.ExecContext(ctx,
		`UPDATE items SET completed=1 WHERE id=? AND owner_id=?`, id, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (q *sqliteItems) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	if q.s.closed.Load() {
		return false, model.ErrStoreNotReady
	}

	res, err := q.s.db.ExecContext(ctx,
		`DELETE FROM items WHERE id=? AND owner_id=?`, id, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
