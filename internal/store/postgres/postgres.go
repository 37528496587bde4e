package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/bucketbuddy/bucketbuddy/internal/model"
	"github.com/bucketbuddy/bucketbuddy/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and
// verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
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
            added_at    TIMESTAMPTZ NOT NULL,
            completed   BOOLEAN NOT NULL DEFAULT FALSE
        );
        CREATE INDEX IF NOT EXISTS items_owner_added_idx ON items (owner_id, added_at);
    `)
	return err
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct {
	db     *sql.DB
	closed atomic.Bool
}

func (s *pgStore) Items() store.Items { return &pgItems{s} }

func (s *pgStore) HealthPing(ctx context.Context) error {
	if s.closed.Load() {
		return model.ErrStoreNotReady
	}
	return s.db.PingContext(ctx)
}

func (s *pgStore) Close(ctx context.Context) error {
	s.closed.Store(true)
	return s.db.Close()
}

type pgItems struct{ s *pgStore }

func (p *pgItems) Insert(ctx context.Context, it *model.Item) (*model.Item, error) {
	if p.s.closed.Load() {
		return nil, model.ErrStoreNotReady
	}

	out := *it
	out.ID = uuid.New().String()
	out.AddedAt = time.Now().UTC()

	var target interface{}
	if it.TargetDate != nil {
		target = time.Time(*it.TargetDate)
	}
	_, err := p.s.db.ExecContext(ctx, `
        INSERT INTO items (id, owner_id, title, category, priority, target_date, added_at, completed)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `, out.ID, out.OwnerID, out.Title, out.Category, out.Priority, target, out.AddedAt, out.Completed)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *pgItems) ListByOwner(ctx context.Context, ownerID string) ([]*model.Item, error) {
	if p.s.closed.Load() {
		return nil, model.ErrStoreNotReady
	}

	rows, err := p.s.db.QueryContext(ctx, `
        SELECT id, title, category, priority, target_date, added_at, completed
        FROM items WHERE owner_id=$1 ORDER BY added_at ASC
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

func (p *pgItems) MarkCompleted(ctx context.Context, id, ownerID string) (bool, error) {
	if p.s.closed.Load() {
		return false, model.ErrStoreNotReady
	}

	res, err := p.s.db.ExecContext(ctx,
		`UPDATE items SET completed=TRUE WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (p *pgItems) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	if p.s.closed.Load() {
		return false, model.ErrStoreNotReady
	}

	res, err := p.s.db.ExecContext(ctx,
		`DELETE FROM items WHERE id=$1 AND owner_id=$2`, id, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
