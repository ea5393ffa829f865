package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres is a Store over a single kv_items table (see database/migration).
// It uses database/sql with parameterized queries and contains no business logic.
type Postgres struct {
	db     *sql.DB
	schema KeySchema
}

// NewPostgres creates a new Postgres store.
func NewPostgres(db *sql.DB, schema KeySchema) *Postgres {
	return &Postgres{db: db, schema: schema}
}

var _ Store = (*Postgres)(nil)

func (p *Postgres) GetItem(ctx context.Context, table string, key Item) (Item, error) {
	k, err := singleKey(key)
	if err != nil {
		return nil, err
	}

	const q = `
		SELECT item
		FROM kv_items
		WHERE tbl = $1 AND pk = $2
	`
	var data []byte
	if err := p.db.QueryRowContext(ctx, q, table, k).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("postgres get %s: %w", table, err)
	}
	return DecodeItem(data)
}

// PutItem upserts the item, replacing any previous value for the key.
func (p *Postgres) PutItem(ctx context.Context, table string, item Item) error {
	k, err := p.schema.keyOf(table, item)
	if err != nil {
		return err
	}
	data, err := EncodeItem(item)
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO kv_items (tbl, pk, item, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (tbl, pk) DO UPDATE
		SET item = EXCLUDED.item, updated_at = EXCLUDED.updated_at
	`
	if _, err := p.db.ExecContext(ctx, q, table, k, string(data)); err != nil {
		return fmt.Errorf("postgres put %s: %w", table, err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
