package kvstore

import (
	"context"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"
)

// Bolt is an embedded Store backed by a single BoltDB file. Each table is a
// bucket; values are items encoded with EncodeItem. It needs no external
// process, which makes it the local development backend.
type Bolt struct {
	db     *bolt.DB
	schema KeySchema
}

// OpenBolt opens (or creates) the database at path and ensures a bucket exists
// for every table in schema.
func OpenBolt(path string, schema KeySchema) (*Bolt, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for table := range schema {
			if _, err := tx.CreateBucketIfNotExists([]byte(table)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bolt buckets: %w", err)
	}

	return &Bolt{db: db, schema: schema}, nil
}

var _ Store = (*Bolt)(nil)

// Close releases the database file lock.
func (b *Bolt) Close() error {
	return b.db.Close()
}

func (b *Bolt) GetItem(ctx context.Context, table string, key Item) (Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k, err := singleKey(key)
	if err != nil {
		return nil, err
	}

	var item Item
	err = b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(table))
		if bucket == nil {
			return fmt.Errorf("unknown table %q", table)
		}
		v := bucket.Get([]byte(k))
		if v == nil {
			return ErrItemNotFound
		}
		// v is only valid inside the transaction.
		decoded, err := DecodeItem(v)
		if err != nil {
			return err
		}
		item = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (b *Bolt) PutItem(ctx context.Context, table string, item Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k, err := b.schema.keyOf(table, item)
	if err != nil {
		return err
	}
	data, err := EncodeItem(item)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(table))
		if bucket == nil {
			return fmt.Errorf("unknown table %q", table)
		}
		return bucket.Put([]byte(k), data)
	})
}

func (b *Bolt) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.View(func(tx *bolt.Tx) error { return nil })
}
