// Package kvstore contains key-value store abstractions for claim records.
// Every backend speaks the DynamoDB typed attribute format so the repository's
// record mapping is identical regardless of where items are persisted.
package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item is a single record in typed attribute form.
type Item = map[string]types.AttributeValue

// ErrItemNotFound is returned by GetItem when no item exists for the key.
var ErrItemNotFound = errors.New("item not found")

// Store is the narrow key-value contract the repository depends on.
// Implementations must be safe for concurrent use.
type Store interface {
	// GetItem returns the item addressed by key, or ErrItemNotFound.
	GetItem(ctx context.Context, table string, key Item) (Item, error)
	// PutItem writes item, overwriting any existing item with the same key.
	PutItem(ctx context.Context, table string, item Item) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}

// KeySchema maps a table name to the name of its string primary key attribute.
// Backends without native schemas (bolt, postgres) use it to locate the key on writes.
type KeySchema map[string]string

func (s KeySchema) keyOf(table string, item Item) (string, error) {
	attr, ok := s[table]
	if !ok {
		return "", fmt.Errorf("unknown table %q", table)
	}
	v, ok := item[attr].(*types.AttributeValueMemberS)
	if !ok || v.Value == "" {
		return "", fmt.Errorf("item for table %q has no string key attribute %q", table, attr)
	}
	return v.Value, nil
}

// singleKey extracts the value of a one-attribute string key.
func singleKey(key Item) (string, error) {
	if len(key) != 1 {
		return "", fmt.Errorf("key must have exactly one attribute, got %d", len(key))
	}
	for name, av := range key {
		v, ok := av.(*types.AttributeValueMemberS)
		if !ok || v.Value == "" {
			return "", fmt.Errorf("key attribute %q must be a non-empty string", name)
		}
		return v.Value, nil
	}
	return "", nil
}
