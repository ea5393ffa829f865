package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBolt(t *testing.T) *Bolt {
	t.Helper()
	b, err := OpenBolt(filepath.Join(t.TempDir(), "test.db"), KeySchema{"claims": "claimId"})
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func claimKey(id string) Item {
	return Item{"claimId": &types.AttributeValueMemberS{Value: id}}
}

func TestBolt_PutGet(t *testing.T) {
	b := newTestBolt(t)
	ctx := context.Background()

	item := Item{
		"claimId":     &types.AttributeValueMemberS{Value: "c-1"},
		"description": &types.AttributeValueMemberS{Value: "rear-ended at a light"},
		"amount":      &types.AttributeValueMemberN{Value: "1500.00"},
	}
	require.NoError(t, b.PutItem(ctx, "claims", item))

	got, err := b.GetItem(ctx, "claims", claimKey("c-1"))
	require.NoError(t, err)
	assert.Equal(t, item, got)
}

func TestBolt_PutOverwrites(t *testing.T) {
	b := newTestBolt(t)
	ctx := context.Background()

	require.NoError(t, b.PutItem(ctx, "claims", Item{
		"claimId": &types.AttributeValueMemberS{Value: "c-1"},
		"status":  &types.AttributeValueMemberS{Value: "PENDING"},
	}))
	require.NoError(t, b.PutItem(ctx, "claims", Item{
		"claimId": &types.AttributeValueMemberS{Value: "c-1"},
		"status":  &types.AttributeValueMemberS{Value: "APPROVED"},
	}))

	got, err := b.GetItem(ctx, "claims", claimKey("c-1"))
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "APPROVED"}, got["status"])
}

func TestBolt_NotFound(t *testing.T) {
	b := newTestBolt(t)

	_, err := b.GetItem(context.Background(), "claims", claimKey("missing"))
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestBolt_UnknownTable(t *testing.T) {
	b := newTestBolt(t)
	ctx := context.Background()

	_, err := b.GetItem(ctx, "payments", claimKey("c-1"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrItemNotFound)

	err = b.PutItem(ctx, "payments", Item{"id": &types.AttributeValueMemberS{Value: "p"}})
	assert.Error(t, err)
}

func TestBolt_CanceledContext(t *testing.T) {
	b := newTestBolt(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.GetItem(ctx, "claims", claimKey("c-1"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, b.Ping(ctx), context.Canceled)
	assert.NoError(t, b.Ping(context.Background()))
}
