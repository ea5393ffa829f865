package mocks

import (
	"context"

	"claimsapi/internal/kvstore"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetItem(ctx context.Context, table string, key kvstore.Item) (kvstore.Item, error) {
	args := m.Called(ctx, table, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(kvstore.Item), args.Error(1)
}

func (m *MockStore) PutItem(ctx context.Context, table string, item kvstore.Item) error {
	args := m.Called(ctx, table, item)
	return args.Error(0)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
