package mocks

import (
	"context"

	"claimsapi/internal/function"

	"github.com/stretchr/testify/mock"
)

type MockInvoker struct {
	mock.Mock
}

func (m *MockInvoker) Invoke(ctx context.Context, name string, payload []byte) (*function.Result, error) {
	args := m.Called(ctx, name, payload)
	if f, ok := args.Get(0).(func(context.Context, string, []byte) *function.Result); ok {
		return f(ctx, name, payload), args.Error(1)
	}
	var res *function.Result
	if v := args.Get(0); v != nil {
		res = v.(*function.Result)
	}
	return res, args.Error(1)
}
