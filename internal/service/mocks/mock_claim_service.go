package mocks

import (
	"context"
	"io"

	"claimsapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockClaimService struct {
	mock.Mock
}

func (m *MockClaimService) Get(ctx context.Context, id string) (*model.Claim, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Claim), args.Error(1)
}

func (m *MockClaimService) Summarize(ctx context.Context, id string) (*model.ClaimSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClaimSummary), args.Error(1)
}

func (m *MockClaimService) GenerateFiles(ctx context.Context, id string) (*model.FileGeneration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileGeneration), args.Error(1)
}

func (m *MockClaimService) Create(ctx context.Context, req model.CreateClaimRequest) (*model.Claim, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Claim), args.Error(1)
}

func (m *MockClaimService) UploadNotes(ctx context.Context, id string, r io.Reader, size int64) error {
	args := m.Called(ctx, id, r, size)
	return args.Error(0)
}

func (m *MockClaimService) ListFiles(ctx context.Context, id string) ([]model.FileLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FileLink), args.Error(1)
}
