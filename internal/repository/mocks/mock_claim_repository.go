package mocks

import (
	"context"

	"claimsapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockClaimRepository struct {
	mock.Mock
}

func (m *MockClaimRepository) FindByID(ctx context.Context, id string) (*model.Claim, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Claim), args.Error(1)
}

func (m *MockClaimRepository) GenerateSummary(ctx context.Context, claim *model.Claim) (*model.ClaimSummary, error) {
	args := m.Called(ctx, claim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClaimSummary), args.Error(1)
}

func (m *MockClaimRepository) GenerateClaimFiles(ctx context.Context, claim *model.Claim) (*model.FileGeneration, error) {
	args := m.Called(ctx, claim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FileGeneration), args.Error(1)
}

func (m *MockClaimRepository) Save(ctx context.Context, req model.CreateClaimRequest) (*model.Claim, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Claim), args.Error(1)
}
