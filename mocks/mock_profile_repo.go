package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hisaab/internal/domain"
)

// MockProfileRepo is a mock implementation of port.ProfileRepository.
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Get(ctx context.Context) (*domain.SellerProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SellerProfile), args.Error(1)
}

func (m *MockProfileRepo) Upsert(ctx context.Context, profile *domain.SellerProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}
