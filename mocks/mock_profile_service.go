package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hisaab/internal/domain"
	"hisaab/internal/service"
)

// MockProfileService is a mock implementation of service.ProfileService.
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context) (*domain.SellerProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SellerProfile), args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, input service.UpdateProfileInput) (*domain.SellerProfile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SellerProfile), args.Error(1)
}
