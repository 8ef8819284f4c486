package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hisaab/internal/domain"
)

// MockInwardSupplyRepo is a mock implementation of port.InwardSupplyRepository.
type MockInwardSupplyRepo struct {
	mock.Mock
}

func (m *MockInwardSupplyRepo) Create(ctx context.Context, supply *domain.InwardSupply) error {
	args := m.Called(ctx, supply)
	return args.Error(0)
}

func (m *MockInwardSupplyRepo) List(ctx context.Context, offset, limit int) ([]domain.InwardSupply, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.InwardSupply), args.Int(1), args.Error(2)
}

func (m *MockInwardSupplyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
