package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"hisaab/internal/domain"
	"hisaab/internal/service"
)

// MockInwardService is a mock implementation of service.InwardService.
type MockInwardService struct {
	mock.Mock
}

func (m *MockInwardService) Record(ctx context.Context, input service.RecordInwardInput) (*domain.InwardSupply, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InwardSupply), args.Error(1)
}

func (m *MockInwardService) List(ctx context.Context, offset, limit int) ([]domain.InwardSupply, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.InwardSupply), args.Int(1), args.Error(2)
}

func (m *MockInwardService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockInwardService) Export(ctx context.Context, w io.Writer) error {
	return m.Called(ctx, w).Error(0)
}
