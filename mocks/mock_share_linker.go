package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockShareLinker is a mock implementation of service.ShareLinker.
type MockShareLinker struct {
	mock.Mock
}

func (m *MockShareLinker) URL(invoiceID uuid.UUID) (string, error) {
	args := m.Called(invoiceID)
	return args.String(0), args.Error(1)
}

func (m *MockShareLinker) Parse(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
