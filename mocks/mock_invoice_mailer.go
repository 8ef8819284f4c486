package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hisaab/internal/port"
)

// MockInvoiceMailer is a mock implementation of port.InvoiceMailer.
type MockInvoiceMailer struct {
	mock.Mock
}

func (m *MockInvoiceMailer) SendInvoice(ctx context.Context, msg port.InvoiceEmail) error {
	return m.Called(ctx, msg).Error(0)
}
