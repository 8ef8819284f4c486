package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hisaab/internal/domain"
	"hisaab/internal/port"
	"hisaab/internal/validator"
)

// RecordReceiptInput is the DTO for money received from a customer.
type RecordReceiptInput struct {
	CustomerID  uuid.UUID          `json:"customer_id" binding:"required"`
	ReceiptDate string             `json:"receipt_date"`
	Amount      decimal.Decimal    `json:"amount"`
	Mode        domain.PaymentMode `json:"mode"`
	Note        string             `json:"note"`
}

// CustomerLedger is a customer's balance and receipt history.
type CustomerLedger struct {
	Balance  *domain.CustomerBalance `json:"balance"`
	Receipts []domain.Receipt        `json:"receipts"`
}

// LedgerService records receipts and reports pending balances.
type LedgerService interface {
	RecordReceipt(ctx context.Context, input RecordReceiptInput) (*domain.Receipt, error)
	CustomerLedger(ctx context.Context, customerID uuid.UUID) (*CustomerLedger, error)
	Balances(ctx context.Context) ([]domain.CustomerBalance, error)
}

type ledgerService struct {
	receipts  port.ReceiptRepository
	customers port.CustomerRepository
	now       func() time.Time
}

// NewLedgerService creates a new LedgerService implementation.
func NewLedgerService(receipts port.ReceiptRepository, customers port.CustomerRepository) LedgerService {
	return &ledgerService{receipts: receipts, customers: customers, now: time.Now}
}

func (s *ledgerService) RecordReceipt(ctx context.Context, input RecordReceiptInput) (*domain.Receipt, error) {
	date, err := parseDate(input.ReceiptDate, s.now())
	if err != nil {
		return nil, err
	}
	mode := input.Mode
	if mode == "" {
		mode = domain.PaymentCash
	}
	r := &domain.Receipt{
		CustomerID:  input.CustomerID,
		ReceiptDate: date,
		Amount:      input.Amount,
		Mode:        mode,
		Note:        strings.TrimSpace(input.Note),
	}
	if err := validator.Receipt(r); err != nil {
		return nil, err
	}
	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		return nil, err
	}
	if err := s.receipts.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ledgerService) CustomerLedger(ctx context.Context, customerID uuid.UUID) (*CustomerLedger, error) {
	balance, err := s.receipts.Balance(ctx, customerID)
	if err != nil {
		return nil, err
	}
	receipts, err := s.receipts.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &CustomerLedger{Balance: balance, Receipts: receipts}, nil
}

func (s *ledgerService) Balances(ctx context.Context) ([]domain.CustomerBalance, error) {
	return s.receipts.Balances(ctx)
}
