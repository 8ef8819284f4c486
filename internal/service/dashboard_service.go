package service

import (
	"context"

	"github.com/shopspring/decimal"

	"hisaab/internal/domain"
	"hisaab/internal/port"
)

// recentInvoices is how many invoices the dashboard lists.
const recentInvoices = 5

// DashboardService assembles the landing-page totals.
type DashboardService interface {
	Get(ctx context.Context) (*domain.Dashboard, error)
}

type dashboardService struct {
	invoices port.InvoiceRepository
	receipts port.ReceiptRepository
}

// NewDashboardService creates a new DashboardService implementation.
func NewDashboardService(invoices port.InvoiceRepository, receipts port.ReceiptRepository) DashboardService {
	return &dashboardService{invoices: invoices, receipts: receipts}
}

func (s *dashboardService) Get(ctx context.Context) (*domain.Dashboard, error) {
	summary, err := s.invoices.Summary(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.invoices.Recent(ctx, recentInvoices)
	if err != nil {
		return nil, err
	}
	balances, err := s.receipts.Balances(ctx)
	if err != nil {
		return nil, err
	}

	d := &domain.Dashboard{SalesSummary: *summary, Recent: recent, Received: decimal.Zero, Pending: decimal.Zero}
	for i := range balances {
		d.Received = d.Received.Add(balances[i].Received)
		d.Pending = d.Pending.Add(balances[i].Pending)
	}
	if d.Recent == nil {
		d.Recent = []domain.Invoice{}
	}
	return d, nil
}
