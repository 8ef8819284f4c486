package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hisaab/internal/domain"
)

// ProfileRepository persists the single seller profile.
type ProfileRepository interface {
	Get(ctx context.Context) (*domain.SellerProfile, error)
	Upsert(ctx context.Context, profile *domain.SellerProfile) error
}

// CustomerRepository defines the contract for customer master persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, int, error)
	ListAll(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// UpsertByName inserts or updates customers keyed on name, returning how many were written.
	UpsertByName(ctx context.Context, customers []domain.Customer) (int, error)
}

// ItemRepository defines the contract for item master persistence.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, offset, limit int) ([]domain.Item, int, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvoiceFilter narrows the invoice register.
type InvoiceFilter struct {
	CustomerID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// InvoiceRepository defines the contract for the invoice register.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*domain.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error)
	ListAll(ctx context.Context, filter InvoiceFilter) ([]domain.Invoice, error)
	Summary(ctx context.Context) (*domain.SalesSummary, error)
	Recent(ctx context.Context, limit int) ([]domain.Invoice, error)
}

// ReceiptRepository defines the contract for customer receipts and balances.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *domain.Receipt) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Receipt, error)
	Balance(ctx context.Context, customerID uuid.UUID) (*domain.CustomerBalance, error)
	Balances(ctx context.Context) ([]domain.CustomerBalance, error)
}

// InwardSupplyRepository defines the contract for purchase bills.
type InwardSupplyRepository interface {
	Create(ctx context.Context, supply *domain.InwardSupply) error
	List(ctx context.Context, offset, limit int) ([]domain.InwardSupply, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
