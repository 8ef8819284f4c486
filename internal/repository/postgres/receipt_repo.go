package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hisaab/internal/domain"
	"hisaab/internal/port"
)

type receiptRepo struct {
	db *sqlx.DB
}

// NewReceiptRepo creates a new PostgreSQL-backed ReceiptRepository.
func NewReceiptRepo(db *sqlx.DB) port.ReceiptRepository {
	return &receiptRepo{db: db}
}

func (r *receiptRepo) Create(ctx context.Context, rc *domain.Receipt) error {
	rc.ID = uuid.New()
	rc.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO receipts (id, customer_id, receipt_date, amount, mode, note, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rc.ID, rc.CustomerID, rc.ReceiptDate, rc.Amount, rc.Mode, rc.Note, rc.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "foreign key") {
			return domain.ErrCustomerNotFound
		}
		return fmt.Errorf("receiptRepo.Create: %w", err)
	}
	return nil
}

func (r *receiptRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Receipt, error) {
	var receipts []domain.Receipt
	err := r.db.SelectContext(ctx, &receipts,
		"SELECT * FROM receipts WHERE customer_id = $1 ORDER BY receipt_date DESC, created_at DESC", customerID)
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.ListByCustomer: %w", err)
	}
	return receipts, nil
}

const balanceQuery = `SELECT c.id AS customer_id, c.name AS customer_name,
		COALESCE((SELECT SUM(grand_total) FROM invoices i WHERE i.customer_id = c.id), 0) AS billed,
		COALESCE((SELECT SUM(amount) FROM receipts rc WHERE rc.customer_id = c.id), 0) AS received
	FROM customers c`

func (r *receiptRepo) Balance(ctx context.Context, customerID uuid.UUID) (*domain.CustomerBalance, error) {
	var b domain.CustomerBalance
	err := r.db.GetContext(ctx, &b, balanceQuery+" WHERE c.id = $1", customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("receiptRepo.Balance: %w", err)
	}
	b.Pending = b.Billed.Sub(b.Received)
	return &b, nil
}

func (r *receiptRepo) Balances(ctx context.Context) ([]domain.CustomerBalance, error) {
	var balances []domain.CustomerBalance
	if err := r.db.SelectContext(ctx, &balances, balanceQuery+" ORDER BY c.name"); err != nil {
		return nil, fmt.Errorf("receiptRepo.Balances: %w", err)
	}
	for i := range balances {
		balances[i].Pending = balances[i].Billed.Sub(balances[i].Received)
	}
	return balances, nil
}
