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

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	inv.CreatedAt = time.Now().UTC()

	query := `INSERT INTO invoices (
			id, invoice_number, invoice_date, customer_id, buyer_name, buyer, items,
			gst_active, jurisdiction, place_of_supply,
			taxable_value, cgst, sgst, igst, grand_total,
			payment_mode, pdf_key, page_count, created_at)
		VALUES (
			:id, :invoice_number, :invoice_date, :customer_id, :buyer_name, :buyer, :items,
			:gst_active, :jurisdiction, :place_of_supply,
			:taxable_value, :cgst, :sgst, :igst, :grand_total,
			:payment_mode, :pdf_key, :page_count, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) GetByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE invoice_number = $1", number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByNumber: %w", err)
	}
	return &inv, nil
}

// filterClause builds the WHERE clause and args for an InvoiceFilter.
func filterClause(f port.InvoiceFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if f.CustomerID != nil {
		args = append(args, *f.CustomerID)
		conds = append(conds, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("invoice_date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("invoice_date <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *invoiceRepo) List(ctx context.Context, filter port.InvoiceFilter, offset, limit int) ([]domain.Invoice, int, error) {
	where, args := filterClause(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM invoices%s ORDER BY invoice_date DESC, created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)+1, len(args)+2)
	var invoices []domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListAll(ctx context.Context, filter port.InvoiceFilter) ([]domain.Invoice, error) {
	where, args := filterClause(filter)
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		"SELECT * FROM invoices"+where+" ORDER BY invoice_date, invoice_number", args...)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListAll: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) Summary(ctx context.Context) (*domain.SalesSummary, error) {
	var s domain.SalesSummary
	err := r.db.GetContext(ctx, &s,
		`SELECT COUNT(*) AS invoice_count,
			COALESCE(SUM(grand_total), 0) AS total_sales,
			COALESCE(SUM(cgst + sgst + igst), 0) AS total_tax
		 FROM invoices`)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.Summary: %w", err)
	}
	return &s, nil
}

func (r *invoiceRepo) Recent(ctx context.Context, limit int) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		"SELECT * FROM invoices ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.Recent: %w", err)
	}
	return invoices, nil
}
