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

type customerRepo struct {
	db *sqlx.DB
}

// NewCustomerRepo creates a new PostgreSQL-backed CustomerRepository.
func NewCustomerRepo(db *sqlx.DB) port.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, c *domain.Customer) error {
	c.ID = uuid.New()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `INSERT INTO customers (id, name, gstin, address1, address2, address3, state, mobile, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.GSTIN, c.Address1, c.Address2, c.Address3, c.State, c.Mobile, c.Email,
		c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateCustomer
		}
		return fmt.Errorf("customerRepo.Create: %w", err)
	}
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c, "SELECT * FROM customers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customerRepo.GetByID: %w", err)
	}
	return &c, nil
}

func (r *customerRepo) List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, int, error) {
	pattern := "%" + search + "%"

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM customers WHERE name ILIKE $1 OR mobile ILIKE $1", pattern)
	if err != nil {
		return nil, 0, fmt.Errorf("customerRepo.List count: %w", err)
	}

	var customers []domain.Customer
	err = r.db.SelectContext(ctx, &customers,
		`SELECT * FROM customers WHERE name ILIKE $1 OR mobile ILIKE $1
		 ORDER BY name LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("customerRepo.List: %w", err)
	}
	return customers, total, nil
}

func (r *customerRepo) ListAll(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := r.db.SelectContext(ctx, &customers, "SELECT * FROM customers ORDER BY name"); err != nil {
		return nil, fmt.Errorf("customerRepo.ListAll: %w", err)
	}
	return customers, nil
}

func (r *customerRepo) Update(ctx context.Context, c *domain.Customer) error {
	c.UpdatedAt = time.Now().UTC()
	query := `UPDATE customers SET name = $1, gstin = $2, address1 = $3, address2 = $4, address3 = $5,
		state = $6, mobile = $7, email = $8, updated_at = $9 WHERE id = $10`
	result, err := r.db.ExecContext(ctx, query,
		c.Name, c.GSTIN, c.Address1, c.Address2, c.Address3, c.State, c.Mobile, c.Email, c.UpdatedAt, c.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateCustomer
		}
		return fmt.Errorf("customerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("customerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepo) UpsertByName(ctx context.Context, customers []domain.Customer) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("customerRepo.UpsertByName begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query := `INSERT INTO customers (id, name, gstin, address1, address2, address3, state, mobile, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (name) DO UPDATE SET
			gstin = EXCLUDED.gstin, address1 = EXCLUDED.address1, address2 = EXCLUDED.address2,
			address3 = EXCLUDED.address3, state = EXCLUDED.state, mobile = EXCLUDED.mobile,
			email = EXCLUDED.email, updated_at = EXCLUDED.updated_at`

	now := time.Now().UTC()
	written := 0
	for i := range customers {
		c := &customers[i]
		if _, err := tx.ExecContext(ctx, query,
			uuid.New(), c.Name, c.GSTIN, c.Address1, c.Address2, c.Address3, c.State, c.Mobile, c.Email, now); err != nil {
			return 0, fmt.Errorf("customerRepo.UpsertByName %q: %w", c.Name, err)
		}
		written++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("customerRepo.UpsertByName commit: %w", err)
	}
	return written, nil
}
