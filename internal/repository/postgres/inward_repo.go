package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hisaab/internal/domain"
	"hisaab/internal/port"
)

type inwardRepo struct {
	db *sqlx.DB
}

// NewInwardSupplyRepo creates a new PostgreSQL-backed InwardSupplyRepository.
func NewInwardSupplyRepo(db *sqlx.DB) port.InwardSupplyRepository {
	return &inwardRepo{db: db}
}

func (r *inwardRepo) Create(ctx context.Context, s *domain.InwardSupply) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inward_supplies (id, supply_date, supplier, supplier_gstin, bill_number, value, note, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.SupplyDate, s.Supplier, s.SupplierGSTIN, s.BillNumber, s.Value, s.Note, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("inwardRepo.Create: %w", err)
	}
	return nil
}

func (r *inwardRepo) List(ctx context.Context, offset, limit int) ([]domain.InwardSupply, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM inward_supplies"); err != nil {
		return nil, 0, fmt.Errorf("inwardRepo.List count: %w", err)
	}

	var supplies []domain.InwardSupply
	err := r.db.SelectContext(ctx, &supplies,
		"SELECT * FROM inward_supplies ORDER BY supply_date DESC, created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("inwardRepo.List: %w", err)
	}
	return supplies, total, nil
}

func (r *inwardRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM inward_supplies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("inwardRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
