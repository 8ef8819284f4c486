package service

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hisaab/internal/csvexport"
	"hisaab/internal/domain"
	"hisaab/internal/port"
	"hisaab/internal/validator"
)

// RecordInwardInput is the DTO for a purchase bill.
type RecordInwardInput struct {
	SupplyDate    string          `json:"supply_date"`
	Supplier      string          `json:"supplier" binding:"required"`
	SupplierGSTIN string          `json:"supplier_gstin"`
	BillNumber    string          `json:"bill_number"`
	Value         decimal.Decimal `json:"value"`
	Note          string          `json:"note"`
}

// InwardService records supplier purchases.
type InwardService interface {
	Record(ctx context.Context, input RecordInwardInput) (*domain.InwardSupply, error)
	List(ctx context.Context, offset, limit int) ([]domain.InwardSupply, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Export(ctx context.Context, w io.Writer) error
}

type inwardService struct {
	repo       port.InwardSupplyRepository
	dateFormat string
	now        func() time.Time
}

// NewInwardService creates a new InwardService implementation.
func NewInwardService(repo port.InwardSupplyRepository, dateFormat string) InwardService {
	return &inwardService{repo: repo, dateFormat: dateFormat, now: time.Now}
}

func (s *inwardService) Record(ctx context.Context, input RecordInwardInput) (*domain.InwardSupply, error) {
	date, err := parseDate(input.SupplyDate, s.now())
	if err != nil {
		return nil, err
	}
	supply := &domain.InwardSupply{
		SupplyDate:    date,
		Supplier:      strings.TrimSpace(input.Supplier),
		SupplierGSTIN: upper(input.SupplierGSTIN),
		BillNumber:    strings.TrimSpace(input.BillNumber),
		Value:         input.Value,
		Note:          strings.TrimSpace(input.Note),
	}
	if err := validator.InwardSupply(supply); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, supply); err != nil {
		return nil, err
	}
	return supply, nil
}

func (s *inwardService) List(ctx context.Context, offset, limit int) ([]domain.InwardSupply, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *inwardService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// exportPageSize bounds each register read during an export.
const exportPageSize = 500

func (s *inwardService) Export(ctx context.Context, w io.Writer) error {
	if _, err := w.Write(csvexport.BOM); err != nil {
		return err
	}
	cw := csvexport.NewWriter(w, s.dateFormat)
	if err := cw.WriteInwardHeader(); err != nil {
		return err
	}
	for offset := 0; ; offset += exportPageSize {
		supplies, total, err := s.repo.List(ctx, offset, exportPageSize)
		if err != nil {
			return err
		}
		if err := cw.WriteInwardSupplies(supplies); err != nil {
			return err
		}
		if len(supplies) == 0 || offset+len(supplies) >= total {
			break
		}
	}
	cw.Flush()
	return cw.Error()
}
