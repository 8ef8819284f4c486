package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"hisaab/internal/domain"
	"hisaab/internal/port"
	"hisaab/internal/validator"
)

// ItemInput is the DTO for creating or replacing an item master record.
type ItemInput struct {
	Name    string          `json:"name" binding:"required"`
	HSN     string          `json:"hsn"`
	UOM     string          `json:"uom"`
	Price   decimal.Decimal `json:"price"`
	TaxRate decimal.Decimal `json:"tax_rate"`
}

// ItemService manages the item master.
type ItemService interface {
	Create(ctx context.Context, input ItemInput) (*domain.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, offset, limit int) ([]domain.Item, int, error)
	Update(ctx context.Context, id uuid.UUID, input ItemInput) (*domain.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type itemService struct {
	repo port.ItemRepository
}

// NewItemService creates a new ItemService implementation.
func NewItemService(repo port.ItemRepository) ItemService {
	return &itemService{repo: repo}
}

func (in ItemInput) apply(it *domain.Item) {
	it.Name = strings.TrimSpace(in.Name)
	it.HSN = strings.TrimSpace(in.HSN)
	it.UOM = strings.TrimSpace(in.UOM)
	it.Price = in.Price
	it.TaxRate = in.TaxRate
}

func (s *itemService) Create(ctx context.Context, input ItemInput) (*domain.Item, error) {
	item := &domain.Item{}
	input.apply(item)
	if err := validator.Item(item); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *itemService) List(ctx context.Context, offset, limit int) ([]domain.Item, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *itemService) Update(ctx context.Context, id uuid.UUID, input ItemInput) (*domain.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(item)
	if err := validator.Item(item); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
