package service

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"hisaab/internal/domain"
	"hisaab/internal/gst"
	"hisaab/internal/port"
	"hisaab/internal/validator"
	"hisaab/internal/xlsxio"
)

// CustomerInput is the DTO for creating or replacing a customer.
type CustomerInput struct {
	Name     string `json:"name" binding:"required"`
	GSTIN    string `json:"gstin"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	Address3 string `json:"address3"`
	State    string `json:"state"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
}

// ImportResult summarizes a spreadsheet import.
type ImportResult struct {
	Imported int               `json:"imported"`
	Skipped  []xlsxio.RowError `json:"skipped"`
}

// CustomerService manages the customer master.
type CustomerService interface {
	Create(ctx context.Context, input CustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, id uuid.UUID, input CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Import(ctx context.Context, r io.Reader) (*ImportResult, error)
	Export(ctx context.Context, w io.Writer) error
	Template(w io.Writer) error
}

type customerService struct {
	repo port.CustomerRepository
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(repo port.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

// normalizeCustomer trims fields, upper-cases the GSTIN and fills a missing
// state from the GSTIN's state code.
func normalizeCustomer(c *domain.Customer) {
	c.Name = strings.TrimSpace(c.Name)
	c.GSTIN = upper(c.GSTIN)
	c.Address1 = strings.TrimSpace(c.Address1)
	c.Address2 = strings.TrimSpace(c.Address2)
	c.Address3 = strings.TrimSpace(c.Address3)
	c.State = strings.TrimSpace(c.State)
	c.Mobile = strings.TrimSpace(c.Mobile)
	c.Email = strings.TrimSpace(c.Email)
	if c.State == "" && validator.GSTIN(c.GSTIN) {
		c.State = gst.StateName(c.GSTIN[:2])
	}
}

func (in CustomerInput) apply(c *domain.Customer) {
	c.Name = in.Name
	c.GSTIN = in.GSTIN
	c.Address1 = in.Address1
	c.Address2 = in.Address2
	c.Address3 = in.Address3
	c.State = in.State
	c.Mobile = in.Mobile
	c.Email = in.Email
	normalizeCustomer(c)
}

func (s *customerService) Create(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	c := &domain.Customer{}
	input.apply(c)
	if err := validator.Customer(c); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, int, error) {
	return s.repo.List(ctx, strings.TrimSpace(search), offset, limit)
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, input CustomerInput) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(c)
	if err := validator.Customer(c); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Import upserts customers by name from an uploaded workbook. Rows that fail
// validation are reported in the result and do not abort the import.
func (s *customerService) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	rows, skipped, err := xlsxio.ReadCustomers(r)
	if err != nil {
		return nil, err
	}

	valid := make([]domain.Customer, 0, len(rows))
	for i := range rows {
		c := rows[i].Customer
		normalizeCustomer(&c)
		if err := validator.Customer(&c); err != nil {
			var fe validator.FieldErrors
			msg := err.Error()
			if errors.As(err, &fe) {
				msg = fe.Error()
			}
			skipped = append(skipped, xlsxio.RowError{Row: rows[i].Row, Message: msg})
			continue
		}
		valid = append(valid, c)
	}

	result := &ImportResult{Skipped: skipped}
	if len(valid) == 0 {
		return result, nil
	}
	n, err := s.repo.UpsertByName(ctx, valid)
	if err != nil {
		return nil, err
	}
	result.Imported = n
	log.Printf("customerService.Import: imported %d customers, skipped %d rows", n, len(skipped))
	return result, nil
}

func (s *customerService) Export(ctx context.Context, w io.Writer) error {
	customers, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	return xlsxio.WriteCustomers(w, customers)
}

func (s *customerService) Template(w io.Writer) error {
	return xlsxio.WriteTemplate(w)
}
