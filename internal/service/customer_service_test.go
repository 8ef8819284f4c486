package service_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hisaab/internal/domain"
	"hisaab/internal/service"
	"hisaab/internal/xlsxio"
	"hisaab/mocks"
)

func TestCustomerService_Create(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Customer")).Return(nil)

	c, err := service.NewCustomerService(repo).Create(context.Background(), service.CustomerInput{
		Name:   " Patel & Sons ",
		GSTIN:  "27aapfu0939f1zv",
		Mobile: "9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, "Patel & Sons", c.Name)
	assert.Equal(t, "27AAPFU0939F1ZV", c.GSTIN)
	assert.Equal(t, "Maharashtra", c.State)
}

func TestCustomerService_Create_Invalid(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)

	_, err := service.NewCustomerService(repo).Create(context.Background(), service.CustomerInput{
		Name:   "Patel & Sons",
		Mobile: "98765",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCustomer)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCustomerService_Update(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Customer{ID: id, Name: "Old"}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Customer")).Return(nil)

	c, err := service.NewCustomerService(repo).Update(context.Background(), id, service.CustomerInput{
		Name:  "New Name",
		State: "Kerala",
	})
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.Equal(t, "New Name", c.Name)
	assert.Equal(t, "Kerala", c.State)
}

func TestCustomerService_Update_NotFound(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrCustomerNotFound)

	_, err := service.NewCustomerService(repo).Update(context.Background(), id, service.CustomerInput{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomerService_List_TrimsSearch(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	repo.On("List", mock.Anything, "patel", 0, 20).Return([]domain.Customer{{Name: "Patel & Sons"}}, 1, nil)

	list, total, err := service.NewCustomerService(repo).List(context.Background(), "  patel ", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)
}

func TestCustomerService_Import(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsxio.WriteCustomers(&buf, []domain.Customer{
		{Name: "Patel & Sons", GSTIN: "24aapfu0939f1zv", Mobile: "9876543210"},
		{Name: "Bad Mobile", Mobile: "12"},
		{Name: "Desai Agencies", State: "Goa"},
	}))

	repo := new(mocks.MockCustomerRepo)
	repo.On("UpsertByName", mock.Anything, mock.MatchedBy(func(cs []domain.Customer) bool {
		return len(cs) == 2 &&
			cs[0].Name == "Patel & Sons" && cs[0].GSTIN == "24AAPFU0939F1ZV" && cs[0].State == "Gujarat" &&
			cs[1].Name == "Desai Agencies"
	})).Return(2, nil)

	res, err := service.NewCustomerService(repo).Import(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, 3, res.Skipped[0].Row)
	assert.Contains(t, res.Skipped[0].Message, "mobile")
	repo.AssertExpectations(t)
}

func TestCustomerService_Import_NothingValid(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsxio.WriteCustomers(&buf, []domain.Customer{{Name: "Bad", Email: "not-an-email"}}))

	repo := new(mocks.MockCustomerRepo)
	res, err := service.NewCustomerService(repo).Import(context.Background(), &buf)
	require.NoError(t, err)
	assert.Zero(t, res.Imported)
	assert.Len(t, res.Skipped, 1)
	repo.AssertNotCalled(t, "UpsertByName", mock.Anything, mock.Anything)
}

func TestCustomerService_Import_NotASpreadsheet(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	_, err := service.NewCustomerService(repo).Import(context.Background(), bytes.NewBufferString("name,gstin\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidSpreadsheet)
}

func TestCustomerService_Export(t *testing.T) {
	repo := new(mocks.MockCustomerRepo)
	repo.On("ListAll", mock.Anything).Return([]domain.Customer{{Name: "Patel & Sons", State: "Gujarat"}}, nil)

	var buf bytes.Buffer
	require.NoError(t, service.NewCustomerService(repo).Export(context.Background(), &buf))

	rows, skipped, err := xlsxio.ReadCustomers(&buf)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, rows, 1)
	assert.Equal(t, "Patel & Sons", rows[0].Customer.Name)
}
