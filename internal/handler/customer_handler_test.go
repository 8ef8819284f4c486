package handler_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hisaab/internal/domain"
	"hisaab/internal/handler"
	"hisaab/internal/service"
	"hisaab/internal/xlsxio"
	"hisaab/mocks"
)

func TestCustomerHandler_Create(t *testing.T) {
	svc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(svc)

	input := service.CustomerInput{Name: "Patel Hardware", GSTIN: "24AAPFU0939F1ZV", Mobile: "9876543210"}
	svc.On("Create", mock.Anything, input).Return(&domain.Customer{ID: uuid.New(), Name: "Patel Hardware", State: "Gujarat"}, nil)

	body := []byte(`{"name":"Patel Hardware","gstin":"24AAPFU0939F1ZV","mobile":"9876543210"}`)
	c, w := newTestContext(http.MethodPost, "/api/v1/customers", bytes.NewReader(body))
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"Gujarat"`)
	svc.AssertExpectations(t)
}

func TestCustomerHandler_Create_MissingName(t *testing.T) {
	svc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(svc)

	c, w := newTestContext(http.MethodPost, "/api/v1/customers", bytes.NewReader([]byte(`{"mobile":"9876543210"}`)))
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCustomerHandler_Create_ValidationFields(t *testing.T) {
	svc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(svc)

	svc.On("Create", mock.Anything, mock.AnythingOfType("service.CustomerInput")).Return(nil, domain.ErrInvalidCustomer)

	c, w := newTestContext(http.MethodPost, "/api/v1/customers", bytes.NewReader([]byte(`{"name":"X","mobile":"123"}`)))
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_CUSTOMER", decodeResponse(t, w).Error.Code)
}

func TestCustomerHandler_List(t *testing.T) {
	svc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(svc)

	svc.On("List", mock.Anything, "patel", 20, 20).Return([]domain.Customer{{Name: "Patel Hardware"}}, 21, nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/customers?q=patel&offset=20", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 21, resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.Offset)
}

func TestCustomerHandler_Delete_NotFound(t *testing.T) {
	svc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(svc)
	id := uuid.New()

	svc.On("Delete", mock.Anything, id).Return(domain.ErrCustomerNotFound)

	c, w := newTestContext(http.MethodDelete, "/api/v1/customers/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CUSTOMER_NOT_FOUND", decodeResponse(t, w).Error.Code)
}

func multipartUpload(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCustomerHandler_Import(t *testing.T) {
	svc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(svc)

	svc.On("Import", mock.Anything, mock.Anything).Return(&service.ImportResult{
		Imported: 2,
		Skipped:  []xlsxio.RowError{{Row: 3, Message: "mobile: \"123\" is not a valid mobile number"}},
	}, nil)

	body, contentType := multipartUpload(t, "file", "customers.xlsx", []byte("workbook"))
	c, w := newTestContext(http.MethodPost, "/api/v1/customers/import", body)
	c.Request.Header.Set("Content-Type", contentType)
	h.Import(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"imported":2`)
	svc.AssertExpectations(t)
}

func TestCustomerHandler_Import_MissingFile(t *testing.T) {
	svc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(svc)

	body, contentType := multipartUpload(t, "upload", "customers.xlsx", []byte("workbook"))
	c, w := newTestContext(http.MethodPost, "/api/v1/customers/import", body)
	c.Request.Header.Set("Content-Type", contentType)
	h.Import(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Import", mock.Anything, mock.Anything)
}

func TestCustomerHandler_Import_BadWorkbook(t *testing.T) {
	svc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(svc)

	svc.On("Import", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidSpreadsheet)

	body, contentType := multipartUpload(t, "file", "notes.txt", []byte("plain text"))
	c, w := newTestContext(http.MethodPost, "/api/v1/customers/import", body)
	c.Request.Header.Set("Content-Type", contentType)
	h.Import(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_SPREADSHEET", decodeResponse(t, w).Error.Code)
}

func TestCustomerHandler_ExportAndTemplate(t *testing.T) {
	svc := new(mocks.MockCustomerService)
	h := handler.NewCustomerHandler(svc)

	write := func(args mock.Arguments) {
		for _, a := range args {
			if w, ok := a.(io.Writer); ok {
				_, _ = w.Write([]byte("PK\x03\x04"))
			}
		}
	}
	svc.On("Export", mock.Anything, mock.Anything).Run(write).Return(nil)
	svc.On("Template", mock.Anything).Run(write).Return(nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/customers/export", nil)
	h.Export(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="customers_`)
	assert.Equal(t, "PK\x03\x04", w.Body.String())

	c, w = newTestContext(http.MethodGet, "/api/v1/customers/template", nil)
	h.Template(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="customer_template.xlsx"`, w.Header().Get("Content-Disposition"))
}
