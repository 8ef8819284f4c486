package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hisaab/internal/domain"
	"hisaab/internal/gst"
	"hisaab/internal/handler"
	"hisaab/internal/notify"
	"hisaab/internal/port"
	"hisaab/internal/service"
	"hisaab/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, target, body)
	if body != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func invoiceBody(t *testing.T, customerID uuid.UUID) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"customer_id":  customerID.String(),
		"invoice_date": "2025-04-01",
		"items": []map[string]interface{}{
			{"description": "TMT bar", "hsn": "7214", "quantity": "10", "rate": "500", "tax_rate": "18"},
		},
		"payment_mode": "credit",
	})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestInvoiceHandler_Generate_Success(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)
	customerID := uuid.New()

	result := &service.GenerateInvoiceResult{
		Invoice:     &domain.Invoice{ID: uuid.New(), InvoiceNumber: "INV-0001", GrandTotal: decimal.NewFromInt(5900)},
		DownloadURL: "https://bills.example.in/public/invoices/tok",
		Links:       notify.Links{WhatsApp: "https://wa.me/919876543210?text=x"},
	}
	svc.On("Generate", mock.Anything, mock.MatchedBy(func(in service.GenerateInvoiceInput) bool {
		return in.CustomerID == customerID && len(in.Items) == 1 &&
			in.Items[0].Quantity.Equal(decimal.NewFromInt(10)) && in.PaymentMode == domain.PaymentCredit
	})).Return(result, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/invoices", invoiceBody(t, customerID))
	h.Generate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Contains(t, w.Body.String(), `"invoice_number":"INV-0001"`)
	assert.Contains(t, w.Body.String(), "wa.me")
	svc.AssertExpectations(t)
}

func TestInvoiceHandler_Generate_MissingCustomer(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)

	c, w := newTestContext(http.MethodPost, "/api/v1/invoices", bytes.NewReader([]byte(`{"items":[]}`)))
	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestInvoiceHandler_Generate_DomainErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"duplicate number", domain.ErrDuplicateInvoiceNumber, http.StatusConflict, "DUPLICATE_INVOICE_NUMBER"},
		{"no profile", domain.ErrProfileNotConfigured, http.StatusConflict, "PROFILE_NOT_CONFIGURED"},
		{"upload", domain.ErrUploadFailed, http.StatusBadGateway, "UPLOAD_FAILED"},
		{"no items", domain.ErrNoLineItems, http.StatusBadRequest, "NO_LINE_ITEMS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockInvoiceService)
			h := handler.NewInvoiceHandler(svc)
			svc.On("Generate", mock.Anything, mock.AnythingOfType("service.GenerateInvoiceInput")).Return(nil, tt.err)

			c, w := newTestContext(http.MethodPost, "/api/v1/invoices", invoiceBody(t, uuid.New()))
			h.Generate(c)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantErr, decodeResponse(t, w).Error.Code)
		})
	}
}

func TestInvoiceHandler_Preview_Headers(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)

	svc.On("Preview", mock.Anything, mock.AnythingOfType("service.GenerateInvoiceInput")).Return(&service.PreviewResult{
		PDF:       []byte("%PDF-1.3 preview"),
		PageCount: 2,
		Totals:    gst.TaxTotals{GrandTotal: decimal.NewFromInt(5900)},
		Warnings:  []string{"HSN 7214 is taxed at 18%, expected 12%", "HSN 9999 is not a known code"},
	}, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/invoices/preview", invoiceBody(t, uuid.New()))
	h.Preview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, "2", w.Header().Get("X-Page-Count"))
	assert.Equal(t, "5900.00", w.Header().Get("X-Grand-Total"))
	assert.Equal(t, "HSN 7214 is taxed at 18%, expected 12%; HSN 9999 is not a known code", w.Header().Get("X-HSN-Warnings"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inline")
	assert.Equal(t, "%PDF-1.3 preview", w.Body.String())
}

func TestInvoiceHandler_Preview_NoWarningsHeader(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)

	svc.On("Preview", mock.Anything, mock.AnythingOfType("service.GenerateInvoiceInput")).Return(&service.PreviewResult{
		PDF:       []byte("%PDF"),
		PageCount: 1,
	}, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/invoices/preview", invoiceBody(t, uuid.New()))
	h.Preview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-HSN-Warnings"))
	assert.Equal(t, "0.00", w.Header().Get("X-Grand-Total"))
}

func TestInvoiceHandler_List_Filters(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)
	customerID := uuid.New()

	svc.On("List", mock.Anything, mock.MatchedBy(func(f port.InvoiceFilter) bool {
		return f.CustomerID != nil && *f.CustomerID == customerID &&
			f.From != nil && f.From.Format("2006-01-02") == "2025-04-01" && f.To == nil
	}), 0, 50).Return([]domain.Invoice{{InvoiceNumber: "INV-0001"}}, 1, nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/invoices?from=2025-04-01&limit=50&customer_id="+customerID.String(), nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	assert.Equal(t, 50, resp.Meta.Limit)
	svc.AssertExpectations(t)
}

func TestInvoiceHandler_List_BadQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"bad from", "?from=01-04-2025"},
		{"bad to", "?to=yesterday"},
		{"bad customer", "?customer_id=42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockInvoiceService)
			h := handler.NewInvoiceHandler(svc)

			c, w := newTestContext(http.MethodGet, "/api/v1/invoices"+tt.query, nil)
			h.List(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestInvoiceHandler_GetByID_InvalidID(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)

	c, w := newTestContext(http.MethodGet, "/api/v1/invoices/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decodeResponse(t, w).Error.Code)
}

func TestInvoiceHandler_GetByID_NotFound(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)
	id := uuid.New()

	svc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrInvoiceNotFound)

	c, w := newTestContext(http.MethodGet, "/api/v1/invoices/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "INVOICE_NOT_FOUND", decodeResponse(t, w).Error.Code)
}

func TestInvoiceHandler_NextNumber(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)

	svc.On("NextNumber", mock.Anything).Return("INV-0008", nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/invoices/next-number", nil)
	h.NextNumber(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"invoice_number":"INV-0008"`)
}

func TestInvoiceHandler_PDF_Redirect(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)
	id := uuid.New()

	svc.On("GetPDFURL", mock.Anything, id).Return("https://s3.example.com/invoices/x.pdf?sig=1", nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/invoices/"+id.String()+"/pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.PDF(c)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://s3.example.com/invoices/x.pdf?sig=1", w.Header().Get("Location"))
}

func TestInvoiceHandler_PDF_NotAvailable(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)
	id := uuid.New()

	svc.On("GetPDFURL", mock.Anything, id).Return("", domain.ErrPDFNotAvailable)

	c, w := newTestContext(http.MethodGet, "/api/v1/invoices/"+id.String()+"/pdf", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.PDF(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PDF_NOT_AVAILABLE", decodeResponse(t, w).Error.Code)
}

func TestInvoiceHandler_Share(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)
	id := uuid.New()

	svc.On("Share", mock.Anything, id).Return(&service.ShareResult{
		DownloadURL: "https://bills.example.in/public/invoices/tok",
		Links:       notify.Links{Mail: "mailto:patel@example.in"},
	}, nil)

	c, w := newTestContext(http.MethodPost, "/api/v1/invoices/"+id.String()+"/share", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Share(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mailto:patel@example.in")
}

func TestInvoiceHandler_SharedPDF(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		svc := new(mocks.MockInvoiceService)
		h := handler.NewInvoiceHandler(svc)
		svc.On("GetSharedPDFURL", mock.Anything, "good-token").Return("https://s3.example.com/x.pdf", nil)

		c, w := newTestContext(http.MethodGet, "/public/invoices/good-token", nil)
		c.Params = gin.Params{{Key: "token", Value: "good-token"}}
		h.SharedPDF(c)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "https://s3.example.com/x.pdf", w.Header().Get("Location"))
	})

	t.Run("expired token", func(t *testing.T) {
		svc := new(mocks.MockInvoiceService)
		h := handler.NewInvoiceHandler(svc)
		svc.On("GetSharedPDFURL", mock.Anything, "old-token").Return("", domain.ErrInvalidShareToken)

		c, w := newTestContext(http.MethodGet, "/public/invoices/old-token", nil)
		c.Params = gin.Params{{Key: "token", Value: "old-token"}}
		h.SharedPDF(c)

		assert.Equal(t, http.StatusGone, w.Code)
		assert.Equal(t, "INVALID_SHARE_LINK", decodeResponse(t, w).Error.Code)
	})
}

func TestInvoiceHandler_ExportCSV(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)

	svc.On("ExportCSV", mock.Anything, port.InvoiceFilter{}, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(2).(io.Writer), "Invoice Number,Date\nINV-0001,01-04-2025\n")
		}).
		Return(nil)

	c, w := newTestContext(http.MethodGet, "/api/v1/invoices/export", nil)
	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="invoices_`)
	assert.Contains(t, w.Body.String(), "INV-0001")
}
