package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hisaab/internal/domain"
	"hisaab/internal/handler"
	"hisaab/internal/validator"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrCustomerNotFound, http.StatusNotFound, "CUSTOMER_NOT_FOUND"},
		{domain.ErrInvoiceNotFound, http.StatusNotFound, "INVOICE_NOT_FOUND"},
		{domain.ErrItemNotFound, http.StatusNotFound, "ITEM_NOT_FOUND"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrProfileNotConfigured, http.StatusConflict, "PROFILE_NOT_CONFIGURED"},
		{domain.ErrDuplicateCustomer, http.StatusConflict, "DUPLICATE_CUSTOMER"},
		{domain.ErrDuplicateItem, http.StatusConflict, "DUPLICATE_ITEM"},
		{domain.ErrInvalidLineItem, http.StatusBadRequest, "INVALID_LINE_ITEM"},
		{domain.ErrInvalidProfile, http.StatusBadRequest, "INVALID_PROFILE"},
		{domain.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
		{domain.ErrInvalidPaymentMode, http.StatusBadRequest, "INVALID_PAYMENT_MODE"},
		{domain.ErrInvalidInwardSupply, http.StatusBadRequest, "INVALID_INWARD_SUPPLY"},
		{domain.ErrInvalidDate, http.StatusBadRequest, "INVALID_DATE"},
		{domain.ErrRenderFailed, http.StatusInternalServerError, "RENDER_FAILED"},
		{fmt.Errorf("invoiceService.Generate: %w", domain.ErrDuplicateInvoiceNumber), http.StatusConflict, "DUPLICATE_INVOICE_NUMBER"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{context.DeadlineExceeded, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestHandleError_FieldDetails(t *testing.T) {
	fields := validator.FieldErrors{
		{Field: "gstin", Message: `"24ABC" is not a valid GSTIN`},
		{Field: "mobile", Message: "is required"},
	}
	err := fmt.Errorf("%w: %w", domain.ErrInvalidProfile, fields)

	c, w := newTestContext(http.MethodPut, "/api/v1/profile", nil)
	handler.HandleError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_PROFILE", resp.Error.Code)
	require.Len(t, resp.Error.Fields, 2)
	assert.Equal(t, "gstin", resp.Error.Fields[0].Field)
	assert.Equal(t, "mobile", resp.Error.Fields[1].Field)
}

func TestHandleError_NoFieldsForPlainErrors(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/api/v1/customers/x", nil)
	handler.HandleError(c, domain.ErrCustomerNotFound)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Empty(t, resp.Error.Fields)
	assert.NotContains(t, w.Body.String(), `"fields"`)
}
