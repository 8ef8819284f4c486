package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hisaab/internal/domain"
	"hisaab/internal/validator"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Fields  []validator.FieldError `json:"fields,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "CUSTOMER_NOT_FOUND", "customer not found"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, "ITEM_NOT_FOUND", "item not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrProfileNotConfigured):
		return http.StatusConflict, "PROFILE_NOT_CONFIGURED", "set up the seller profile before issuing invoices"
	case errors.Is(err, domain.ErrDuplicateInvoiceNumber):
		return http.StatusConflict, "DUPLICATE_INVOICE_NUMBER", "invoice number already exists"
	case errors.Is(err, domain.ErrDuplicateCustomer):
		return http.StatusConflict, "DUPLICATE_CUSTOMER", "a customer with this name already exists"
	case errors.Is(err, domain.ErrDuplicateItem):
		return http.StatusConflict, "DUPLICATE_ITEM", "an item with this name already exists"
	case errors.Is(err, domain.ErrNoLineItems):
		return http.StatusBadRequest, "NO_LINE_ITEMS", "invoice must have at least one line item"
	case errors.Is(err, domain.ErrInvalidLineItem):
		return http.StatusBadRequest, "INVALID_LINE_ITEM", "one or more line items are invalid"
	case errors.Is(err, domain.ErrInvalidProfile):
		return http.StatusBadRequest, "INVALID_PROFILE", "seller profile is invalid"
	case errors.Is(err, domain.ErrInvalidCustomer):
		return http.StatusBadRequest, "INVALID_CUSTOMER", "customer is invalid"
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT", "amount must be greater than zero"
	case errors.Is(err, domain.ErrInvalidPaymentMode):
		return http.StatusBadRequest, "INVALID_PAYMENT_MODE", "payment mode must be cash, online or credit"
	case errors.Is(err, domain.ErrInvalidInwardSupply):
		return http.StatusBadRequest, "INVALID_INWARD_SUPPLY", "inward supply is invalid"
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest, "INVALID_DATE", "date must be YYYY-MM-DD or DD-MM-YYYY"
	case errors.Is(err, domain.ErrInvalidSpreadsheet):
		return http.StatusBadRequest, "INVALID_SPREADSHEET", "spreadsheet could not be read; use the customer template"
	case errors.Is(err, domain.ErrInvalidShareToken):
		return http.StatusGone, "INVALID_SHARE_LINK", "this download link is invalid or has expired"
	case errors.Is(err, domain.ErrPDFNotAvailable):
		return http.StatusNotFound, "PDF_NOT_AVAILABLE", "invoice pdf is not available"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusBadGateway, "UPLOAD_FAILED", "invoice pdf could not be stored"
	case errors.Is(err, domain.ErrRenderFailed):
		return http.StatusInternalServerError, "RENDER_FAILED", "invoice document could not be rendered"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Validation failures carry their field-level details.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	apiErr := &APIError{Code: code, Message: msg}
	var fields validator.FieldErrors
	if errors.As(err, &fields) {
		apiErr.Fields = fields
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
