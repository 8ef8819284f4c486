package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hisaab/internal/csvexport"
	"hisaab/internal/port"
	"hisaab/internal/service"
)

// InvoiceHandler handles invoice generation and the invoice register.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// parseInvoiceFilter extracts the register filters from query params.
func parseInvoiceFilter(c *gin.Context) (port.InvoiceFilter, error) {
	var f port.InvoiceFilter
	if fromStr := c.Query("from"); fromStr != "" {
		t, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return f, fmt.Errorf("invalid 'from' date: must be YYYY-MM-DD")
		}
		f.From = &t
	}
	if toStr := c.Query("to"); toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return f, fmt.Errorf("invalid 'to' date: must be YYYY-MM-DD")
		}
		f.To = &t
	}
	if cidStr := c.Query("customer_id"); cidStr != "" {
		cid, err := uuid.Parse(cidStr)
		if err != nil {
			return f, fmt.Errorf("invalid 'customer_id': must be a valid UUID")
		}
		f.CustomerID = &cid
	}
	return f, nil
}

// Generate handles POST /api/v1/invoices
// @Summary      Generate invoice
// @Description  Computes GST, renders the PDF, stores it and returns share links.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body body service.GenerateInvoiceInput true "Invoice"
// @Success      201 {object} APIResponse{data=service.GenerateInvoiceResult}
// @Failure      400 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Failure      502 {object} APIResponse
// @Router       /invoices [post]
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var req service.GenerateInvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "customer_id and items are required")
		return
	}

	result, err := h.invoiceService.Generate(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, result)
}

// Preview handles POST /api/v1/invoices/preview
// @Summary      Preview invoice PDF
// @Description  Renders the invoice without saving it. Page count and HSN warnings are returned in headers.
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Param        body body service.GenerateInvoiceInput true "Invoice"
// @Success      200 {file} file
// @Failure      400 {object} APIResponse
// @Router       /invoices/preview [post]
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var req service.GenerateInvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "customer_id and items are required")
		return
	}

	result, err := h.invoiceService.Preview(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("X-Page-Count", strconv.Itoa(result.PageCount))
	c.Header("X-Grand-Total", result.Totals.GrandTotal.StringFixed(2))
	if len(result.Warnings) > 0 {
		c.Header("X-HSN-Warnings", strings.Join(result.Warnings, "; "))
	}
	c.Header("Content-Disposition", `inline; filename="preview.pdf"`)
	c.Data(http.StatusOK, "application/pdf", result.PDF)
}

// List handles GET /api/v1/invoices
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        customer_id query string false "Customer UUID"
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]domain.Invoice,meta=PagMeta}
// @Failure      400 {object} APIResponse
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	filter, err := parseInvoiceFilter(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	offset, limit := parsePagination(c)

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary      Get invoice
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Success      200 {object} APIResponse{data=domain.Invoice}
// @Failure      404 {object} APIResponse
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// NextNumber handles GET /api/v1/invoices/next-number
// @Summary      Suggest the next invoice number
// @Tags         invoices
// @Produce      json
// @Success      200 {object} APIResponse
// @Router       /invoices/next-number [get]
func (h *InvoiceHandler) NextNumber(c *gin.Context) {
	number, err := h.invoiceService.NextNumber(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"invoice_number": number})
}

// PDF handles GET /api/v1/invoices/:id/pdf
// @Summary      Download invoice PDF
// @Description  Redirects to a short-lived presigned storage URL.
// @Tags         invoices
// @Param        id path string true "Invoice ID"
// @Success      302
// @Failure      404 {object} APIResponse
// @Router       /invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	url, err := h.invoiceService.GetPDFURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// Share handles POST /api/v1/invoices/:id/share
// @Summary      Create fresh share links for an invoice
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Success      200 {object} APIResponse{data=service.ShareResult}
// @Failure      404 {object} APIResponse
// @Router       /invoices/{id}/share [post]
func (h *InvoiceHandler) Share(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	result, err := h.invoiceService.Share(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// ExportCSV handles GET /api/v1/invoices/export
// @Summary      Export the invoice register as CSV
// @Tags         invoices
// @Produce      text/csv
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        customer_id query string false "Customer UUID"
// @Success      200 {file} file
// @Failure      400 {object} APIResponse
// @Router       /invoices/export [get]
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	filter, err := parseInvoiceFilter(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := h.invoiceService.ExportCSV(c.Request.Context(), filter, &buf); err != nil {
		HandleError(c, err)
		return
	}
	sendAttachment(c, csvexport.BuildFilename("invoices", "csv", time.Now()), "text/csv; charset=utf-8", buf.Bytes())
}

// SharedPDF handles GET /public/invoices/:token
// @Summary      Open a shared invoice
// @Description  Public link sent to buyers; redirects to the stored PDF.
// @Tags         public
// @Param        token path string true "Share token"
// @Success      302
// @Failure      410 {object} APIResponse
// @Router       /public/invoices/{token} [get]
func (h *InvoiceHandler) SharedPDF(c *gin.Context) {
	url, err := h.invoiceService.GetSharedPDFURL(c.Request.Context(), c.Param("token"))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
