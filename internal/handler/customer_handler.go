package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hisaab/internal/csvexport"
	"hisaab/internal/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxImportSize   = 5 << 20
)

// CustomerHandler handles customer master endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create handles POST /api/v1/customers
// @Summary      Create customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body body service.CustomerInput true "Customer"
// @Success      201 {object} APIResponse{data=domain.Customer}
// @Failure      400 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req service.CustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, customer)
}

// List handles GET /api/v1/customers
// @Summary      List customers
// @Tags         customers
// @Produce      json
// @Param        q query string false "Search by name or mobile"
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]domain.Customer,meta=PagMeta}
// @Router       /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	customers, total, err := h.customerService.List(c.Request.Context(), c.Query("q"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, customers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/customers/:id
// @Summary      Get customer
// @Tags         customers
// @Produce      json
// @Param        id path string true "Customer ID"
// @Success      200 {object} APIResponse{data=domain.Customer}
// @Failure      404 {object} APIResponse
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, customer)
}

// Update handles PUT /api/v1/customers/:id
// @Summary      Update customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id path string true "Customer ID"
// @Param        body body service.CustomerInput true "Customer"
// @Success      200 {object} APIResponse{data=domain.Customer}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
		return
	}

	var req service.CustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), id, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, customer)
}

// Delete handles DELETE /api/v1/customers/:id
// @Summary      Delete customer
// @Tags         customers
// @Param        id path string true "Customer ID"
// @Success      200 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "customer deleted"})
}

// Import handles POST /api/v1/customers/import
// @Summary      Import customers from an Excel workbook
// @Description  Rows are matched on customer name; existing customers are updated.
// @Tags         customers
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Workbook based on the customer template"
// @Success      200 {object} APIResponse{data=service.ImportResult}
// @Failure      400 {object} APIResponse
// @Router       /customers/import [post]
func (h *CustomerHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxImportSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "workbook exceeds 5 MB")
		return
	}

	result, err := h.customerService.Import(c.Request.Context(), file)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Export handles GET /api/v1/customers/export
// @Summary      Export customers as an Excel workbook
// @Tags         customers
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} file
// @Router       /customers/export [get]
func (h *CustomerHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.customerService.Export(c.Request.Context(), &buf); err != nil {
		HandleError(c, err)
		return
	}
	sendAttachment(c, csvexport.BuildFilename("customers", "xlsx", time.Now()), xlsxContentType, buf.Bytes())
}

// Template handles GET /api/v1/customers/template
// @Summary      Download the empty customer import template
// @Tags         customers
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200 {file} file
// @Router       /customers/template [get]
func (h *CustomerHandler) Template(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.customerService.Template(&buf); err != nil {
		HandleError(c, err)
		return
	}
	sendAttachment(c, "customer_template.xlsx", xlsxContentType, buf.Bytes())
}

func sendAttachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
