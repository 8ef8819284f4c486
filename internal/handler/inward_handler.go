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

// InwardHandler handles the inward supply (purchase) register.
type InwardHandler struct {
	inwardService service.InwardService
}

// NewInwardHandler creates a new InwardHandler.
func NewInwardHandler(inwardService service.InwardService) *InwardHandler {
	return &InwardHandler{inwardService: inwardService}
}

// Record handles POST /api/v1/inward
// @Summary      Record an inward supply
// @Tags         inward
// @Accept       json
// @Produce      json
// @Param        body body service.RecordInwardInput true "Purchase bill"
// @Success      201 {object} APIResponse{data=domain.InwardSupply}
// @Failure      400 {object} APIResponse
// @Router       /inward [post]
func (h *InwardHandler) Record(c *gin.Context) {
	var req service.RecordInwardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "supplier and value are required")
		return
	}

	supply, err := h.inwardService.Record(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, supply)
}

// List handles GET /api/v1/inward
// @Summary      List inward supplies
// @Tags         inward
// @Produce      json
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]domain.InwardSupply,meta=PagMeta}
// @Router       /inward [get]
func (h *InwardHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	supplies, total, err := h.inwardService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, supplies, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Delete handles DELETE /api/v1/inward/:id
// @Summary      Delete an inward supply
// @Tags         inward
// @Param        id path string true "Inward supply ID"
// @Success      200 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Router       /inward/{id} [delete]
func (h *InwardHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid inward supply ID")
		return
	}

	if err := h.inwardService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "inward supply deleted"})
}

// Export handles GET /api/v1/inward/export
// @Summary      Export inward supplies as CSV
// @Tags         inward
// @Produce      text/csv
// @Success      200 {file} file
// @Router       /inward/export [get]
func (h *InwardHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.inwardService.Export(c.Request.Context(), &buf); err != nil {
		HandleError(c, err)
		return
	}
	sendAttachment(c, csvexport.BuildFilename("inward_supplies", "csv", time.Now()), "text/csv; charset=utf-8", buf.Bytes())
}
