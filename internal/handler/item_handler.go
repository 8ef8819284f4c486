package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hisaab/internal/service"
)

// ItemHandler handles item master endpoints.
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// Create handles POST /api/v1/items
// @Summary      Create item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        body body service.ItemInput true "Item"
// @Success      201 {object} APIResponse{data=domain.Item}
// @Failure      400 {object} APIResponse
// @Failure      409 {object} APIResponse
// @Router       /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req service.ItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, item)
}

// List handles GET /api/v1/items
// @Summary      List items
// @Tags         items
// @Produce      json
// @Param        offset query int false "Pagination offset" default(0)
// @Param        limit query int false "Pagination limit" default(20)
// @Success      200 {object} APIResponse{data=[]domain.Item,meta=PagMeta}
// @Router       /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	items, total, err := h.itemService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/items/:id
// @Summary      Get item
// @Tags         items
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} APIResponse{data=domain.Item}
// @Failure      404 {object} APIResponse
// @Router       /items/{id} [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item ID")
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, item)
}

// Update handles PUT /api/v1/items/:id
// @Summary      Update item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        body body service.ItemInput true "Item"
// @Success      200 {object} APIResponse{data=domain.Item}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Router       /items/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item ID")
		return
	}

	var req service.ItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "name is required")
		return
	}

	item, err := h.itemService.Update(c.Request.Context(), id, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, item)
}

// Delete handles DELETE /api/v1/items/:id
// @Summary      Delete item
// @Tags         items
// @Param        id path string true "Item ID"
// @Success      200 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Router       /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item ID")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "item deleted"})
}
