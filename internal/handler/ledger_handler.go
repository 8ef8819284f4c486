package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hisaab/internal/service"
)

// LedgerHandler handles receipts and customer balances.
type LedgerHandler struct {
	ledgerService service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// RecordReceipt handles POST /api/v1/receipts
// @Summary      Record a payment received
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        body body service.RecordReceiptInput true "Receipt"
// @Success      201 {object} APIResponse{data=domain.Receipt}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Router       /receipts [post]
func (h *LedgerHandler) RecordReceipt(c *gin.Context) {
	var req service.RecordReceiptInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "customer_id and amount are required")
		return
	}

	receipt, err := h.ledgerService.RecordReceipt(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, receipt)
}

// CustomerLedger handles GET /api/v1/customers/:id/ledger
// @Summary      Customer ledger
// @Tags         ledger
// @Produce      json
// @Param        id path string true "Customer ID"
// @Success      200 {object} APIResponse{data=service.CustomerLedger}
// @Failure      404 {object} APIResponse
// @Router       /customers/{id}/ledger [get]
func (h *LedgerHandler) CustomerLedger(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
		return
	}

	ledger, err := h.ledgerService.CustomerLedger(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ledger)
}

// Balances handles GET /api/v1/ledger/balances
// @Summary      Pending balance of every customer
// @Tags         ledger
// @Produce      json
// @Success      200 {object} APIResponse{data=[]domain.CustomerBalance}
// @Router       /ledger/balances [get]
func (h *LedgerHandler) Balances(c *gin.Context) {
	balances, err := h.ledgerService.Balances(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, balances)
}
