package handler

import (
	cashapp "github.com/almacen/backend/internal/application/cashbox"
	"github.com/gin-gonic/gin"
)

// CashHandler handles cash movement endpoints
type CashHandler struct {
	BaseHandler
	cashService *cashapp.CashService
}

// NewCashHandler creates a new CashHandler
func NewCashHandler(cashService *cashapp.CashService) *CashHandler {
	return &CashHandler{cashService: cashService}
}

// RecordMovement handles POST /cash/movements
func (h *CashHandler) RecordMovement(c *gin.Context) {
	var req cashapp.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	movement, err := h.cashService.RecordMovement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, movement)
}

// GetByID handles GET /cash/movements/:id
func (h *CashHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid movement ID format")
		return
	}

	movement, err := h.cashService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movement)
}

// List handles GET /cash/movements
func (h *CashHandler) List(c *gin.Context) {
	var filter cashapp.CashMovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	movements, total, err := h.cashService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}

// ListByReference handles GET /cash/movements/reference/:reference
func (h *CashHandler) ListByReference(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		h.BadRequest(c, "Reference is required")
		return
	}

	movements, err := h.cashService.ListByReference(c.Request.Context(), reference)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movements)
}

// Balance handles GET /cash/balance
func (h *CashHandler) Balance(c *gin.Context) {
	balance, err := h.cashService.Balance(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}
