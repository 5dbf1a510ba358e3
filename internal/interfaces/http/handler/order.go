package handler

import (
	tradeapp "github.com/almacen/backend/internal/application/trade"
	"github.com/almacen/backend/internal/domain/trade"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler exposes the order endpoints for one order kind. The
// router mounts one instance under /purchases and another under
// /sales; both share the same OrderService.
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
	kind         trade.OrderKind
}

// NewPurchaseHandler creates an OrderHandler for purchase orders
func NewPurchaseHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, kind: trade.OrderKindPurchase}
}

// NewSaleHandler creates an OrderHandler for sale orders
func NewSaleHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, kind: trade.OrderKindSale}
}

// Create handles POST /purchases and POST /sales
func (h *OrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	var (
		order *tradeapp.OrderResponse
		err   error
	)
	if h.kind == trade.OrderKindPurchase {
		order, err = h.orderService.CreatePurchase(c.Request.Context(), req)
	} else {
		order, err = h.orderService.CreateSale(c.Request.Context(), req)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID handles GET /:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByNumber handles GET /number/:number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	order, err := h.orderService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List handles GET / with pagination and filters
func (h *OrderHandler) List(c *gin.Context) {
	var filter tradeapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), h.kind, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// StatusSummary handles GET /summary
func (h *OrderHandler) StatusSummary(c *gin.Context) {
	summary, err := h.orderService.StatusSummary(c.Request.Context(), h.kind)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Confirm handles POST /:id/confirm
func (h *OrderHandler) Confirm(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	// The body is optional; confirming without one settles in cash.
	var req tradeapp.ConfirmOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	order, err := h.orderService.Confirm(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Cancel handles POST /:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req tradeapp.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// AddLine handles POST /:id/lines
func (h *OrderHandler) AddLine(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req tradeapp.AddOrderLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.AddLine(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// UpdateLine handles PUT /:id/lines/:lineId
func (h *OrderHandler) UpdateLine(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req tradeapp.UpdateOrderLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orderService.UpdateLine(c.Request.Context(), orderID, lineID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// RemoveLine handles DELETE /:id/lines/:lineId
func (h *OrderHandler) RemoveLine(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	order, err := h.orderService.RemoveLine(c.Request.Context(), orderID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
