package handler

import (
	"strconv"

	inventoryapp "github.com/almacen/backend/internal/application/inventory"
	"github.com/almacen/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// StockHandler handles stock and stock movement endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService) *StockHandler {
	return &StockHandler{stockService: stockService}
}

// GetStock handles GET /stock/:id where :id is a product ID
func (h *StockHandler) GetStock(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	stock, err := h.stockService.GetStock(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// ListStock handles GET /stock
func (h *StockHandler) ListStock(c *gin.Context) {
	filter := shared.DefaultFilter()
	if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if pageSize, err := strconv.Atoi(c.Query("page_size")); err == nil && pageSize > 0 && pageSize <= 100 {
		filter.PageSize = pageSize
	}
	filter.Search = c.Query("search")

	stocks, total, err := h.stockService.ListStock(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, stocks, total, filter.Page, filter.PageSize)
}

// ListBelowMinimum handles GET /stock/below-minimum
func (h *StockHandler) ListBelowMinimum(c *gin.Context) {
	stocks, err := h.stockService.ListBelowMinimum(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stocks)
}

// AdjustStock handles POST /stock/:id/adjust
func (h *StockHandler) AdjustStock(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	stock, err := h.stockService.AdjustStock(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stock)
}

// Rebuild handles POST /stock/:id/rebuild
func (h *StockHandler) Rebuild(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	result, err := h.stockService.Rebuild(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// CheckAvailability handles GET /stock/:id/availability?quantity=N
func (h *StockHandler) CheckAvailability(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	quantity, err := strconv.ParseInt(c.Query("quantity"), 10, 64)
	if err != nil || quantity <= 0 {
		h.BadRequest(c, "quantity must be a positive integer")
		return
	}

	availability, err := h.stockService.CheckAvailability(c.Request.Context(), productID, quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, availability)
}

// ListMovements handles GET /stock/movements
func (h *StockHandler) ListMovements(c *gin.Context) {
	var filter inventoryapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	movements, total, err := h.stockService.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, movements, total, filter.Page, filter.PageSize)
}
