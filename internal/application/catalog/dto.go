package catalog

import (
	"time"

	"github.com/almacen/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Code          string           `json:"code" binding:"required,min=1,max=50"`
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Description   string           `json:"description" binding:"max=1000"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	Unit          string           `json:"unit" binding:"required,min=1,max=20"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	MinStock      *int64           `json:"min_stock"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=1000"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Unit        string     `json:"unit" binding:"required,min=1,max=20"`
}

// UpdateProductPricesRequest represents a request to update prices
type UpdateProductPricesRequest struct {
	PurchasePrice decimal.Decimal `json:"purchase_price" binding:"required"`
	SalePrice     decimal.Decimal `json:"sale_price" binding:"required"`
}

// UpdateMinStockRequest represents a request to update the minimum stock
type UpdateMinStockRequest struct {
	MinStock int64 `json:"min_stock" binding:"min=0"`
}

// ProductListFilter represents filters for listing products
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	ActiveOnly bool       `form:"active_only"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CategoryID    *uuid.UUID      `json:"category_id,omitempty"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	MinStock      int64           `json:"min_stock"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50"`
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToProductResponse converts a product to a ProductResponse
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID,
		Code:          product.Code,
		Name:          product.Name,
		Description:   product.Description,
		CategoryID:    product.CategoryID,
		Unit:          product.Unit,
		PurchasePrice: product.PurchasePrice,
		SalePrice:     product.SalePrice,
		MinStock:      product.MinStock,
		Status:        string(product.Status),
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products to responses
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToCategoryResponse converts a category to a CategoryResponse
func ToCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Code:        category.Code,
		Name:        category.Name,
		Description: category.Description,
		Status:      string(category.Status),
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of categories to responses
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}
