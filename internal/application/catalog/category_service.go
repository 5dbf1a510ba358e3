package catalog

import (
	"context"

	"github.com/almacen/backend/internal/domain/catalog"
	"github.com/almacen/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CategoryService handles category business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, productRepo catalog.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this code already exists")
	}

	category, err := catalog.NewCategory(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	category.Description = req.Description

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves all categories
func (s *CategoryService) List(ctx context.Context, filter shared.Filter) ([]CategoryResponse, int64, error) {
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.categoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToCategoryResponses(categories), total, nil
}

// Update updates a category's information
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete deletes a category that has no products assigned
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	filter := shared.DefaultFilter()
	filter.PageSize = 1
	products, err := s.productRepo.FindByCategory(ctx, id, filter)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Cannot delete a category that has products")
	}

	return s.categoryRepo.Delete(ctx, id)
}
