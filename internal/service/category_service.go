package service

import (
	"context"

	"github.com/gastos-app/gastos-server/internal/storage/category"
)

// CategoryService handles category read logic.
type CategoryService struct {
	categories categoryReader
}

func NewCategoryService(categories categoryReader) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) ListCategories(ctx context.Context, ownerID int64) ([]category.Category, error) {
	return s.categories.ListForOwner(ctx, ownerID)
}

func (s *CategoryService) GetCategory(ctx context.Context, ownerID, id int64) (*category.Category, error) {
	return s.categories.FindByID(ctx, ownerID, id)
}
