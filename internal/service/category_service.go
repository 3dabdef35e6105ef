package service

import (
	"context"
	"strings"

	"github.com/gemtrack/gemtrack/internal/domain"
	"go.uber.org/zap"
)

type CategoryService struct {
	categories CategoryRepository
}

func NewCategoryService(categories CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.GetAll(ctx)
}

func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *CategoryService) GetCategoriesByProductID(ctx context.Context, productID int64) ([]*domain.Category, error) {
	return s.categories.GetByProductID(ctx, productID)
}

// CreateCategory adds a category. Names are unique.
func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, reject("category name is required")
	}
	if err := s.checkNameFree(ctx, name, 0); err != nil {
		return nil, err
	}
	created, err := s.categories.Create(ctx, &domain.Category{Name: name})
	if err != nil {
		return nil, err
	}
	zap.L().Info("category created", zap.Int64("category_id", created.ID), zap.String("name", name))
	return created, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, patch domain.CategoryPatch) (*domain.Category, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, reject("category name cannot be empty")
		}
		if err := s.checkNameFree(ctx, name, id); err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	updated, err := s.categories.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, notFound("category", id)
	}
	return updated, nil
}

// RemoveCategory deletes a category. Products keep existing without it.
func (s *CategoryService) RemoveCategory(ctx context.Context, id int64) (bool, error) {
	ok, err := s.categories.Delete(ctx, id)
	if err == nil && ok {
		zap.L().Info("category deleted", zap.Int64("category_id", id))
	}
	return ok, err
}

func (s *CategoryService) checkNameFree(ctx context.Context, name string, self int64) error {
	other, err := s.categories.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return reject("category %q already exists", name)
	}
	return nil
}
