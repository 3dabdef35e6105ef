package repository

import (
	"context"

	"github.com/gemtrack/gemtrack/internal/domain"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	*Crud[domain.Category]
}

func NewCategoryRepository(db *gorm.DB, opts ...Option) *CategoryRepository {
	base := []Option{
		WithOrder("name"),
		WithDeleteAssociations("Products"),
	}
	return &CategoryRepository{Crud: NewCrud[domain.Category](db, append(base, opts...)...)}
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.findOne(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("name = ?", name)
	})
}

// GetByIDs returns the categories whose id is in ids. Unknown ids are skipped.
func (r *CategoryRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Category, error) {
	if len(ids) == 0 {
		return []*domain.Category{}, nil
	}
	return r.findMany(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN ?", ids)
	})
}

// GetByProductID returns the categories linked to a product.
func (r *CategoryRepository) GetByProductID(ctx context.Context, productID int64) ([]*domain.Category, error) {
	return r.findMany(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Joins("JOIN product_category_association pca ON pca.category_id = categories.id").
			Where("pca.product_id = ?", productID)
	})
}
