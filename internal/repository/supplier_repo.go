package repository

import (
	"context"

	"github.com/gemtrack/gemtrack/internal/domain"
	"gorm.io/gorm"
)

type SupplierRepository struct {
	*Crud[domain.Supplier]
}

func NewSupplierRepository(db *gorm.DB, opts ...Option) *SupplierRepository {
	return &SupplierRepository{Crud: NewCrud[domain.Supplier](db, append([]Option{WithOrder("name")}, opts...)...)}
}

func (r *SupplierRepository) GetByName(ctx context.Context, name string) (*domain.Supplier, error) {
	return r.findOne(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("name = ?", name)
	})
}
