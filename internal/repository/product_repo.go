package repository

import (
	"context"

	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ProductRepository product data access. Reads load categories and supplier and sort by name.
type ProductRepository struct {
	*Crud[domain.Product]
}

func NewProductRepository(db *gorm.DB, opts ...Option) *ProductRepository {
	base := []Option{
		WithPreload("Categories", "Supplier"),
		WithOrder("name"),
		WithDeleteAssociations("Categories"),
	}
	return &ProductRepository{Crud: NewCrud[domain.Product](db, append(base, opts...)...)}
}

// GetBySKU returns the product with that sku, or nil.
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.findOne(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("sku = ?", sku)
	})
}

// GetFiltered returns the products matching a list filter tag.
// low_stock selects stock below threshold or exactly zero; other tags return every product.
func (r *ProductRepository) GetFiltered(ctx context.Context, filter domain.ProductFilter, threshold int) ([]*domain.Product, error) {
	return r.findMany(ctx, func(db *gorm.DB) *gorm.DB {
		switch filter {
		case domain.FilterLowStock:
			return db.Where("stock < ? OR stock = 0", threshold)
		case domain.FilterLocation:
			// reserved for location grouping
		}
		return db
	})
}

// Search matches name, sku or description containing query, case-insensitively.
func (r *ProductRepository) Search(ctx context.Context, query string) ([]*domain.Product, error) {
	return r.findMany(ctx, func(db *gorm.DB) *gorm.DB {
		return containsFold(db, query, "name", "sku", "description")
	})
}

func (r *ProductRepository) CountBySupplier(ctx context.Context, supplierID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("supplier_id = ?", supplierID).Count(&count).Error
	return count, errors.Wrap(err, "count products by supplier")
}

// DetachSupplier clears the supplier reference of every product pointing at supplierID.
func (r *ProductRepository) DetachSupplier(ctx context.Context, supplierID int64) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Product{}).
			Where("supplier_id = ?", supplierID).
			Update("supplier_id", nil)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, errors.Wrap(err, "detach supplier")
}

// LowStockCount counts products the low_stock filter would return.
func (r *ProductRepository) LowStockCount(ctx context.Context, threshold int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("stock < ? OR stock = 0", threshold).
		Count(&count).Error
	return count, errors.Wrap(err, "count low stock products")
}
