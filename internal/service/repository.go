package service

import (
	"context"
	"time"

	"github.com/gemtrack/gemtrack/internal/domain"
)

// ProductRepository interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
	List(ctx context.Context, page, pageSize int) ([]*domain.Product, int64, error)
	Update(ctx context.Context, id int64, patch domain.Patch[domain.Product]) (*domain.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)

	GetBySKU(ctx context.Context, sku string) (*domain.Product, error)
	GetFiltered(ctx context.Context, filter domain.ProductFilter, threshold int) ([]*domain.Product, error)
	Search(ctx context.Context, query string) ([]*domain.Product, error)
	CountBySupplier(ctx context.Context, supplierID int64) (int64, error)
	DetachSupplier(ctx context.Context, supplierID int64) (int64, error)
	LowStockCount(ctx context.Context, threshold int) (int64, error)
}

// CategoryRepository interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, id int64, patch domain.Patch[domain.Category]) (*domain.Category, error)
	Delete(ctx context.Context, id int64) (bool, error)

	GetByName(ctx context.Context, name string) (*domain.Category, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Category, error)
	GetByProductID(ctx context.Context, productID int64) ([]*domain.Category, error)
}

// SupplierRepository interface for supplier data access
type SupplierRepository interface {
	Create(ctx context.Context, s *domain.Supplier) (*domain.Supplier, error)
	GetByID(ctx context.Context, id int64) (*domain.Supplier, error)
	GetAll(ctx context.Context) ([]*domain.Supplier, error)
	Update(ctx context.Context, id int64, patch domain.Patch[domain.Supplier]) (*domain.Supplier, error)
	Delete(ctx context.Context, id int64) (bool, error)

	GetByName(ctx context.Context, name string) (*domain.Supplier, error)
}

// UserRepository interface for shared account rows
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetAll(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id int64, patch domain.Patch[domain.User]) (*domain.User, error)

	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	PurgeDeletedBefore(ctx context.Context, t time.Time) (int64, error)
}

// ClientRepository interface for client data access
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetAll(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, id int64, patch domain.Patch[domain.Client]) (*domain.Client, error)
	Delete(ctx context.Context, id int64) (bool, error)

	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	Search(ctx context.Context, query string) ([]*domain.Client, error)
}

// AdminRepository interface for admin data access
type AdminRepository interface {
	Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error)
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)

	ReplacePermissions(ctx context.Context, adminID int64, perms []domain.Permission) (*domain.Admin, error)
	ReplaceDepartments(ctx context.Context, adminID int64, deps []domain.Department) (*domain.Admin, error)
}
