package repository

import (
	"context"

	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AdminRepository struct {
	*Crud[domain.Admin]
}

func NewAdminRepository(db *gorm.DB, opts ...Option) *AdminRepository {
	base := []Option{
		WithPreload("User", "Departments", "Permissions"),
		WithOrder("user_id"),
		WithDeleteAssociations("Departments", "Permissions"),
	}
	return &AdminRepository{Crud: NewCrud[domain.Admin](db, append(base, opts...)...)}
}

// ReplacePermissions swaps the permission set of an admin. It returns nil when the admin does not exist.
func (r *AdminRepository) ReplacePermissions(ctx context.Context, adminID int64, perms []domain.Permission) (*domain.Admin, error) {
	rows := make([]domain.AdminPermission, 0, len(perms))
	for _, p := range perms {
		rows = append(rows, domain.AdminPermission{AdminID: adminID, Permission: p})
	}
	return r.replaceOwned(ctx, adminID, &domain.AdminPermission{}, rows, len(rows))
}

// ReplaceDepartments swaps the department set of an admin. It returns nil when the admin does not exist.
func (r *AdminRepository) ReplaceDepartments(ctx context.Context, adminID int64, deps []domain.Department) (*domain.Admin, error) {
	rows := make([]domain.AdminDepartment, 0, len(deps))
	for _, d := range deps {
		rows = append(rows, domain.AdminDepartment{AdminID: adminID, Department: d})
	}
	return r.replaceOwned(ctx, adminID, &domain.AdminDepartment{}, rows, len(rows))
}

func (r *AdminRepository) replaceOwned(ctx context.Context, adminID int64, model interface{}, rows interface{}, n int) (*domain.Admin, error) {
	var admin domain.Admin
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Admin{}).Where("user_id = ?", adminID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("admin_id = ?", adminID).Delete(model).Error; err != nil {
			return err
		}
		if n > 0 {
			if err := tx.Create(rows).Error; err != nil {
				return err
			}
		}
		return r.read(tx).First(&admin, adminID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.wrap(err, "replace")
	}
	return &admin, nil
}
