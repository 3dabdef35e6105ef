package repository

import (
	"context"
	"time"

	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UserRepository shared account rows. Lookups by username or email ignore deactivated rows.
type UserRepository struct {
	*Crud[domain.User]
}

func NewUserRepository(db *gorm.DB, opts ...Option) *UserRepository {
	return &UserRepository{Crud: NewCrud[domain.User](db, append([]Option{WithOrder("username")}, opts...)...)}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("username = ? AND delete_date IS NULL", username)
	})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("email = ? AND delete_date IS NULL", email)
	})
}

// PurgeDeletedBefore hard deletes users deactivated before t. Client and admin rows cascade.
func (r *UserRepository) PurgeDeletedBefore(ctx context.Context, t time.Time) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []int64
		if err := tx.Model(&domain.User{}).
			Where("delete_date IS NOT NULL AND delete_date < ?", t).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("admin_id IN ?", ids).Delete(&domain.AdminDepartment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("admin_id IN ?", ids).Delete(&domain.AdminPermission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id IN ?", ids).Delete(&domain.Admin{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id IN ?", ids).Delete(&domain.Client{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&domain.User{})
		affected = result.RowsAffected
		return result.Error
	})
	return affected, errors.Wrap(err, "purge deleted users")
}
