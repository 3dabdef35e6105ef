package repository

import (
	"context"

	"github.com/gemtrack/gemtrack/internal/domain"
	"gorm.io/gorm"
)

// ClientRepository client rows joined with their users row.
type ClientRepository struct {
	*Crud[domain.Client]
}

func NewClientRepository(db *gorm.DB, opts ...Option) *ClientRepository {
	return &ClientRepository{Crud: NewCrud[domain.Client](db, append([]Option{WithPreload("User"), WithOrder("user_id")}, opts...)...)}
}

func liveUsers(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).
		Model(&domain.User{}).
		Select("id").
		Where("delete_date IS NULL")
}

// GetByEmail returns the active client with that email, or nil.
func (r *ClientRepository) GetByEmail(ctx context.Context, email string) (*domain.Client, error) {
	return r.findOne(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id IN (?)", liveUsers(db).Where("email = ?", email))
	})
}

// Search matches first name, last name or email containing query, case-insensitively.
func (r *ClientRepository) Search(ctx context.Context, query string) ([]*domain.Client, error) {
	return r.findMany(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id IN (?)", containsFold(liveUsers(db), query, "first_name", "last_name", "email"))
	})
}
