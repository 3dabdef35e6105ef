package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/gemtrack/gemtrack/internal/service"
	"go.uber.org/zap"
)

var defaultCategories = []string{"Rings", "Necklaces", "Earrings", "Bracelets", "Watches"}

// checkSuper creates the administrator account when no user holds its username.
func (a *Application) checkSuper(ctx context.Context) {
	username := a.appConfig.Security.AdminUsername
	if username == "" {
		return
	}
	users := a.services.Users
	existing, err := users.FindByUsername(ctx, username)
	if err != nil {
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}
	if existing != nil {
		return
	}

	password := a.appConfig.Security.AdminPassword
	generated := password == ""
	if generated {
		buf := make([]byte, 9)
		if _, err := rand.Read(buf); err != nil {
			zap.L().Error("failed to generate admin password", zap.Error(err))
			return
		}
		password = hex.EncodeToString(buf)
	}

	_, err = users.CreateAdmin(ctx, service.AdminInput{
		Username:    username,
		Password:    password,
		FirstName:   strPtr("administrator"),
		Departments: []domain.Department{domain.DepartmentIT},
		Permissions: []domain.Permission{domain.PermissionAdmin},
	})
	if err != nil {
		zap.L().Error("failed to create default super admin", zap.Error(err))
		return
	}
	if generated {
		zap.L().Warn("initialized default super admin account with a generated password",
			zap.String("username", username),
			zap.String("password", password))
		return
	}
	zap.L().Info("initialized default super admin account", zap.String("username", username))
}

// checkCategories seeds the default categories into an empty catalog.
func (a *Application) checkCategories(ctx context.Context) {
	categories := a.services.Categories
	existing, err := categories.GetAllCategories(ctx)
	if err != nil {
		zap.L().Error("failed to count categories", zap.Error(err))
		return
	}
	if len(existing) > 0 {
		return
	}
	for _, name := range defaultCategories {
		if _, err := categories.CreateCategory(ctx, name); err != nil {
			zap.L().Error("failed to create default category", zap.String("name", name), zap.Error(err))
			return
		}
	}
	zap.L().Info("initialized default categories", zap.Int("count", len(defaultCategories)))
}

func strPtr(s string) *string {
	return &s
}
