package app

import (
	EventBus "github.com/asaskevich/EventBus"
	"github.com/gemtrack/gemtrack/config"
	"github.com/gemtrack/gemtrack/internal/repository"
	"github.com/gemtrack/gemtrack/internal/service"
	"gorm.io/gorm"
)

// Services bundles the domain services wired to one database
type Services struct {
	Products   *service.ProductService
	Categories *service.CategoryService
	Suppliers  *service.SupplierService
	Clients    *service.ClientService
	Users      *service.UserService
	Search     *service.SearchService
}

func NewServices(db *gorm.DB, bus EventBus.Bus, cfg *config.AppConfig) *Services {
	products := repository.NewProductRepository(db)
	categories := repository.NewCategoryRepository(db)
	suppliers := repository.NewSupplierRepository(db)
	users := repository.NewUserRepository(db)
	clients := repository.NewClientRepository(db)
	admins := repository.NewAdminRepository(db)

	return &Services{
		Products: service.NewProductService(products, categories, suppliers,
			service.WithEventBus(bus),
			service.WithLowStockThreshold(cfg.Inventory.LowStockThreshold),
		),
		Categories: service.NewCategoryService(categories),
		Suppliers:  service.NewSupplierService(suppliers, products),
		Clients:    service.NewClientService(clients, users, bus),
		Users:      service.NewUserService(users, admins),
		Search:     service.NewSearchService(products, clients),
	}
}
