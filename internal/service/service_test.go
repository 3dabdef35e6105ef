package service

import (
	"testing"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/gemtrack/gemtrack/internal/repository"
	"github.com/gemtrack/gemtrack/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

type testServices struct {
	bus        EventBus.Bus
	products   *ProductService
	categories *CategoryService
	suppliers  *SupplierService
	clients    *ClientService
	users      *UserService
	search     *SearchService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := testutil.NewDB(t)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	bus := EventBus.New()
	s := &testServices{
		bus:        bus,
		products:   NewProductService(productRepo, categoryRepo, supplierRepo, WithEventBus(bus)),
		categories: NewCategoryService(categoryRepo),
		suppliers:  NewSupplierService(supplierRepo, productRepo),
		clients:    NewClientService(clientRepo, userRepo, bus),
		users:      NewUserService(userRepo, adminRepo),
		search:     NewSearchService(productRepo, clientRepo),
	}
	s.clients.hashCost = bcrypt.MinCost
	s.users.hashCost = bcrypt.MinCost
	return s
}
