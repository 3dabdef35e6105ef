package service

import (
	"context"
	"strings"

	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// SupplierInput fields accepted when creating a supplier
type SupplierInput struct {
	Name          string  `mapstructure:"name"`
	ContactPerson *string `mapstructure:"contact_person"`
	Email         *string `mapstructure:"email"`
	Phone         *string `mapstructure:"phone"`
}

type SupplierService struct {
	suppliers SupplierRepository
	products  ProductRepository
}

func NewSupplierService(suppliers SupplierRepository, products ProductRepository) *SupplierService {
	return &SupplierService{suppliers: suppliers, products: products}
}

func (s *SupplierService) GetAllSuppliers(ctx context.Context) ([]*domain.Supplier, error) {
	return s.suppliers.GetAll(ctx)
}

func (s *SupplierService) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	return s.suppliers.GetByID(ctx, id)
}

func (s *SupplierService) CreateSupplier(ctx context.Context, in SupplierInput) (*domain.Supplier, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, reject("supplier name is required")
	}
	if err := checkEmail(in.Email); err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, in.Name, 0); err != nil {
		return nil, err
	}
	created, err := s.suppliers.Create(ctx, &domain.Supplier{
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("supplier created", zap.Int64("supplier_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *SupplierService) UpdateSupplier(ctx context.Context, id int64, patch domain.SupplierPatch) (*domain.Supplier, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, reject("supplier name cannot be empty")
		}
		if err := s.checkNameFree(ctx, name, id); err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if err := checkEmail(patch.Email); err != nil {
		return nil, err
	}
	updated, err := s.suppliers.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, notFound("supplier", id)
	}
	return updated, nil
}

// RemoveSupplier detaches the supplier from its products, then deletes it.
// The two steps commit separately.
func (s *SupplierService) RemoveSupplier(ctx context.Context, id int64) (bool, error) {
	detached, err := s.products.DetachSupplier(ctx, id)
	if err != nil {
		return false, err
	}
	ok, err := s.suppliers.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		zap.L().Info("supplier deleted",
			zap.Int64("supplier_id", id),
			zap.Int64("detached_products", detached),
		)
	}
	return ok, nil
}

func (s *SupplierService) checkNameFree(ctx context.Context, name string, self int64) error {
	other, err := s.suppliers.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return reject("supplier %q already exists", name)
	}
	return nil
}

var validate = validator.New()

func checkEmail(email *string) error {
	if email == nil || *email == "" {
		return nil
	}
	if err := validate.Var(*email, "email"); err != nil {
		return reject("invalid email %q", *email)
	}
	return nil
}
