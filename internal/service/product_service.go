package service

import (
	"context"
	"io"
	"strings"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultLowStockThreshold stock level below which a product counts as low stock
const DefaultLowStockThreshold = 10

// ProductInput fields accepted when creating a product
type ProductInput struct {
	SKU                string              `mapstructure:"sku"`
	Name               string              `mapstructure:"name"`
	Description        *string             `mapstructure:"description"`
	ImagePath          *string             `mapstructure:"image_path"`
	BuyingPrice        decimal.Decimal     `mapstructure:"buying_price"`
	SuggestedPrice     decimal.Decimal     `mapstructure:"suggested_price"`
	Stock              int                 `mapstructure:"stock"`
	AvailabilityStatus domain.Availability `mapstructure:"availability_status"`
	MeasurementUnit    string              `mapstructure:"measurement_unit"`
	Location           *string             `mapstructure:"location"`
	SupplierID         *int64              `mapstructure:"supplier_id"`
	CategoryIDs        []int64             `mapstructure:"category_ids"`
}

// ProductService inventory business rules on top of the product repository
type ProductService struct {
	products   ProductRepository
	categories CategoryRepository
	suppliers  SupplierRepository
	events     publisher
	threshold  int
}

// ProductOption configures a ProductService
type ProductOption func(*ProductService)

// WithEventBus publishes product events on bus
func WithEventBus(bus EventBus.Bus) ProductOption {
	return func(s *ProductService) { s.events.bus = bus }
}

// WithLowStockThreshold overrides DefaultLowStockThreshold
func WithLowStockThreshold(n int) ProductOption {
	return func(s *ProductService) {
		if n > 0 {
			s.threshold = n
		}
	}
}

// NewProductService creates a new product service
func NewProductService(
	products ProductRepository,
	categories CategoryRepository,
	suppliers SupplierRepository,
	opts ...ProductOption,
) *ProductService {
	s := &ProductService{
		products:   products,
		categories: categories,
		suppliers:  suppliers,
		threshold:  DefaultLowStockThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LowStockThreshold returns the threshold used by the low_stock filter
func (s *ProductService) LowStockThreshold() int {
	return s.threshold
}

// CreateNewProduct validates in and persists a new product with its categories and supplier.
func (s *ProductService) CreateNewProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.SKU == "" {
		return nil, reject("product name and sku are required")
	}
	if err := checkAmounts(&in.BuyingPrice, &in.SuggestedPrice, &in.Stock); err != nil {
		return nil, err
	}
	if in.AvailabilityStatus == "" {
		in.AvailabilityStatus = domain.AvailabilityInStock
	}
	if !in.AvailabilityStatus.Valid() {
		return nil, reject("invalid availability status %q", in.AvailabilityStatus)
	}

	existing, err := s.products.GetBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, reject("a product with sku %q already exists", in.SKU)
	}
	if err := s.checkSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}
	categories, err := s.resolveCategories(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		SKU:                in.SKU,
		Name:               in.Name,
		Description:        in.Description,
		ImagePath:          in.ImagePath,
		BuyingPrice:        in.BuyingPrice,
		SuggestedPrice:     in.SuggestedPrice,
		Stock:              in.Stock,
		AvailabilityStatus: in.AvailabilityStatus,
		MeasurementUnit:    in.MeasurementUnit,
		Location:           in.Location,
		SupplierID:         in.SupplierID,
		Categories:         categories,
	}
	created, err := s.products.Create(ctx, product)
	if err != nil {
		zap.L().Error("create product failed", zap.String("sku", in.SKU), zap.Error(err))
		return nil, err
	}
	zap.L().Info("product created",
		zap.Int64("product_id", created.ID),
		zap.String("sku", created.SKU),
	)
	s.events.publish(TopicProductCreated, created)
	return created, nil
}

// GetProductsList returns every product ordered by name.
func (s *ProductService) GetProductsList(ctx context.Context) ([]*domain.Product, error) {
	return s.products.GetAll(ctx)
}

// GetProductsPage returns one page of products and the total count.
func (s *ProductService) GetProductsPage(ctx context.Context, page, pageSize int) ([]*domain.Product, int64, error) {
	return s.products.List(ctx, page, pageSize)
}

// GetProductDetails returns the product or nil when it does not exist.
func (s *ProductService) GetProductDetails(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// UpdateExistingProduct applies patch to an existing product.
// Only fields present in the patch are validated.
func (s *ProductService) UpdateExistingProduct(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error) {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound("product", id)
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, reject("product name cannot be empty")
		}
		patch.Name = &name
	}
	if err := checkAmounts(patch.BuyingPrice, patch.SuggestedPrice, patch.Stock); err != nil {
		return nil, err
	}
	if patch.AvailabilityStatus != nil && !patch.AvailabilityStatus.Valid() {
		return nil, reject("invalid availability status %q", *patch.AvailabilityStatus)
	}
	if patch.SKU != nil {
		sku := strings.TrimSpace(*patch.SKU)
		if sku == "" {
			return nil, reject("product sku cannot be empty")
		}
		patch.SKU = &sku
		if sku != existing.SKU {
			other, err := s.products.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != id {
				return nil, reject("sku %q is already used by another product", sku)
			}
		}
	}
	if !patch.ClearSupplier {
		if err := s.checkSupplier(ctx, patch.SupplierID); err != nil {
			return nil, err
		}
	}
	if patch.CategoryIDs != nil {
		if patch.Categories, err = s.resolveCategories(ctx, *patch.CategoryIDs); err != nil {
			return nil, err
		}
	}

	updated, err := s.products.Update(ctx, id, patch)
	if err != nil {
		zap.L().Error("update product failed", zap.Int64("product_id", id), zap.Error(err))
		return nil, err
	}
	if updated == nil {
		return nil, notFound("product", id)
	}
	zap.L().Info("product updated", zap.Int64("product_id", id))
	s.events.publish(TopicProductUpdated, updated)
	return updated, nil
}

// RemoveProduct deletes a product and reports whether it existed.
func (s *ProductService) RemoveProduct(ctx context.Context, id int64) (bool, error) {
	ok, err := s.products.Delete(ctx, id)
	if err != nil {
		zap.L().Error("delete product failed", zap.Int64("product_id", id), zap.Error(err))
		return false, err
	}
	if ok {
		zap.L().Info("product deleted", zap.Int64("product_id", id))
		s.events.publish(TopicProductDeleted, id)
	}
	return ok, nil
}

// SearchProducts matches name, sku or description. A blank query returns nothing.
func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]*domain.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.Product{}, nil
	}
	return s.products.Search(ctx, query)
}

// GetProductsByFilter returns the products for an inventory view tag.
func (s *ProductService) GetProductsByFilter(ctx context.Context, filter string) ([]*domain.Product, error) {
	tag := domain.ProductFilter(strings.ToLower(strings.TrimSpace(filter)))
	if tag == "" {
		tag = domain.FilterAll
	}
	if !tag.Valid() {
		return nil, reject("invalid filter type %q", filter)
	}
	if tag == domain.FilterAll {
		return s.products.GetAll(ctx)
	}
	return s.products.GetFiltered(ctx, tag, s.threshold)
}

// LowStockCount counts the products the low_stock filter would return.
func (s *ProductService) LowStockCount(ctx context.Context) (int64, error) {
	return s.products.LowStockCount(ctx, s.threshold)
}

// ExportCSV writes every product as CSV to w.
func (s *ProductService) ExportCSV(ctx context.Context, w io.Writer) error {
	products, err := s.products.GetAll(ctx)
	if err != nil {
		return err
	}
	return writeProductsCSV(products, w)
}

func (s *ProductService) checkSupplier(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	supplier, err := s.suppliers.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return reject("supplier %d does not exist", *id)
	}
	return nil
}

// resolveCategories loads the categories for ids. Ids without a row are dropped.
func (s *ProductService) resolveCategories(ctx context.Context, ids []int64) ([]domain.Category, error) {
	ids = uniqueIDs(ids)
	found, err := s.categories.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(found))
	for _, c := range found {
		categories = append(categories, *c)
	}
	if len(categories) != len(ids) {
		zap.L().Warn("unknown category ids dropped",
			zap.Int64s("requested", ids),
			zap.Int("found", len(categories)),
		)
	}
	return categories, nil
}

func checkAmounts(buying, suggested *decimal.Decimal, stock *int) error {
	if suggested != nil && suggested.IsNegative() {
		return reject("suggested price cannot be negative")
	}
	if buying != nil && buying.IsNegative() {
		return reject("buying price cannot be negative")
	}
	if stock != nil && *stock < 0 {
		return reject("stock cannot be negative")
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
