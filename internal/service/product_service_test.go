package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/gemtrack/gemtrack/internal/testutil"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ringInput(sku string) ProductInput {
	return ProductInput{
		SKU:             sku,
		Name:            "Ring",
		BuyingPrice:     decimal.NewFromInt(100),
		SuggestedPrice:  decimal.NewFromInt(150),
		Stock:           5,
		MeasurementUnit: "unit",
	}
}

func TestCreateNewProduct(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	rings, err := s.categories.CreateCategory(ctx, "Rings")
	require.NoError(t, err)

	var published []*domain.Product
	require.NoError(t, s.bus.Subscribe(TopicProductCreated, func(p *domain.Product) {
		published = append(published, p)
	}))

	in := ringInput("R-1")
	in.CategoryIDs = []int64{rings.ID, 9999, rings.ID}
	p, err := s.products.CreateNewProduct(ctx, in)
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	assert.Equal(t, domain.AvailabilityInStock, p.AvailabilityStatus)
	assert.Equal(t, []int64{rings.ID}, p.CategoryIDs())
	require.Len(t, published, 1)
	assert.Equal(t, p.ID, published[0].ID)

	details, err := s.products.GetProductDetails(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, "R-1", details.SKU)
}

func TestCreateNewProductValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	_, err := s.products.CreateNewProduct(ctx, ringInput("TAKEN"))
	require.NoError(t, err)

	missingSupplier := int64(42)
	cases := map[string]func(*ProductInput){
		"missing name":       func(in *ProductInput) { in.Name = "  " },
		"missing sku":        func(in *ProductInput) { in.SKU = "" },
		"negative suggested": func(in *ProductInput) { in.SuggestedPrice = decimal.NewFromInt(-1) },
		"negative buying":    func(in *ProductInput) { in.BuyingPrice = decimal.NewFromInt(-1) },
		"negative stock":     func(in *ProductInput) { in.Stock = -1 },
		"bad availability":   func(in *ProductInput) { in.AvailabilityStatus = "sold" },
		"duplicate sku":      func(in *ProductInput) { in.SKU = "TAKEN" },
		"unknown supplier":   func(in *ProductInput) { in.SupplierID = &missingSupplier },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := ringInput("NEW-1")
			mutate(&in)
			p, err := s.products.CreateNewProduct(ctx, in)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, ErrValidation), err.Error())
		})
	}

	all, err := s.products.GetProductsList(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUpdateExistingProduct(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	p, err := s.products.CreateNewProduct(ctx, ringInput("U-1"))
	require.NoError(t, err)
	_, err = s.products.CreateNewProduct(ctx, ringInput("U-2"))
	require.NoError(t, err)

	stock := 3
	updated, err := s.products.UpdateExistingProduct(ctx, p.ID, domain.ProductPatch{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Stock)
	assert.Equal(t, "Ring", updated.Name)
	assert.NotNil(t, updated.ModificationDate)

	same := "U-1"
	_, err = s.products.UpdateExistingProduct(ctx, p.ID, domain.ProductPatch{SKU: &same})
	require.NoError(t, err)

	taken := "U-2"
	_, err = s.products.UpdateExistingProduct(ctx, p.ID, domain.ProductPatch{SKU: &taken})
	assert.True(t, errors.Is(err, ErrValidation))

	negative := -4
	_, err = s.products.UpdateExistingProduct(ctx, p.ID, domain.ProductPatch{Stock: &negative})
	assert.True(t, errors.Is(err, ErrValidation))

	negPrice := decimal.NewFromInt(-10)
	_, err = s.products.UpdateExistingProduct(ctx, p.ID, domain.ProductPatch{SuggestedPrice: &negPrice})
	assert.True(t, errors.Is(err, ErrValidation))

	reloaded, err := s.products.GetProductDetails(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Stock)
	assert.Equal(t, "U-1", reloaded.SKU)

	_, err = s.products.UpdateExistingProduct(ctx, 999, domain.ProductPatch{Stock: &stock})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestUpdateExistingProductCategories(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	a, err := s.categories.CreateCategory(ctx, "Gold")
	require.NoError(t, err)
	b, err := s.categories.CreateCategory(ctx, "Silver")
	require.NoError(t, err)
	in := ringInput("C-1")
	in.CategoryIDs = []int64{a.ID}
	p, err := s.products.CreateNewProduct(ctx, in)
	require.NoError(t, err)

	ids := []int64{a.ID, b.ID}
	updated, err := s.products.UpdateExistingProduct(ctx, p.ID, domain.ProductPatch{CategoryIDs: &ids})
	require.NoError(t, err)
	assert.ElementsMatch(t, ids, updated.CategoryIDs())

	byProduct, err := s.categories.GetCategoriesByProductID(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, byProduct, 2)
}

func TestRemoveProduct(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	var deleted []int64
	require.NoError(t, s.bus.Subscribe(TopicProductDeleted, func(id int64) {
		deleted = append(deleted, id)
	}))

	p, err := s.products.CreateNewProduct(ctx, ringInput("D-1"))
	require.NoError(t, err)

	ok, err := s.products.RemoveProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.products.RemoveProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []int64{p.ID}, deleted)

	got, err := s.products.GetProductDetails(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetProductsByFilter(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	for i, stock := range []int{0, 4, 10, 25} {
		in := ringInput("F-" + string(rune('a'+i)))
		in.Stock = stock
		_, err := s.products.CreateNewProduct(ctx, in)
		require.NoError(t, err)
	}

	low, err := s.products.GetProductsByFilter(ctx, "low_stock")
	require.NoError(t, err)
	assert.Len(t, low, 2)

	n, err := s.products.LowStockCount(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	for _, tag := range []string{"all", "", "location", "scan", "ALL"} {
		all, err := s.products.GetProductsByFilter(ctx, tag)
		require.NoError(t, err)
		assert.Len(t, all, 4, tag)
	}

	_, err = s.products.GetProductsByFilter(ctx, "expensive")
	assert.True(t, errors.Is(err, ErrValidation))

	custom := NewProductService(s.products.products, s.products.categories, s.products.suppliers, WithLowStockThreshold(30))
	low, err = custom.GetProductsByFilter(ctx, "low_stock")
	require.NoError(t, err)
	assert.Len(t, low, 4)
}

func TestSearchProducts(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	in := ringInput("GLD-77")
	in.Name = "Golden Ring"
	_, err := s.products.CreateNewProduct(ctx, in)
	require.NoError(t, err)

	got, err := s.products.SearchProducts(ctx, "golden")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.products.SearchProducts(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	supplier, err := s.suppliers.CreateSupplier(ctx, SupplierInput{Name: "Joyas SA"})
	require.NoError(t, err)
	in := ringInput("CSV-1")
	in.SupplierID = &supplier.ID
	in.Location = testutil.Ptr("Showcase 2")
	_, err = s.products.CreateNewProduct(ctx, in)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.products.ExportCSV(ctx, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,sku,name,categories,supplier"))
	assert.Contains(t, lines[1], "CSV-1")
	assert.Contains(t, lines[1], "Joyas SA")
	assert.Contains(t, lines[1], "150.00")
	assert.Contains(t, lines[1], "Showcase 2")
}
