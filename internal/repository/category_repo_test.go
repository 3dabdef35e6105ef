package repository

import (
	"context"
	"testing"

	"github.com/gemtrack/gemtrack/internal/domain"
	"github.com/gemtrack/gemtrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryGetByIDs(t *testing.T) {
	ctx := context.Background()
	repos := newInventoryRepos(testutil.NewDB(t))

	a := mustCategory(t, repos.categories, "Rings")
	b := mustCategory(t, repos.categories, "Bracelets")

	none, err := repos.categories.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	got, err := repos.categories.GetByIDs(ctx, []int64{a.ID, b.ID, 9999})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bracelets", got[0].Name)

	byName, err := repos.categories.GetByName(ctx, "Rings")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, a.ID, byName.ID)
}

func TestCategoryGetByProductID(t *testing.T) {
	ctx := context.Background()
	repos := newInventoryRepos(testutil.NewDB(t))

	a := mustCategory(t, repos.categories, "Rings")
	mustCategory(t, repos.categories, "Watches")
	p := newProduct("P-1", "Ring", 1)
	p.Categories = []domain.Category{*a}
	created, err := repos.products.Create(ctx, p)
	require.NoError(t, err)

	got, err := repos.categories.GetByProductID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Rings", got[0].Name)
}

func TestCategoryDeleteKeepsProducts(t *testing.T) {
	ctx := context.Background()
	repos := newInventoryRepos(testutil.NewDB(t))

	a := mustCategory(t, repos.categories, "Rings")
	p := newProduct("P-2", "Ring", 1)
	p.Categories = []domain.Category{*a}
	created, err := repos.products.Create(ctx, p)
	require.NoError(t, err)

	ok, err := repos.categories.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := repos.products.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.Categories)
}

func TestCategoryRename(t *testing.T) {
	ctx := context.Background()
	repos := newInventoryRepos(testutil.NewDB(t))

	a := mustCategory(t, repos.categories, "Ringz")
	name := "Rings"
	got, err := repos.categories.Update(ctx, a.ID, domain.CategoryPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Rings", got.Name)
}
