package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
)

func TestProductRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	electronics := seedCategory(t, db, "electronics")
	books := seedCategory(t, db, "books")
	seedProduct(t, db, electronics.ID, "Wireless Headphones", 200.00, 5)
	seedProduct(t, db, electronics.ID, "Gaming Mouse", 49.90, 10)
	seedProduct(t, db, books.ID, "Go Programming", 35.00, 3)

	t.Run("search is case-insensitive", func(t *testing.T) {
		page, err := repo.List(ctx, domain.ProductFilter{Search: "headph"})
		require.NoError(t, err)
		require.Len(t, page.Products, 1)
		assert.Equal(t, "Wireless Headphones", page.Products[0].Name)
	})

	t.Run("price range", func(t *testing.T) {
		min, max := 30.0, 60.0
		page, err := repo.List(ctx, domain.ProductFilter{MinPrice: &min, MaxPrice: &max})
		require.NoError(t, err)
		require.Len(t, page.Products, 2)
	})

	t.Run("category", func(t *testing.T) {
		page, err := repo.List(ctx, domain.ProductFilter{CategoryID: books.ID})
		require.NoError(t, err)
		require.Len(t, page.Products, 1)
		assert.Equal(t, "Go Programming", page.Products[0].Name)
		require.NotNil(t, page.Products[0].Category)
		assert.Equal(t, "books", page.Products[0].Category.Name)
	})

	t.Run("sort by price descending", func(t *testing.T) {
		page, err := repo.List(ctx, domain.ProductFilter{SortBy: domain.SortPriceDesc})
		require.NoError(t, err)
		require.Len(t, page.Products, 3)
		assert.Equal(t, 200.00, page.Products[0].Price)
		assert.Equal(t, 35.00, page.Products[2].Price)
	})

	t.Run("total counts all matches", func(t *testing.T) {
		page, err := repo.List(ctx, domain.ProductFilter{})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 20, page.PerPage)
	})
}

func TestProductRepository_Pagination(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	category := seedCategory(t, db, "bulk")
	for i := 0; i < 25; i++ {
		seedProduct(t, db, category.ID, "item", 10.00, 1)
	}

	first, err := repo.List(ctx, domain.ProductFilter{Page: 1})
	require.NoError(t, err)
	assert.Len(t, first.Products, 20)
	assert.Equal(t, 25, first.Total)

	second, err := repo.List(ctx, domain.ProductFilter{Page: 2})
	require.NoError(t, err)
	assert.Len(t, second.Products, 5)
	assert.Equal(t, 2, second.Page)
}

func TestProductRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	category := seedCategory(t, db, "electronics")
	product := seedProduct(t, db, category.ID, "headphones", 200.00, 5)

	got, err := repo.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "headphones", got.Name)
	require.NotNil(t, got.Category)

	got.Price = 180.00
	got.Stock = 8
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 180.00, got.Price)
	assert.Equal(t, 8, got.Stock)

	require.NoError(t, repo.Delete(ctx, product.ID))
	_, err = repo.Get(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, product.ID), domain.ErrProductNotFound)
}
