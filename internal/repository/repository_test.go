package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
)

// newTestDB opens a throwaway SQLite database with the full schema.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open("sqlite", "file:"+filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(context.Background(), db, "sqlite"))
	return db
}

func seedUser(t *testing.T, db *sql.DB, email string) *domain.User {
	t.Helper()
	u := &domain.User{Name: "Test User", Email: email, PasswordHash: "x", Role: domain.RoleUser}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedCategory(t *testing.T, db *sql.DB, name string) *domain.Category {
	t.Helper()
	c := &domain.Category{Name: name}
	require.NoError(t, NewCategoryRepository(db).Create(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, db *sql.DB, categoryID int64, name string, price float64, stock int) *domain.Product {
	t.Helper()
	p := &domain.Product{
		CategoryID: categoryID,
		Name:       name,
		Brand:      "acme",
		Price:      price,
		Stock:      stock,
	}
	require.NoError(t, NewProductRepository(db).Create(context.Background(), p))
	return p
}

func seedCartWithItem(t *testing.T, db *sql.DB, userID, productID int64, quantity int) *domain.Cart {
	t.Helper()
	ctx := context.Background()
	cartRepo := NewCartRepository(db)
	cart, err := cartRepo.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	_, err = cartRepo.UpsertItem(ctx, cart.ID, productID, quantity)
	require.NoError(t, err)
	return cart
}

func productStock(t *testing.T, db *sql.DB, productID int64) int {
	t.Helper()
	var stock int
	require.NoError(t, db.QueryRow("SELECT stock FROM products WHERE id = $1", productID).Scan(&stock))
	return stock
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
