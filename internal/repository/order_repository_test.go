package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
)

func TestPlaceOrder_Success(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com")
	category := seedCategory(t, db, "electronics")
	product := seedProduct(t, db, category.ID, "headphones", 200.00, 5)
	seedCartWithItem(t, db, user.ID, product.ID, 2)

	order, err := NewOrderRepository(db).PlaceOrder(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, 400.00, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, product.ID, order.Items[0].ProductID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 200.00, order.Items[0].Price)
	require.NotNil(t, order.Items[0].Product)

	assert.Equal(t, 3, productStock(t, db, product.ID))
	assert.Equal(t, 0, countRows(t, db, "cart_items"))
	assert.Equal(t, 1, countRows(t, db, "carts")) // cart row survives checkout
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com")
	category := seedCategory(t, db, "electronics")
	product := seedProduct(t, db, category.ID, "headphones", 200.00, 1)
	seedCartWithItem(t, db, user.ID, product.ID, 2)

	order, err := NewOrderRepository(db).PlaceOrder(ctx, user.ID)
	require.Error(t, err)
	assert.Nil(t, order)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "headphones", stockErr.ProductName)

	// Nothing may change on failure.
	assert.Equal(t, 1, productStock(t, db, product.ID))
	assert.Equal(t, 0, countRows(t, db, "orders"))
	assert.Equal(t, 0, countRows(t, db, "order_items"))
	assert.Equal(t, 1, countRows(t, db, "cart_items"))
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(db)

	user := seedUser(t, db, "buyer@example.com")

	// No cart row at all.
	_, err := repo.PlaceOrder(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	// Cart row exists but has no lines.
	_, err = NewCartRepository(db).GetOrCreate(ctx, user.ID)
	require.NoError(t, err)
	_, err = repo.PlaceOrder(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	assert.Equal(t, 0, countRows(t, db, "orders"))
}

func TestPlaceOrder_MultiLineValidatesBeforeAnyDecrement(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com")
	category := seedCategory(t, db, "electronics")
	inStock := seedProduct(t, db, category.ID, "keyboard", 50.00, 10)
	outOfStock := seedProduct(t, db, category.ID, "mouse", 25.00, 1)

	cart := seedCartWithItem(t, db, user.ID, inStock.ID, 2)
	_, err := NewCartRepository(db).UpsertItem(ctx, cart.ID, outOfStock.ID, 5)
	require.NoError(t, err)

	_, err = NewOrderRepository(db).PlaceOrder(ctx, user.ID)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "mouse", stockErr.ProductName)

	// The passing line must not have been decremented.
	assert.Equal(t, 10, productStock(t, db, inStock.ID))
	assert.Equal(t, 1, productStock(t, db, outOfStock.ID))
	assert.Equal(t, 2, countRows(t, db, "cart_items"))
}

func TestPlaceOrder_PriceFrozenAfterPurchase(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com")
	category := seedCategory(t, db, "electronics")
	product := seedProduct(t, db, category.ID, "headphones", 200.00, 5)
	seedCartWithItem(t, db, user.ID, product.ID, 2)

	orderRepo := NewOrderRepository(db)
	order, err := orderRepo.PlaceOrder(ctx, user.ID)
	require.NoError(t, err)

	// Raise the catalog price after the purchase.
	product.Price = 999.99
	product.Stock = 3
	require.NoError(t, NewProductRepository(db).Update(ctx, product))

	reloaded, err := orderRepo.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 200.00, reloaded.Items[0].Price)
	assert.Equal(t, 400.00, reloaded.TotalAmount)
}

func TestPlaceOrder_ConcurrentPlacementsNeverOversell(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	category := seedCategory(t, db, "electronics")
	product := seedProduct(t, db, category.ID, "console", 500.00, 4)

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	seedCartWithItem(t, db, alice.ID, product.ID, 3)
	seedCartWithItem(t, db, bob.ID, product.ID, 3)

	repo := NewOrderRepository(db)
	results := make([]error, 2)
	var wg sync.WaitGroup
	for i, uid := range []int64{alice.ID, bob.ID} {
		wg.Add(1)
		go func(i int, uid int64) {
			defer wg.Done()
			_, results[i] = repo.PlaceOrder(ctx, uid)
		}(i, uid)
	}
	wg.Wait()

	var successes, stockFailures int
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var stockErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		stockFailures++
	}

	assert.Equal(t, 1, successes, "exactly one placement must win")
	assert.Equal(t, 1, stockFailures)
	assert.Equal(t, 1, productStock(t, db, product.ID))
	assert.Equal(t, 1, countRows(t, db, "orders"))
}

func TestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com")
	category := seedCategory(t, db, "electronics")
	product := seedProduct(t, db, category.ID, "headphones", 200.00, 5)
	seedCartWithItem(t, db, user.ID, product.ID, 1)

	repo := NewOrderRepository(db)
	order, err := repo.PlaceOrder(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, domain.OrderStatusShipped))
	reloaded, err := repo.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, reloaded.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, order.ID+100, domain.OrderStatusShipped), domain.ErrOrderNotFound)
}

func TestListByUser_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "buyer@example.com")
	category := seedCategory(t, db, "electronics")
	product := seedProduct(t, db, category.ID, "headphones", 10.00, 100)

	repo := NewOrderRepository(db)
	cartRepo := NewCartRepository(db)
	var ids []int64
	for i := 0; i < 3; i++ {
		cart, err := cartRepo.GetOrCreate(ctx, user.ID)
		require.NoError(t, err)
		_, err = cartRepo.UpsertItem(ctx, cart.ID, product.ID, 1)
		require.NoError(t, err)
		order, err := repo.PlaceOrder(ctx, user.ID)
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	orders, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, ids[2], orders[0].ID)
	assert.Equal(t, ids[0], orders[2].ID)
	require.Len(t, orders[0].Items, 1)
	require.NotNil(t, orders[0].Items[0].Product)
}
