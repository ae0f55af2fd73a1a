package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
	"github.com/talhaustundag/ecommerce-api/internal/events"
	"github.com/talhaustundag/ecommerce-api/internal/repository"
)

type testEnv struct {
	db       *sql.DB
	users    *repository.UserRepository
	products *repository.ProductRepository
	carts    *repository.CartRepository
	orders   *repository.OrderRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repository.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repository.Migrate(context.Background(), db, "sqlite"))
	return &testEnv{
		db:       db,
		users:    repository.NewUserRepository(db),
		products: repository.NewProductRepository(db),
		carts:    repository.NewCartRepository(db),
		orders:   repository.NewOrderRepository(db),
	}
}

func (e *testEnv) seedUser(t *testing.T, email string) *domain.User {
	t.Helper()
	u := &domain.User{Name: "Test User", Email: email, PasswordHash: "x"}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) seedProduct(t *testing.T, name string, price float64, stock int) *domain.Product {
	t.Helper()
	ctx := context.Background()
	c := &domain.Category{Name: "test"}
	require.NoError(t, repository.NewCategoryRepository(e.db).Create(ctx, c))
	p := &domain.Product{CategoryID: c.ID, Name: name, Price: price, Stock: stock}
	require.NoError(t, e.products.Create(ctx, p))
	return p
}

func (e *testEnv) fillCart(t *testing.T, userID, productID int64, quantity int) {
	t.Helper()
	ctx := context.Background()
	cart, err := e.carts.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	_, err = e.carts.UpsertItem(ctx, cart.ID, productID, quantity)
	require.NoError(t, err)
}

// recordingProducer captures confirmations and can simulate sink failure.
type recordingProducer struct {
	mu        sync.Mutex
	published chan events.OrderConfirmationEvent
	fail      bool
}

func newRecordingProducer(fail bool) *recordingProducer {
	return &recordingProducer{
		published: make(chan events.OrderConfirmationEvent, 8),
		fail:      fail,
	}
}

func (p *recordingProducer) PublishOrderConfirmation(_ context.Context, event events.OrderConfirmationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unreachable")
	}
	p.published <- event
	return nil
}

func (p *recordingProducer) Close() error { return nil }

func testLogger() *zap.Logger { return zap.NewNop() }
