package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
	"github.com/talhaustundag/ecommerce-api/internal/repository"
)

type CartService struct {
	cartRepo    *repository.CartRepository
	productRepo *repository.ProductRepository
	logger      *zap.Logger
}

func NewCartService(cartRepo *repository.CartRepository, productRepo *repository.ProductRepository, logger *zap.Logger) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetCart returns the user's cart, or an empty aggregate when the user has
// never added anything.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err == domain.ErrCartNotFound {
		return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
	}
	return cart, err
}

// AddItem puts a product into the cart, creating the cart lazily. An
// existing line accumulates quantity.
func (s *CartService) AddItem(ctx context.Context, userID, productID int64, quantity int) (*domain.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}
	if _, err := s.productRepo.Get(ctx, productID); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.cartRepo.UpsertItem(ctx, cart.ID, productID, quantity)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Product added to cart",
		zap.Int64("user_id", userID),
		zap.Int64("product_id", productID),
		zap.Int("quantity", item.Quantity))
	return item, nil
}

// UpdateItem sets a line's quantity, bounded by the current stock. This is
// a convenience check; the placement transaction revalidates atomically.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID int64, quantity int) (*domain.CartItem, error) {
	product, err := s.productRepo.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if product.Stock < quantity {
		return nil, &domain.InsufficientStockError{ProductName: product.Name}
	}

	item, err := s.cartRepo.SetItemQuantity(ctx, cart.ID, productID, quantity)
	if err != nil {
		return nil, err
	}
	item.Product = product
	return item, nil
}

// RemoveItem takes one unit of the product out of the cart; the line
// disappears when it hits zero. Returns the remaining quantity.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID int64) (int, error) {
	exists, err := s.productRepo.Exists(ctx, productID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.ErrProductNotFound
	}

	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return s.cartRepo.DecrementItem(ctx, cart.ID, productID)
}

// ClearCart drops every line; clearing an absent cart is a no-op.
func (s *CartService) ClearCart(ctx context.Context, userID int64) error {
	cart, err := s.cartRepo.GetByUser(ctx, userID)
	if err == domain.ErrCartNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	return s.cartRepo.Clear(ctx, cart.ID)
}
