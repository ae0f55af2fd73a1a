package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
)

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// GetByUser loads the user's cart as a fully materialized aggregate: cart
// row, items, and the referenced products in one explicit join.
func (r *CartRepository) GetByUser(ctx context.Context, userID int64) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1", userID).
		Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	items, err := loadCartItems(ctx, r.db, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return &cart, nil
}

// GetOrCreate returns the user's cart, creating the row on first use.
func (r *CartRepository) GetOrCreate(ctx context.Context, userID int64) (*domain.Cart, error) {
	cart, err := r.GetByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if err != domain.ErrCartNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	cart = &domain.Cart{UserID: userID, CreatedAt: now, UpdatedAt: now}
	err = r.db.QueryRowContext(ctx,
		"INSERT INTO carts (user_id, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id",
		userID, now, now).Scan(&cart.ID)
	if err != nil {
		// Lost a race with a concurrent first add; reload.
		if isUniqueViolation(err) {
			return r.GetByUser(ctx, userID)
		}
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return cart, nil
}

// UpsertItem adds quantity to an existing line or inserts a new one.
func (r *CartRepository) UpsertItem(ctx context.Context, cartID, productID int64, quantity int) (*domain.CartItem, error) {
	item := &domain.CartItem{CartID: cartID, ProductID: productID}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, quantity FROM cart_items WHERE cart_id = $1 AND product_id = $2",
		cartID, productID).Scan(&item.ID, &item.Quantity)
	switch {
	case err == sql.ErrNoRows:
		item.Quantity = quantity
		err = r.db.QueryRowContext(ctx,
			"INSERT INTO cart_items (cart_id, product_id, quantity) VALUES ($1, $2, $3) RETURNING id",
			cartID, productID, quantity).Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("insert cart item: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("get cart item: %w", err)
	default:
		item.Quantity += quantity
		if _, err := r.db.ExecContext(ctx,
			"UPDATE cart_items SET quantity = $1 WHERE id = $2", item.Quantity, item.ID); err != nil {
			return nil, fmt.Errorf("update cart item: %w", err)
		}
	}
	return item, nil
}

// SetItemQuantity overwrites a line's quantity.
func (r *CartRepository) SetItemQuantity(ctx context.Context, cartID, productID int64, quantity int) (*domain.CartItem, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE cart_items SET quantity = $1 WHERE cart_id = $2 AND product_id = $3",
		quantity, cartID, productID)
	if err != nil {
		return nil, fmt.Errorf("set cart item quantity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrCartItemNotFound
	}

	item := &domain.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	err = r.db.QueryRowContext(ctx,
		"SELECT id FROM cart_items WHERE cart_id = $1 AND product_id = $2",
		cartID, productID).Scan(&item.ID)
	if err != nil {
		return nil, fmt.Errorf("reload cart item: %w", err)
	}
	return item, nil
}

// DecrementItem reduces a line by one unit, deleting it when the quantity
// reaches zero. Returns the remaining quantity.
func (r *CartRepository) DecrementItem(ctx context.Context, cartID, productID int64) (int, error) {
	var (
		id       int64
		quantity int
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, quantity FROM cart_items WHERE cart_id = $1 AND product_id = $2",
		cartID, productID).Scan(&id, &quantity)
	if err == sql.ErrNoRows {
		return 0, domain.ErrCartItemNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get cart item: %w", err)
	}

	if quantity > 1 {
		if _, err := r.db.ExecContext(ctx,
			"UPDATE cart_items SET quantity = $1 WHERE id = $2", quantity-1, id); err != nil {
			return 0, fmt.Errorf("decrement cart item: %w", err)
		}
		return quantity - 1, nil
	}
	if _, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE id = $1", id); err != nil {
		return 0, fmt.Errorf("delete cart item: %w", err)
	}
	return 0, nil
}

// Clear removes all lines; the cart row persists for reuse.
func (r *CartRepository) Clear(ctx context.Context, cartID int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// loadCartItems joins cart lines with their product rows. Shared with the
// order placement transaction, which runs it against a *sql.Tx.
func loadCartItems(ctx context.Context, q querier, cartID int64) ([]domain.CartItem, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
		 p.id, p.category_id, p.name, p.description, p.brand, p.price, p.stock, p.created_at, p.updated_at
		 FROM cart_items ci JOIN products p ON p.id = ci.product_id
		 WHERE ci.cart_id = $1 ORDER BY ci.id ASC`, cartID)
	if err != nil {
		return nil, fmt.Errorf("load cart items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]domain.CartItem, 0)
	for rows.Next() {
		var (
			it domain.CartItem
			p  domain.Product
		)
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity,
			&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Brand, &p.Price, &p.Stock,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		it.Product = &p
		items = append(items, it)
	}
	return items, rows.Err()
}
