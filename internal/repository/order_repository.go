package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// PlaceOrder converts the user's cart into a committed order inside a
// single transaction: validate every line, create the order header, snapshot
// the lines, decrement stock, clear the cart. Any failure rolls the whole
// unit back.
//
// The stock decrement is a conditional update (stock >= quantity) checked
// via RowsAffected, so two concurrent placements over the same product
// cannot both succeed when combined demand exceeds the available stock.
func (r *OrderRepository) PlaceOrder(ctx context.Context, userID int64) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "begin order placement", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	var cartID int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM carts WHERE user_id = $1", userID).Scan(&cartID)
	if err == sql.ErrNoRows {
		return nil, domain.ErrEmptyCart
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load cart", Err: err}
	}

	items, err := loadCartItems(ctx, tx, cartID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load cart items", Err: err}
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	// Every line is validated before any stock is touched, so a late
	// failure never leaves earlier lines decremented.
	for _, it := range items {
		if it.Quantity > it.Product.Stock {
			return nil, &domain.InsufficientStockError{ProductName: it.Product.Name}
		}
	}

	var total float64
	for _, it := range items {
		total += domain.Round2(it.Product.Price * float64(it.Quantity))
	}
	total = domain.Round2(total)

	now := time.Now().UTC()
	order := &domain.Order{
		UserID:      userID,
		TotalAmount: total,
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, total_amount, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		order.UserID, order.TotalAmount, order.Status, now, now).Scan(&order.ID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "create order", Err: err}
	}

	for _, it := range items {
		res, err := tx.ExecContext(ctx,
			"UPDATE products SET stock = stock - $1, updated_at = $2 WHERE id = $3 AND stock >= $4",
			it.Quantity, now, it.ProductID, it.Quantity)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "decrement stock", Err: err}
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// Stock moved between validation and decrement; abort.
			return nil, &domain.InsufficientStockError{ProductName: it.Product.Name}
		}

		line := domain.OrderItem{
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Product.Price,
			Product:   it.Product,
		}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, price)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			line.OrderID, line.ProductID, line.Quantity, line.Price).Scan(&line.ID)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "create order item", Err: err}
		}
		order.Items = append(order.Items, line)
	}

	// Cart lines go only after the order and its items are in the
	// transaction; a failed commit keeps the cart intact.
	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_items WHERE cart_id = $1", cartID); err != nil {
		return nil, &domain.PersistenceError{Op: "clear cart", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &domain.PersistenceError{Op: "commit order placement", Err: err}
	}
	return order, nil
}

// Get loads an order with its item snapshots and product references.
func (r *OrderRepository) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, total_amount, status, created_at, updated_at FROM orders WHERE id = $1", id).
		Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if o.Items, err = r.loadItems(ctx, o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser returns the user's orders, newest first, items included.
func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, total_amount, status, created_at, updated_at
		 FROM orders WHERE user_id = $1 ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	for i := range orders {
		if orders[i].Items, err = r.loadItems(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateStatus overwrites the order status. The caller has already
// validated the value against the status enumeration.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
		 p.id, p.category_id, p.name, p.description, p.brand, p.price, p.stock, p.created_at, p.updated_at
		 FROM order_items oi JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id = $1 ORDER BY oi.id ASC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var (
			it domain.OrderItem
			p  domain.Product
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price,
			&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Brand, &p.Price, &p.Stock,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		it.Product = &p
		items = append(items, it)
	}
	return items, rows.Err()
}
