package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
)

// BestSeller is a product ranked by total quantity sold.
type BestSeller struct {
	ProductID     int64           `json:"product_id"`
	TotalQuantity int             `json:"total_quantity"`
	Product       *domain.Product `json:"product,omitempty"`
}

// Dashboard aggregates the admin overview numbers.
type Dashboard struct {
	TotalUsers   int          `json:"total_users"`
	TotalOrders  int          `json:"total_orders"`
	TotalRevenue float64      `json:"total_revenue"`
	OrdersToday  int          `json:"orders_today"`
	BestSellers  []BestSeller `json:"best_sellers"`
}

type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard

	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&d.TotalUsers); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM orders").
		Scan(&d.TotalOrders, &d.TotalRevenue); err != nil {
		return nil, fmt.Errorf("sum orders: %w", err)
	}

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE created_at >= $1", dayStart).
		Scan(&d.OrdersToday); err != nil {
		return nil, fmt.Errorf("count today's orders: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT oi.product_id, SUM(oi.quantity) AS total_quantity,
		 p.id, p.category_id, p.name, p.description, p.brand, p.price, p.stock, p.created_at, p.updated_at
		 FROM order_items oi JOIN products p ON p.id = oi.product_id
		 GROUP BY oi.product_id, p.id, p.category_id, p.name, p.description, p.brand, p.price, p.stock, p.created_at, p.updated_at
		 ORDER BY total_quantity DESC LIMIT 5`)
	if err != nil {
		return nil, fmt.Errorf("best sellers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	d.BestSellers = make([]BestSeller, 0, 5)
	for rows.Next() {
		var (
			bs BestSeller
			p  domain.Product
		)
		if err := rows.Scan(&bs.ProductID, &bs.TotalQuantity,
			&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Brand, &p.Price, &p.Stock,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan best seller: %w", err)
		}
		bs.Product = &p
		d.BestSellers = append(d.BestSellers, bs)
	}
	return &d, rows.Err()
}
