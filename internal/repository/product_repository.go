package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
)

const productsPerPage = 20

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns one page of the catalog, filtered and sorted. The WHERE
// clause is assembled dynamically; placeholders are numbered in order of
// appearance so the query binds identically on both drivers.
func (r *ProductRepository) List(ctx context.Context, f domain.ProductFilter) (*domain.ProductPage, error) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		where = append(where, "LOWER(p.name) LIKE "+arg("%"+strings.ToLower(f.Search)+"%"))
	}
	if f.MinPrice != nil {
		where = append(where, "p.price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "p.price <= "+arg(*f.MaxPrice))
	}
	if f.CategoryID != 0 {
		where = append(where, "p.category_id = "+arg(f.CategoryID))
	}
	if f.Brand != "" {
		where = append(where, "LOWER(p.brand) LIKE "+arg("%"+strings.ToLower(f.Brand)+"%"))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products p"+clause, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	order := " ORDER BY p.id ASC"
	switch f.SortBy {
	case domain.SortPriceAsc:
		order = " ORDER BY p.price ASC"
	case domain.SortPriceDesc:
		order = " ORDER BY p.price DESC"
	case domain.SortNewest:
		order = " ORDER BY p.created_at DESC"
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	query := `SELECT p.id, p.category_id, p.name, p.description, p.brand, p.price, p.stock,
		p.created_at, p.updated_at, c.id, c.name, c.created_at, c.updated_at
		FROM products p JOIN categories c ON c.id = p.category_id` + clause + order +
		" LIMIT " + arg(productsPerPage) + " OFFSET " + arg((page-1)*productsPerPage)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProductWithCategory(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &domain.ProductPage{
		Products: products,
		Page:     page,
		PerPage:  productsPerPage,
		Total:    total,
	}, nil
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT p.id, p.category_id, p.name, p.description, p.brand, p.price, p.stock,
		 p.created_at, p.updated_at, c.id, c.name, c.created_at, c.updated_at
		 FROM products p JOIN categories c ON c.id = p.category_id WHERE p.id = $1`, id)
	p, err := scanProductWithCategory(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Exists reports whether a product row is present without loading it.
func (r *ProductRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM products WHERE id = $1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return true, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO products (category_id, name, description, brand, price, stock, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		p.CategoryID, p.Name, p.Description, p.Brand, p.Price, p.Stock, now, now).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET category_id = $1, name = $2, description = $3, brand = $4,
		 price = $5, stock = $6, updated_at = $7 WHERE id = $8`,
		p.CategoryID, p.Name, p.Description, p.Brand, p.Price, p.Stock, time.Now().UTC(), p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProductWithCategory(row rowScanner) (*domain.Product, error) {
	var (
		p domain.Product
		c domain.Category
	)
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.Brand, &p.Price, &p.Stock,
		&p.CreatedAt, &p.UpdatedAt, &c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Category = &c
	return &p, nil
}
