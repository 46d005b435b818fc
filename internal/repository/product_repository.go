package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"crm-service/internal/filters"
	"crm-service/internal/models"
)

type productRepo struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	if err := models.ValidateProduct(p); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	sql := `
		INSERT INTO products (
			name,
			price,
			stock
	) VALUES ($1, $2, $3)
	RETURNING product_id, created_at
	`

	err := r.db.QueryRow(ctx, sql,
		p.Name,
		p.Price,
		p.Stock,
	).Scan(&p.ProductID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id int) (*models.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `
		SELECT
			product_id,
			name,
			price,
			stock,
			created_at
		FROM products WHERE product_id = $1
		`

	var product models.Product

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&product.ProductID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by id %d: %w", id, err)
	}

	return &product, nil
}

func (r *productRepo) List(ctx context.Context, f filters.ProductFilter) ([]models.Product, error) {
	var w filters.Where
	f.Apply(&w)

	sql := `
	SELECT
		p.product_id,
		p.name,
		p.price,
		p.stock,
		p.created_at
	FROM products p` + w.Clause() + `
	ORDER BY p.product_id`

	rows, err := r.db.Query(ctx, sql, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	defer rows.Close()

	return scanProducts(rows)
}

// RestockBelowThreshold bumps every product under the threshold in a single
// conditional UPDATE, so concurrent invocations serialize on the row locks
// and each qualifying row is incremented exactly once per call.
func (r *productRepo) RestockBelowThreshold(ctx context.Context, threshold, amount int) ([]models.Product, error) {
	if threshold <= 0 || amount <= 0 {
		return nil, fmt.Errorf("%w: threshold and amount must be positive", ErrInvalidInput)
	}

	sql := `
	UPDATE products
	SET stock = stock + $2
	WHERE stock < $1
	RETURNING
		product_id,
		name,
		price,
		stock,
		created_at`

	rows, err := r.db.Query(ctx, sql, threshold, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to restock products: %w", err)
	}

	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]models.Product, error) {
	var products []models.Product

	for rows.Next() {
		var p models.Product

		err := rows.Scan(&p.ProductID,
			&p.Name,
			&p.Price,
			&p.Stock,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan products: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return products, nil
}
