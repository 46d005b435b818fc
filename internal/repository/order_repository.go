package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"crm-service/internal/filters"
	"crm-service/internal/models"
)

type orderRepo struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &orderRepo{db: db}
}

// Create persists the order, its product associations and the derived total
// in one transaction. Every referenced product must resolve; any miss rolls
// the whole operation back.
func (r *orderRepo) Create(ctx context.Context, order *models.Order, productIDs []int) error {
	if order == nil {
		return fmt.Errorf("%w: order cannot be nil", ErrInvalidInput)
	}
	if order.CustomerID <= 0 {
		return fmt.Errorf("%w: customer ID must be positive", ErrInvalidInput)
	}
	if len(productIDs) == 0 {
		return ErrEmptyProductSet
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	sql := `SELECT name, email FROM customers WHERE customer_id = $1`

	err = tx.QueryRow(ctx, sql, order.CustomerID).Scan(&order.CustomerName, &order.CustomerEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: invalid customer ID %d", ErrNotFound, order.CustomerID)
		}
		return fmt.Errorf("failed to get customer by id: %w", err)
	}

	products, err := resolveProducts(ctx, tx, productIDs)
	if err != nil {
		return err
	}

	var orderDate *time.Time
	if !order.OrderDate.IsZero() {
		orderDate = &order.OrderDate
	}

	insert := `INSERT INTO orders (
	customer_id,
	order_date
	) VALUES ($1, COALESCE($2, now()))
	RETURNING order_id, order_date
	`

	err = tx.QueryRow(ctx, insert, order.CustomerID, orderDate).Scan(&order.OrderID, &order.OrderDate)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for _, p := range products {
		insertJoinSQL := `INSERT INTO order_products (order_id, product_id)
		VALUES ($1, $2)
	`
		_, err = tx.Exec(ctx, insertJoinSQL, order.OrderID, p.ProductID)
		if err != nil {
			return fmt.Errorf("failed to associate product %d: %w", p.ProductID, err)
		}
	}

	total, err := recomputeTotal(ctx, tx, order.OrderID)
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	order.TotalAmount = total
	order.Products = products

	return nil
}

// SetProducts replaces the order's product association and recomputes the
// total inside the same transaction.
func (r *orderRepo) SetProducts(ctx context.Context, orderID int, productIDs []int) (*models.Order, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("%w: order ID must be positive", ErrInvalidInput)
	}
	if len(productIDs) == 0 {
		return nil, ErrEmptyProductSet
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE order_id = $1)`, orderID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check order %d: %w", orderID, err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	products, err := resolveProducts(ctx, tx, productIDs)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `DELETE FROM order_products WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to clear order products: %w", err)
	}

	for _, p := range products {
		_, err = tx.Exec(ctx, `INSERT INTO order_products (order_id, product_id) VALUES ($1, $2)`, orderID, p.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to associate product %d: %w", p.ProductID, err)
		}
	}

	if _, err := recomputeTotal(ctx, tx, orderID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return r.GetByID(ctx, orderID)
}

// resolveProducts loads every referenced product for update. All ids must
// resolve; a partial match is reported as not found.
func resolveProducts(ctx context.Context, tx pgx.Tx, productIDs []int) ([]models.Product, error) {
	ids := make([]int, 0, len(productIDs))
	seen := make(map[int]bool, len(productIDs))
	for _, id := range productIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	sql := `SELECT
	product_id,
	name,
	price,
	stock,
	created_at
	FROM products WHERE product_id = ANY($1::int[])
	ORDER BY product_id
	`

	rows, err := tx.Query(ctx, sql, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get products information: %w", err)
	}

	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	if len(products) != len(ids) {
		return nil, fmt.Errorf("%w: one or more invalid product IDs", ErrNotFound)
	}

	return products, nil
}

// recomputeTotal rewrites total_amount from the current association. The
// statement is idempotent: recomputing an unchanged association yields the
// same value, and an empty association yields 0.
func recomputeTotal(ctx context.Context, tx pgx.Tx, orderID int) (decimal.Decimal, error) {
	sql := `
	UPDATE orders
	SET total_amount = COALESCE((
		SELECT SUM(p.price)
		FROM order_products op
		JOIN products p ON p.product_id = op.product_id
		WHERE op.order_id = orders.order_id), 0)
	WHERE order_id = $1
	RETURNING total_amount`

	var total decimal.Decimal
	if err := tx.QueryRow(ctx, sql, orderID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to recompute order total %d: %w", orderID, err)
	}

	return total, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id int) (*models.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: order ID must be positive", ErrInvalidInput)
	}

	sql := ` SELECT
		o.order_id,
		o.customer_id,
		c.name,
		c.email,
		o.order_date,
		o.total_amount
		FROM orders o
		JOIN customers c ON c.customer_id = o.customer_id
		WHERE o.order_id = $1
	`

	var order models.Order

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&order.OrderID,
		&order.CustomerID,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.OrderDate,
		&order.TotalAmount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}

	productsByOrder, err := r.loadOrderProducts(ctx, []int{order.OrderID})
	if err != nil {
		return nil, err
	}
	order.Products = productsByOrder[order.OrderID]

	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, f filters.OrderFilter) ([]models.Order, error) {
	var w filters.Where
	f.Apply(&w)

	sql := `
	SELECT
		o.order_id,
		o.customer_id,
		c.name,
		c.email,
		o.order_date,
		o.total_amount
	FROM orders o
	JOIN customers c ON c.customer_id = o.customer_id` + w.Clause() + `
	ORDER BY o.order_id`

	rows, err := r.db.Query(ctx, sql, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	defer rows.Close()

	var orders []models.Order
	var orderIDs []int

	for rows.Next() {
		var o models.Order

		err := rows.Scan(&o.OrderID,
			&o.CustomerID,
			&o.CustomerName,
			&o.CustomerEmail,
			&o.OrderDate,
			&o.TotalAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan orders: %w", err)
		}
		orders = append(orders, o)
		orderIDs = append(orderIDs, o.OrderID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	productsByOrder, err := r.loadOrderProducts(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Products = productsByOrder[orders[i].OrderID]
	}

	return orders, nil
}

// loadOrderProducts fetches the associated products for a set of orders in
// one query.
func (r *orderRepo) loadOrderProducts(ctx context.Context, orderIDs []int) (map[int][]models.Product, error) {
	sql := `
	SELECT
		op.order_id,
		p.product_id,
		p.name,
		p.price,
		p.stock,
		p.created_at
	FROM order_products op
	JOIN products p ON p.product_id = op.product_id
	WHERE op.order_id = ANY($1::int[])
	ORDER BY op.order_id, p.product_id`

	rows, err := r.db.Query(ctx, sql, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get order products: %w", err)
	}

	defer rows.Close()

	productsByOrder := make(map[int][]models.Product)

	for rows.Next() {
		var orderID int
		var p models.Product

		err := rows.Scan(&orderID,
			&p.ProductID,
			&p.Name,
			&p.Price,
			&p.Stock,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order products: %w", err)
		}
		productsByOrder[orderID] = append(productsByOrder[orderID], p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return productsByOrder, nil
}
