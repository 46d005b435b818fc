package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"crm-service/internal/filters"
	"crm-service/internal/models"
)

type customerRepo struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) CustomerRepository {
	return &customerRepo{db: db}
}

// querier is satisfied by both pgxpool.Pool and pgx.Tx so inserts can run
// standalone or inside a bulk transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertCustomer(ctx context.Context, q querier, c *models.Customer) error {
	if err := models.ValidateCustomer(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	sql := `
		INSERT INTO customers (
			name,
			email,
			phone
	) VALUES ($1, $2, $3)
	RETURNING customer_id, created_at
	`

	err := q.QueryRow(ctx, sql,
		c.Name,
		c.Email,
		c.Phone,
	).Scan(&c.CustomerID, &c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return ErrDuplicateEmail
			}
		}
		return fmt.Errorf("create customer: %w", err)
	}

	return nil
}

func (r *customerRepo) Create(ctx context.Context, c *models.Customer) error {
	return insertCustomer(ctx, r.db, c)
}

// BulkCreate inserts all customers inside one transaction. Each item runs
// under its own savepoint: a failing item is rolled back and recorded with
// its input index, while the rest of the batch still commits.
func (r *customerRepo) BulkCreate(ctx context.Context, customers []models.Customer) ([]models.Customer, []BulkItemError, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var created []models.Customer
	var itemErrs []BulkItemError

	for i := range customers {
		c := customers[i]

		sp, err := tx.Begin(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create savepoint: %w", err)
		}
		if err := insertCustomer(ctx, sp, &c); err != nil {
			_ = sp.Rollback(ctx)
			itemErrs = append(itemErrs, BulkItemError{Index: i, Message: err.Error()})
			continue
		}
		if err := sp.Commit(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to release savepoint: %w", err)
		}
		created = append(created, c)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return created, itemErrs, nil
}

func (r *customerRepo) GetByID(ctx context.Context, id int) (*models.Customer, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `
		SELECT
		customer_id,
		name,
		email,
		phone,
		created_at
		FROM customers WHERE customer_id = $1
	`

	var customer models.Customer

	err := r.db.QueryRow(ctx, sql, id).Scan(
		&customer.CustomerID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer with id %d: %w", id, err)
	}

	return &customer, nil
}

func (r *customerRepo) List(ctx context.Context, f filters.CustomerFilter) ([]models.Customer, error) {
	var w filters.Where
	f.Apply(&w)

	sql := `
	SELECT
	c.customer_id,
	c.name,
	c.email,
	c.phone,
	c.created_at
	FROM customers c` + w.Clause() + `
	ORDER BY c.customer_id`

	rows, err := r.db.Query(ctx, sql, w.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	defer rows.Close()

	var customers []models.Customer

	for rows.Next() {
		var c models.Customer

		err := rows.Scan(&c.CustomerID,
			&c.Name,
			&c.Email,
			&c.Phone,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customers: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return customers, nil
}
