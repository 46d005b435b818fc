package repository

import (
	"context"

	"crm-service/internal/filters"
	"crm-service/internal/models"
)

// BulkItemError records a failed entry of a bulk operation by its position
// in the caller's input list.
type BulkItemError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	BulkCreate(ctx context.Context, customers []models.Customer) ([]models.Customer, []BulkItemError, error)
	GetByID(ctx context.Context, id int) (*models.Customer, error)
	List(ctx context.Context, f filters.CustomerFilter) ([]models.Customer, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id int) (*models.Product, error)
	List(ctx context.Context, f filters.ProductFilter) ([]models.Product, error)

	// RestockBelowThreshold increments the stock of every product whose
	// stock is strictly below threshold and returns the updated rows.
	RestockBelowThreshold(ctx context.Context, threshold, amount int) ([]models.Product, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order, productIDs []int) error
	SetProducts(ctx context.Context, orderID int, productIDs []int) (*models.Order, error)
	GetByID(ctx context.Context, id int) (*models.Order, error)
	List(ctx context.Context, f filters.OrderFilter) ([]models.Order, error)
}
