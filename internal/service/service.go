// Package service exposes the CRM's mutation and query operations as plain
// functions over the repositories. Both the GraphQL layer and the scheduled
// jobs call into it; nothing here knows about transports.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"crm-service/internal/filters"
	"crm-service/internal/models"
	"crm-service/internal/repository"
)

// RestockAmount is how much the low-stock remediation adds to each
// qualifying product.
const RestockAmount = 10

type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

type ProductInput struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

type OrderInput struct {
	CustomerID int
	ProductIDs []int
	OrderDate  *time.Time
}

type BulkCustomersResult struct {
	Customers []models.Customer
	Errors    []repository.BulkItemError
}

type LowStockResult struct {
	SuccessMessage  string
	UpdatedProducts []models.Product
}

type Service struct {
	customers repository.CustomerRepository
	products  repository.ProductRepository
	orders    repository.OrderRepository
}

func New(customers repository.CustomerRepository, products repository.ProductRepository, orders repository.OrderRepository) *Service {
	return &Service{
		customers: customers,
		products:  products,
		orders:    orders,
	}
}

// Hello is the heartbeat probe target.
func (s *Service) Hello() string {
	return "Hello, GraphQL!"
}

func (s *Service) CreateCustomer(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	c := &models.Customer{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// BulkCreateCustomers attempts every input and reports per-item failures by
// input index; valid entries in the same batch still succeed.
func (s *Service) BulkCreateCustomers(ctx context.Context, ins []CustomerInput) (*BulkCustomersResult, error) {
	customers := make([]models.Customer, len(ins))
	for i, in := range ins {
		customers[i] = models.Customer{
			Name:  in.Name,
			Email: in.Email,
			Phone: in.Phone,
		}
	}

	created, itemErrs, err := s.customers.BulkCreate(ctx, customers)
	if err != nil {
		return nil, err
	}

	return &BulkCustomersResult{Customers: created, Errors: itemErrs}, nil
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	p := &models.Product{
		Name:  in.Name,
		Price: in.Price,
		Stock: in.Stock,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateOrder is all-or-nothing: any invalid reference fails the whole
// operation with nothing persisted.
func (s *Service) CreateOrder(ctx context.Context, in OrderInput) (*models.Order, error) {
	o := &models.Order{CustomerID: in.CustomerID}
	if in.OrderDate != nil {
		o.OrderDate = *in.OrderDate
	}
	if err := s.orders.Create(ctx, o, in.ProductIDs); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateOrderProducts replaces an order's product association and returns
// the order with its total recomputed from the new set.
func (s *Service) UpdateOrderProducts(ctx context.Context, orderID int, productIDs []int) (*models.Order, error) {
	return s.orders.SetProducts(ctx, orderID, productIDs)
}

// UpdateLowStockProducts restocks every product below the low-stock
// threshold by RestockAmount. Repeated invocations keep restocking anything
// still under the threshold.
func (s *Service) UpdateLowStockProducts(ctx context.Context) (*LowStockResult, error) {
	updated, err := s.products.RestockBelowThreshold(ctx, models.LowStockThreshold, RestockAmount)
	if err != nil {
		return nil, err
	}

	return &LowStockResult{
		SuccessMessage:  fmt.Sprintf("Successfully updated %d low-stock products", len(updated)),
		UpdatedProducts: updated,
	}, nil
}

func (s *Service) Customer(ctx context.Context, id int) (*models.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *Service) Customers(ctx context.Context, f filters.CustomerFilter) ([]models.Customer, error) {
	return s.customers.List(ctx, f)
}

func (s *Service) Products(ctx context.Context, f filters.ProductFilter) ([]models.Product, error) {
	return s.products.List(ctx, f)
}

func (s *Service) Orders(ctx context.Context, f filters.OrderFilter) ([]models.Order, error) {
	return s.orders.List(ctx, f)
}
