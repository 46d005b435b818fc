package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	CustomerID int       `json:"customer_id"`
	Name       string    `json:"name" validate:"required,max=100"`
	Email      string    `json:"email" validate:"required,email,max=254"`
	Phone      string    `json:"phone" validate:"omitempty,crmphone"`
	CreatedAt  time.Time `json:"created_at"`
}

type Product struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name" validate:"required,max=100"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

// LowStock reports whether the product is below the replenishment threshold.
func (p Product) LowStock() bool {
	return p.Stock < LowStockThreshold
}

// LowStockThreshold is the stock level below which a product is considered
// low-stock and picked up by the nightly replenishment job.
const LowStockThreshold = 10

// Order references exactly one customer and one or more products.
// TotalAmount is derived from the associated products' prices and is never
// set by callers; the repository recomputes it whenever the association
// changes.
type Order struct {
	OrderID       int             `json:"order_id"`
	CustomerID    int             `json:"customer_id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	OrderDate     time.Time       `json:"order_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Products      []Product       `json:"products,omitempty"`
}
