// Package filters translates structured filter criteria into SQL predicates
// over the CRM entities. Filters are pure: compiling one has no side effects,
// every criterion is optional, and supplied criteria compose with AND. An
// omitted criterion never narrows the result set.
package filters

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"crm-service/internal/models"
)

// Where accumulates SQL conditions and their positional arguments.
type Where struct {
	conds []string
	args  []any
}

// Add appends a condition. expr must contain a single %d verb marking where
// the argument's positional placeholder number goes.
func (w *Where) Add(expr string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(expr, len(w.args)))
}

// AddExpr appends a condition that takes no argument.
func (w *Where) AddExpr(expr string) {
	w.conds = append(w.conds, expr)
}

// Clause renders the conditions as a WHERE clause, or "" when no condition
// was added.
func (w *Where) Clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (w *Where) Args() []any {
	return w.args
}

type CustomerFilter struct {
	NameContains  string
	EmailContains string
	CreatedAtGte  *time.Time
	CreatedAtLte  *time.Time
	PhonePattern  string
}

// Apply compiles the filter against the customers table.
// PhonePattern only narrows on the "+1" prefix; any other pattern is a no-op.
func (f CustomerFilter) Apply(w *Where) {
	if f.NameContains != "" {
		w.Add("c.name ILIKE '%%' || $%d || '%%'", f.NameContains)
	}
	if f.EmailContains != "" {
		w.Add("c.email ILIKE '%%' || $%d || '%%'", f.EmailContains)
	}
	if f.CreatedAtGte != nil {
		w.Add("c.created_at >= $%d", *f.CreatedAtGte)
	}
	if f.CreatedAtLte != nil {
		w.Add("c.created_at <= $%d", *f.CreatedAtLte)
	}
	if strings.HasPrefix(f.PhonePattern, "+1") {
		w.AddExpr("c.phone LIKE '+1%'")
	}
}

type ProductFilter struct {
	NameContains string
	PriceGte     *decimal.Decimal
	PriceLte     *decimal.Decimal
	StockGte     *int
	StockLte     *int
	LowStock     bool
}

// IsZero reports whether no criterion is set. Unfiltered product listings
// are cacheable; filtered ones bypass the cache.
func (f ProductFilter) IsZero() bool {
	return f == ProductFilter{}
}

func (f ProductFilter) Apply(w *Where) {
	if f.NameContains != "" {
		w.Add("p.name ILIKE '%%' || $%d || '%%'", f.NameContains)
	}
	if f.PriceGte != nil {
		w.Add("p.price >= $%d", *f.PriceGte)
	}
	if f.PriceLte != nil {
		w.Add("p.price <= $%d", *f.PriceLte)
	}
	if f.StockGte != nil {
		w.Add("p.stock >= $%d", *f.StockGte)
	}
	if f.StockLte != nil {
		w.Add("p.stock <= $%d", *f.StockLte)
	}
	if f.LowStock {
		w.Add("p.stock < $%d", models.LowStockThreshold)
	}
}

type OrderFilter struct {
	TotalAmountGte       *decimal.Decimal
	TotalAmountLte       *decimal.Decimal
	OrderDateGte         *time.Time
	OrderDateLte         *time.Time
	CustomerNameContains string
	ProductNameContains  string
	ProductID            *int
}

// Apply compiles the filter against orders o joined with customers c.
// Product criteria go through EXISTS subqueries on the join table so that
// an order matching on one product is returned once.
func (f OrderFilter) Apply(w *Where) {
	if f.TotalAmountGte != nil {
		w.Add("o.total_amount >= $%d", *f.TotalAmountGte)
	}
	if f.TotalAmountLte != nil {
		w.Add("o.total_amount <= $%d", *f.TotalAmountLte)
	}
	if f.OrderDateGte != nil {
		w.Add("o.order_date >= $%d", *f.OrderDateGte)
	}
	if f.OrderDateLte != nil {
		w.Add("o.order_date <= $%d", *f.OrderDateLte)
	}
	if f.CustomerNameContains != "" {
		w.Add("c.name ILIKE '%%' || $%d || '%%'", f.CustomerNameContains)
	}
	if f.ProductNameContains != "" {
		w.Add(`EXISTS (
			SELECT 1 FROM order_products op
			JOIN products p ON p.product_id = op.product_id
			WHERE op.order_id = o.order_id AND p.name ILIKE '%%' || $%d || '%%')`, f.ProductNameContains)
	}
	if f.ProductID != nil {
		w.Add(`EXISTS (
			SELECT 1 FROM order_products op
			WHERE op.order_id = o.order_id AND op.product_id = $%d)`, *f.ProductID)
	}
}
