package graph

import (
	"time"

	"github.com/shopspring/decimal"

	"crm-service/internal/filters"
	"crm-service/internal/service"
)

// Helpers for pulling optional values out of graphql-go argument maps.

func stringArg(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func boolArg(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

func intPtrArg(m map[string]interface{}, key string) *int {
	if v, ok := m[key].(int); ok {
		return &v
	}
	return nil
}

func timePtrArg(m map[string]interface{}, key string) *time.Time {
	if v, ok := m[key].(time.Time); ok {
		return &v
	}
	return nil
}

func decimalPtrArg(m map[string]interface{}, key string) *decimal.Decimal {
	if v, ok := m[key].(decimal.Decimal); ok {
		return &v
	}
	return nil
}

func customerInputFromArgs(m map[string]interface{}) service.CustomerInput {
	return service.CustomerInput{
		Name:  stringArg(m, "name"),
		Email: stringArg(m, "email"),
		Phone: stringArg(m, "phone"),
	}
}

func productInputFromArgs(m map[string]interface{}) service.ProductInput {
	in := service.ProductInput{
		Name:  stringArg(m, "name"),
		Stock: 0,
	}
	if price, ok := m["price"].(decimal.Decimal); ok {
		in.Price = price
	}
	if stock, ok := m["stock"].(int); ok {
		in.Stock = stock
	}
	return in
}

func orderInputFromArgs(m map[string]interface{}) service.OrderInput {
	in := service.OrderInput{
		OrderDate: timePtrArg(m, "orderDate"),
	}
	if id, ok := m["customerId"].(int); ok {
		in.CustomerID = id
	}
	if raw, ok := m["productIds"].([]interface{}); ok {
		for _, v := range raw {
			if id, ok := v.(int); ok {
				in.ProductIDs = append(in.ProductIDs, id)
			}
		}
	}
	return in
}

func customerFilterFromArgs(m map[string]interface{}) filters.CustomerFilter {
	return filters.CustomerFilter{
		NameContains:  stringArg(m, "nameContains"),
		EmailContains: stringArg(m, "emailContains"),
		CreatedAtGte:  timePtrArg(m, "createdAtGte"),
		CreatedAtLte:  timePtrArg(m, "createdAtLte"),
		PhonePattern:  stringArg(m, "phonePattern"),
	}
}

func productFilterFromArgs(m map[string]interface{}) filters.ProductFilter {
	return filters.ProductFilter{
		NameContains: stringArg(m, "nameContains"),
		PriceGte:     decimalPtrArg(m, "priceGte"),
		PriceLte:     decimalPtrArg(m, "priceLte"),
		StockGte:     intPtrArg(m, "stockGte"),
		StockLte:     intPtrArg(m, "stockLte"),
		LowStock:     boolArg(m, "lowStock"),
	}
}

func orderFilterFromArgs(m map[string]interface{}) filters.OrderFilter {
	return filters.OrderFilter{
		TotalAmountGte:       decimalPtrArg(m, "totalAmountGte"),
		TotalAmountLte:       decimalPtrArg(m, "totalAmountLte"),
		OrderDateGte:         timePtrArg(m, "orderDateGte"),
		OrderDateLte:         timePtrArg(m, "orderDateLte"),
		CustomerNameContains: stringArg(m, "customerName"),
		ProductNameContains:  stringArg(m, "productName"),
		ProductID:            intPtrArg(m, "productId"),
	}
}
