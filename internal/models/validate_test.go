package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCustomerValid(t *testing.T) {
	for _, phone := range []string{"", "+11234567890", "12345678901", "+7 916 123 4567", "1-234-567-8901"} {
		c := &Customer{Name: "Alice", Email: "alice@example.com", Phone: phone}
		assert.NoError(t, ValidateCustomer(c), "phone %q", phone)
	}
}

func TestValidateCustomerBadEmail(t *testing.T) {
	c := &Customer{Name: "Alice", Email: "not-an-email"}

	err := ValidateCustomer(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestValidateCustomerBadPhone(t *testing.T) {
	// The pattern wants a 1-4 digit country code ahead of the 3-3-4 groups,
	// so a bare 10-digit number does not pass.
	for _, phone := range []string{"abc", "12", "1234567890", "++11234567890", "123-45-6789"} {
		c := &Customer{Name: "Alice", Email: "alice@example.com", Phone: phone}

		err := ValidateCustomer(c)
		require.Error(t, err, "phone %q", phone)
		assert.Contains(t, err.Error(), "phone", "phone %q", phone)
	}
}

func TestValidateCustomerMissingName(t *testing.T) {
	c := &Customer{Email: "alice@example.com"}

	err := ValidateCustomer(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestValidateProduct(t *testing.T) {
	p := &Product{Name: "Widget", Price: decimal.RequireFromString("9.99"), Stock: 5}
	assert.NoError(t, ValidateProduct(p))
}

func TestValidateProductPriceMustBePositive(t *testing.T) {
	for _, price := range []string{"0", "-1", "-0.01"} {
		p := &Product{Name: "Widget", Price: decimal.RequireFromString(price)}

		err := ValidateProduct(p)
		require.Error(t, err, "price %s", price)
		assert.Contains(t, err.Error(), "price")
	}
}

func TestValidateProductStockCannotBeNegative(t *testing.T) {
	p := &Product{Name: "Widget", Price: decimal.NewFromInt(1), Stock: -1}

	err := ValidateProduct(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stock")
}

func TestProductLowStock(t *testing.T) {
	assert.True(t, Product{Stock: 9}.LowStock())
	assert.False(t, Product{Stock: 10}.LowStock())
	assert.False(t, Product{Stock: 15}.LowStock())
}
