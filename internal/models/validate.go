package models

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Accepts +1234567890 or 123-456-7890 style numbers.
var phoneRe = regexp.MustCompile(`^\+?\d{1,4}?[-.\s]?\d{3}[-.\s]?\d{3}[-.\s]?\d{4}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("crmphone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}

// ValidateCustomer checks the customer's fields and returns a descriptive
// error for the first violation found.
func ValidateCustomer(c *Customer) error {
	if err := validate.Struct(c); err != nil {
		var validationErr validator.ValidationErrors
		if errors.As(err, &validationErr) {
			firstErr := validationErr[0]
			switch firstErr.Field() {
			case "Name":
				return errors.New("name is required and must be at most 100 characters")
			case "Email":
				return errors.New("invalid email format")
			case "Phone":
				return errors.New("invalid phone format, use +1234567890 or 123-456-7890")
			}
		}
		return err
	}
	return nil
}

// ValidateProduct checks name, price and stock. Price and stock bounds are
// checked explicitly because the validator tags cannot inspect a decimal.
func ValidateProduct(p *Product) error {
	if err := validate.Struct(p); err != nil {
		return errors.New("name is required and must be at most 100 characters")
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("price must be positive, got %s", p.Price)
	}
	if p.Stock < 0 {
		return fmt.Errorf("stock cannot be negative, got %d", p.Stock)
	}
	return nil
}
