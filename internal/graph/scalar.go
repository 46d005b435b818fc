package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"
)

// decimalType transports shopspring decimals as strings so price and
// total_amount never lose precision on the wire. Numeric literals are
// accepted on input.
var decimalType = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Decimal",
	Description: "Arbitrary-precision decimal number, serialized as a string.",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case decimal.Decimal:
			return v.String()
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			return v.String()
		}
		return nil
	},
	ParseValue:   parseDecimal,
	ParseLiteral: parseDecimalLiteral,
})

func parseDecimal(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil
		}
		return d
	case int:
		return decimal.NewFromInt(int64(v))
	case float64:
		return decimal.NewFromFloat(v)
	}
	return nil
}

func parseDecimalLiteral(valueAST ast.Value) interface{} {
	switch v := valueAST.(type) {
	case *ast.StringValue:
		return parseDecimal(v.Value)
	case *ast.IntValue:
		d, err := decimal.NewFromString(v.Value)
		if err != nil {
			return nil
		}
		return d
	case *ast.FloatValue:
		d, err := decimal.NewFromString(v.Value)
		if err != nil {
			return nil
		}
		return d
	}
	return nil
}
