// Package graph defines the GraphQL schema over the CRM service: filtered
// queries for customers, products and orders, plus the create / bulk-create
// / low-stock mutations.
package graph

import (
	"errors"

	"github.com/graphql-go/graphql"

	"crm-service/internal/models"
	"crm-service/internal/repository"
	"crm-service/internal/service"
)

type createCustomerPayload struct {
	Customer *models.Customer `json:"customer"`
	Message  string           `json:"message"`
}

type createProductPayload struct {
	Product *models.Product `json:"product"`
}

type createOrderPayload struct {
	Order *models.Order `json:"order"`
}

type updateOrderProductsPayload struct {
	Order *models.Order `json:"order"`
}

type builder struct {
	svc *service.Service

	customerType *graphql.Object
	productType  *graphql.Object
	orderType    *graphql.Object

	customerInput       *graphql.InputObject
	productInput        *graphql.InputObject
	orderInput          *graphql.InputObject
	customerFilterInput *graphql.InputObject
	productFilterInput  *graphql.InputObject
	orderFilterInput    *graphql.InputObject
}

// NewSchema builds the executable schema bound to the given service. No
// package-level schema state: every dependency is injected here.
func NewSchema(svc *service.Service) (graphql.Schema, error) {
	b := &builder{svc: svc}
	b.buildTypes()
	b.buildInputs()

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    b.queryType(),
		Mutation: b.mutationType(),
	})
}

func (b *builder) buildTypes() {
	b.customerType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Customer",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					c, ok := customerFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return c.CustomerID, nil
				},
			},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"phone":     &graphql.Field{Type: graphql.String},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	b.productType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					pr, ok := productFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return pr.ProductID, nil
				},
			},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"price":     &graphql.Field{Type: graphql.NewNonNull(decimalType)},
			"stock":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"createdAt": &graphql.Field{Type: graphql.DateTime},
		},
	})

	b.orderType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Int),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					o, ok := orderFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return o.OrderID, nil
				},
			},
			"customer": &graphql.Field{
				Type: graphql.NewNonNull(b.customerType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					o, ok := orderFromSource(p.Source)
					if !ok {
						return nil, nil
					}
					return models.Customer{
						CustomerID: o.CustomerID,
						Name:       o.CustomerName,
						Email:      o.CustomerEmail,
					}, nil
				},
			},
			"orderDate":   &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"totalAmount": &graphql.Field{Type: graphql.NewNonNull(decimalType)},
		},
	})

	// products is added after construction so orderType can be referenced
	// before productType in either order.
	b.orderType.AddFieldConfig("products", &graphql.Field{
		Type: graphql.NewList(graphql.NewNonNull(b.productType)),
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			o, ok := orderFromSource(p.Source)
			if !ok {
				return nil, nil
			}
			return o.Products, nil
		},
	})
}

func (b *builder) buildInputs() {
	b.customerInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CustomerInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	b.productInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"price": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(decimalType)},
			"stock": &graphql.InputObjectFieldConfig{Type: graphql.Int, DefaultValue: 0},
		},
	})

	b.orderInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OrderInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"customerId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"productIds": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.Int)))},
			"orderDate":  &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		},
	})

	b.customerFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CustomerFilterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"nameContains":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"emailContains": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"createdAtGte":  &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"createdAtLte":  &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"phonePattern":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	b.productFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProductFilterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"nameContains": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"priceGte":     &graphql.InputObjectFieldConfig{Type: decimalType},
			"priceLte":     &graphql.InputObjectFieldConfig{Type: decimalType},
			"stockGte":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"stockLte":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"lowStock":     &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})

	b.orderFilterInput = graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OrderFilterInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"totalAmountGte": &graphql.InputObjectFieldConfig{Type: decimalType},
			"totalAmountLte": &graphql.InputObjectFieldConfig{Type: decimalType},
			"orderDateGte":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"orderDateLte":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"customerName":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"productName":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"productId":      &graphql.InputObjectFieldConfig{Type: graphql.Int},
		},
	})
}

func (b *builder) queryType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return b.svc.Hello(), nil
				},
			},
			"customer": &graphql.Field{
				Type: b.customerType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					customer, err := b.svc.Customer(p.Context, id)
					if err != nil {
						if errors.Is(err, repository.ErrNotFound) {
							return nil, nil
						}
						return nil, publicError(err)
					}
					return customer, nil
				},
			},
			"customers": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(b.customerType)),
				Args: graphql.FieldConfigArgument{
					"filter": &graphql.ArgumentConfig{Type: b.customerFilterInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					f, _ := p.Args["filter"].(map[string]interface{})
					return b.svc.Customers(p.Context, customerFilterFromArgs(f))
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(b.productType)),
				Args: graphql.FieldConfigArgument{
					"filter": &graphql.ArgumentConfig{Type: b.productFilterInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					f, _ := p.Args["filter"].(map[string]interface{})
					return b.svc.Products(p.Context, productFilterFromArgs(f))
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(b.orderType)),
				Args: graphql.FieldConfigArgument{
					"filter": &graphql.ArgumentConfig{Type: b.orderFilterInput},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					f, _ := p.Args["filter"].(map[string]interface{})
					return b.svc.Orders(p.Context, orderFilterFromArgs(f))
				},
			},
		},
	})
}

func (b *builder) mutationType() *graphql.Object {
	errorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BulkItemError",
		Fields: graphql.Fields{
			"index":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	createCustomerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateCustomerPayload",
		Fields: graphql.Fields{
			"customer": &graphql.Field{Type: b.customerType},
			"message":  &graphql.Field{Type: graphql.String},
		},
	})

	bulkCreateCustomersType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BulkCreateCustomersPayload",
		Fields: graphql.Fields{
			"customers": &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(b.customerType))},
			"errors":    &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(errorType))},
		},
	})

	createProductType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateProductPayload",
		Fields: graphql.Fields{
			"product": &graphql.Field{Type: b.productType},
		},
	})

	createOrderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateOrderPayload",
		Fields: graphql.Fields{
			"order": &graphql.Field{Type: b.orderType},
		},
	})

	updateOrderProductsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "UpdateOrderProductsPayload",
		Fields: graphql.Fields{
			"order": &graphql.Field{Type: b.orderType},
		},
	})

	lowStockType := graphql.NewObject(graphql.ObjectConfig{
		Name: "UpdateLowStockProductsPayload",
		Fields: graphql.Fields{
			"successMessage":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedProducts": &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(b.productType))},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type: createCustomerType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.customerInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in, _ := p.Args["input"].(map[string]interface{})
					customer, err := b.svc.CreateCustomer(p.Context, customerInputFromArgs(in))
					if err != nil {
						return nil, publicError(err)
					}
					return createCustomerPayload{
						Customer: customer,
						Message:  "Customer created successfully",
					}, nil
				},
			},
			"bulkCreateCustomers": &graphql.Field{
				Type: bulkCreateCustomersType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(b.customerInput)))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					rawList, _ := p.Args["input"].([]interface{})
					ins := make([]service.CustomerInput, 0, len(rawList))
					for _, raw := range rawList {
						in, _ := raw.(map[string]interface{})
						ins = append(ins, customerInputFromArgs(in))
					}
					result, err := b.svc.BulkCreateCustomers(p.Context, ins)
					if err != nil {
						return nil, publicError(err)
					}
					return result, nil
				},
			},
			"createProduct": &graphql.Field{
				Type: createProductType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.productInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in, _ := p.Args["input"].(map[string]interface{})
					product, err := b.svc.CreateProduct(p.Context, productInputFromArgs(in))
					if err != nil {
						return nil, publicError(err)
					}
					return createProductPayload{Product: product}, nil
				},
			},
			"createOrder": &graphql.Field{
				Type: createOrderType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(b.orderInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in, _ := p.Args["input"].(map[string]interface{})
					order, err := b.svc.CreateOrder(p.Context, orderInputFromArgs(in))
					if err != nil {
						return nil, publicError(err)
					}
					return createOrderPayload{Order: order}, nil
				},
			},
			"updateOrderProducts": &graphql.Field{
				Type: updateOrderProductsType,
				Args: graphql.FieldConfigArgument{
					"orderId":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"productIds": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.Int)))},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					orderID, _ := p.Args["orderId"].(int)
					var productIDs []int
					if raw, ok := p.Args["productIds"].([]interface{}); ok {
						for _, v := range raw {
							if id, ok := v.(int); ok {
								productIDs = append(productIDs, id)
							}
						}
					}
					order, err := b.svc.UpdateOrderProducts(p.Context, orderID, productIDs)
					if err != nil {
						return nil, publicError(err)
					}
					return updateOrderProductsPayload{Order: order}, nil
				},
			},
			"updateLowStockProducts": &graphql.Field{
				Type: lowStockType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					result, err := b.svc.UpdateLowStockProducts(p.Context)
					if err != nil {
						return nil, publicError(err)
					}
					return result, nil
				},
			},
		},
	})
}

func customerFromSource(src interface{}) (models.Customer, bool) {
	switch v := src.(type) {
	case models.Customer:
		return v, true
	case *models.Customer:
		if v != nil {
			return *v, true
		}
	}
	return models.Customer{}, false
}

func productFromSource(src interface{}) (models.Product, bool) {
	switch v := src.(type) {
	case models.Product:
		return v, true
	case *models.Product:
		if v != nil {
			return *v, true
		}
	}
	return models.Product{}, false
}

func orderFromSource(src interface{}) (models.Order, bool) {
	switch v := src.(type) {
	case models.Order:
		return v, true
	case *models.Order:
		if v != nil {
			return *v, true
		}
	}
	return models.Order{}, false
}
