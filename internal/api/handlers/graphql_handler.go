package handlers

import (
	"net/http"

	"github.com/graphql-go/graphql"
)

type GraphQLHandler struct {
	schema graphql.Schema
}

func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// ServeGraphQL executes a single GraphQL document posted as JSON. Resolver
// errors come back in the standard errors array with HTTP 200; only a
// malformed request is an HTTP error.
func (h *GraphQLHandler) ServeGraphQL(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "query is required", nil)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	writeJSON(w, http.StatusOK, result)
}
