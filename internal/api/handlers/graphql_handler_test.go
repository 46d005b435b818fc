package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-service/internal/graph"
	"crm-service/internal/service"
)

func newHelloHandler(t *testing.T) *GraphQLHandler {
	t.Helper()

	// hello touches no repository, so a service without backends is enough
	// for transport-level tests.
	schema, err := graph.NewSchema(service.New(nil, nil, nil))
	require.NoError(t, err)

	return NewGraphQLHandler(schema)
}

func TestServeGraphQLHello(t *testing.T) {
	h := newHelloHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query": "{ hello }"}`))
	rec := httptest.NewRecorder()

	h.ServeGraphQL(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data struct {
			Hello string `json:"hello"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	assert.Equal(t, "Hello, GraphQL!", payload.Data.Hello)
}

func TestServeGraphQLResolverErrorStaysHTTP200(t *testing.T) {
	h := newHelloHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query": "{ nosuchfield }"}`))
	rec := httptest.NewRecorder()

	h.ServeGraphQL(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	require.NotEmpty(t, payload.Errors)
}

func TestServeGraphQLRejectsBadJSON(t *testing.T) {
	h := newHelloHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	h.ServeGraphQL(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeGraphQLRequiresQuery(t *testing.T) {
	h := newHelloHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.ServeGraphQL(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
