package cron

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm-service/internal/filters"
	"crm-service/internal/models"
	"crm-service/internal/repository"
	"crm-service/internal/service"
)

type stubProductRepo struct {
	restocked  []models.Product
	restockErr error
}

func (f *stubProductRepo) Create(ctx context.Context, p *models.Product) error {
	return nil
}

func (f *stubProductRepo) GetByID(ctx context.Context, id int) (*models.Product, error) {
	return nil, repository.ErrNotFound
}

func (f *stubProductRepo) List(ctx context.Context, _ filters.ProductFilter) ([]models.Product, error) {
	return nil, nil
}

func (f *stubProductRepo) RestockBelowThreshold(ctx context.Context, threshold, amount int) ([]models.Product, error) {
	return f.restocked, f.restockErr
}

type stubOrderRepo struct {
	orders  []models.Order
	listErr error
}

func (f *stubOrderRepo) Create(ctx context.Context, order *models.Order, productIDs []int) error {
	return nil
}

func (f *stubOrderRepo) SetProducts(ctx context.Context, orderID int, productIDs []int) (*models.Order, error) {
	return nil, repository.ErrNotFound
}

func (f *stubOrderRepo) GetByID(ctx context.Context, id int) (*models.Order, error) {
	return nil, repository.ErrNotFound
}

func (f *stubOrderRepo) List(ctx context.Context, _ filters.OrderFilter) ([]models.Order, error) {
	return f.orders, f.listErr
}

func newTestJobs(products *stubProductRepo, orders *stubOrderRepo, graphqlURL string) (*Jobs, *bytes.Buffer, *bytes.Buffer, *bytes.Buffer) {
	svc := service.New(nil, products, orders)

	var heartbeat, lowStock, reminders bytes.Buffer
	jobs := NewJobs(svc, graphqlURL,
		log.New(&heartbeat, "", 0),
		log.New(&lowStock, "", 0),
		log.New(&reminders, "", 0),
	)
	return jobs, &heartbeat, &lowStock, &reminders
}

func TestHeartbeatLogsHello(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"hello":"Hello, GraphQL!"}}`))
	}))
	defer srv.Close()

	jobs, heartbeat, _, _ := newTestJobs(&stubProductRepo{}, &stubOrderRepo{}, srv.URL)

	jobs.Heartbeat()

	assert.Contains(t, heartbeat.String(), "CRM is alive - GraphQL hello: Hello, GraphQL!")
}

func TestHeartbeatLogsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	jobs, heartbeat, _, _ := newTestJobs(&stubProductRepo{}, &stubOrderRepo{}, srv.URL)

	jobs.Heartbeat()

	out := heartbeat.String()
	assert.Contains(t, out, "CRM is alive - GraphQL error:")
	assert.Contains(t, out, "unexpected status 500")
}

func TestUpdateLowStockLogsProducts(t *testing.T) {
	products := &stubProductRepo{
		restocked: []models.Product{
			{ProductID: 1, Name: "P", Price: decimal.NewFromInt(1), Stock: 12},
			{ProductID: 2, Name: "R", Price: decimal.NewFromInt(2), Stock: 17},
		},
	}
	jobs, _, lowStock, _ := newTestJobs(products, &stubOrderRepo{}, "http://unused")

	jobs.UpdateLowStock()

	out := lowStock.String()
	assert.Contains(t, out, "Updated P to stock: 12")
	assert.Contains(t, out, "Updated R to stock: 17")
	assert.Contains(t, out, "Successfully updated 2 low-stock products")
}

func TestUpdateLowStockSwallowsError(t *testing.T) {
	products := &stubProductRepo{restockErr: errors.New("db down")}
	jobs, _, lowStock, _ := newTestJobs(products, &stubOrderRepo{}, "http://unused")

	// Must not panic or propagate; the failure only reaches the log.
	jobs.UpdateLowStock()

	assert.Contains(t, lowStock.String(), "Error updating low-stock products: db down")
}

func TestOrderRemindersLogsRecentOrders(t *testing.T) {
	orders := &stubOrderRepo{
		orders: []models.Order{
			{OrderID: 4, CustomerEmail: "a@example.com", OrderDate: time.Now()},
			{OrderID: 9, CustomerEmail: "b@example.com", OrderDate: time.Now()},
		},
	}
	jobs, _, _, reminders := newTestJobs(&stubProductRepo{}, orders, "http://unused")

	jobs.OrderReminders()

	out := reminders.String()
	assert.Contains(t, out, "Order ID: 4 - Customer Email: a@example.com")
	assert.Contains(t, out, "Order ID: 9 - Customer Email: b@example.com")
	assert.Contains(t, out, "Order reminders processed!")
}

func TestOrderRemindersSwallowsError(t *testing.T) {
	orders := &stubOrderRepo{listErr: errors.New("db down")}
	jobs, _, _, reminders := newTestJobs(&stubProductRepo{}, orders, "http://unused")

	jobs.OrderReminders()

	assert.Contains(t, reminders.String(), "Error processing order reminders: db down")
}
