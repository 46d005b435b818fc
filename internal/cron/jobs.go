// Package cron holds the scheduled jobs: the heartbeat probe, the nightly
// low-stock remediation and the order reminder sweep. Every job catches its
// own failures and logs them; an error never reaches the scheduler.
package cron

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"crm-service/internal/filters"
	"crm-service/internal/service"
)

const jobTimeout = 30 * time.Second

type Jobs struct {
	svc        *service.Service
	graphqlURL string
	httpClient *http.Client

	heartbeatLog *log.Logger
	lowStockLog  *log.Logger
	remindersLog *log.Logger
}

func NewJobs(svc *service.Service, graphqlURL string, heartbeatLog, lowStockLog, remindersLog *log.Logger) *Jobs {
	return &Jobs{
		svc:          svc,
		graphqlURL:   graphqlURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		heartbeatLog: heartbeatLog,
		lowStockLog:  lowStockLog,
		remindersLog: remindersLog,
	}
}

// Heartbeat probes the GraphQL endpoint over HTTP, going through the full
// transport stack rather than calling the service directly, and logs whether
// the API answered.
func (j *Jobs) Heartbeat() {
	timestamp := time.Now().Format("02/01/2006-15:04:05")

	hello, err := j.queryHello()
	if err != nil {
		j.heartbeatLog.Printf("%s CRM is alive - GraphQL error: %v", timestamp, err)
		return
	}

	j.heartbeatLog.Printf("%s CRM is alive - GraphQL hello: %s", timestamp, hello)
}

func (j *Jobs) queryHello() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	body, err := json.Marshal(map[string]string{"query": "{ hello }"})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, j.graphqlURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := j.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Data struct {
			Hello string `json:"hello"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Data.Hello == "" {
		return "No response", nil
	}

	return payload.Data.Hello, nil
}

// UpdateLowStock runs the low-stock remediation mutation and logs each
// restocked product.
func (j *Jobs) UpdateLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result, err := j.svc.UpdateLowStockProducts(ctx)
	if err != nil {
		j.lowStockLog.Printf("Error updating low-stock products: %v", err)
		return
	}

	for _, p := range result.UpdatedProducts {
		j.lowStockLog.Printf("Updated %s to stock: %d", p.Name, p.Stock)
	}
	j.lowStockLog.Print(result.SuccessMessage)
}

// OrderReminders logs every order placed within the last 7 days together
// with its customer's email.
func (j *Jobs) OrderReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	since := time.Now().AddDate(0, 0, -7)

	orders, err := j.svc.Orders(ctx, filters.OrderFilter{OrderDateGte: &since})
	if err != nil {
		j.remindersLog.Printf("Error processing order reminders: %v", err)
		return
	}

	for _, o := range orders {
		j.remindersLog.Printf("Order ID: %d - Customer Email: %s", o.OrderID, o.CustomerEmail)
	}
	j.remindersLog.Print("Order reminders processed!")
}
