package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Lixing-Zhang/restaurant-api/internal/handlers"
	"github.com/Lixing-Zhang/restaurant-api/internal/models"
	"github.com/Lixing-Zhang/restaurant-api/internal/repository"
	"github.com/Lixing-Zhang/restaurant-api/internal/service"
	"github.com/Lixing-Zhang/restaurant-api/internal/validation"
	"github.com/Lixing-Zhang/restaurant-api/pkg/logger"
	"github.com/shopspring/decimal"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.New("error")
	menu := repository.NewInMemoryMenuRepository()
	orders := repository.NewInMemoryOrderRepository(menu)
	v := validation.New()

	srv := httptest.NewServer(newRouter(routerDeps{
		log:            log,
		health:         handlers.NewHealthHandler(log, nil),
		menu:           handlers.NewMenuHandler(service.NewMenuService(menu, v), log),
		orders:         handlers.NewOrderHandler(service.NewOrderService(menu, orders, v), log),
		reports:        handlers.NewReportHandler(service.NewReportService(orders, time.Local), log),
		requestTimeout: 5 * time.Second,
		allowedOrigins: []string{"*"},
	}))
	t.Cleanup(srv.Close)
	return srv
}

func send(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_OrderFlow(t *testing.T) {
	srv := newTestServer(t)

	resp := send(t, http.MethodPost, srv.URL+"/menu", `{"name":"Cola","description":"0.33l","price":3.00,"category":"Drinks"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create menu item: status %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/menu/1" {
		t.Errorf("Location = %q", loc)
	}

	resp = send(t, http.MethodPost, srv.URL+"/orders", `{"items":[{"menuItemId":1,"quantity":2}]}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create order: status %d", resp.StatusCode)
	}
	var created models.OrderCreated
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if !created.TotalAmount.Equal(decimal.NewFromInt(6)) {
		t.Errorf("totalAmount = %s, want 6", created.TotalAmount)
	}

	resp = send(t, http.MethodPost, srv.URL+"/orders", `{"items":[{"menuItemId":99999,"quantity":1}]}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown item: status %d, want 400", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if !strings.Contains(body["error"], "99999") {
		t.Errorf("error = %q, want it to name 99999", body["error"])
	}

	resp = send(t, http.MethodGet, srv.URL+"/reports/daily?date="+time.Now().Format("02.01.2006"), "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("report: status %d", resp.StatusCode)
	}
	var report models.DailyReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.TotalOrders != 1 || !report.TotalRevenue.Equal(decimal.NewFromInt(6)) {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestRouter_HealthAndCORS(t *testing.T) {
	srv := newTestServer(t)

	resp := send(t, http.MethodGet, srv.URL+"/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health: status %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/menu", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer preflight.Body.Close()
	if got := preflight.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	resp := send(t, http.MethodGet, srv.URL+"/nope", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status %d, want 404", resp.StatusCode)
	}
}
