package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/restaurant-api/internal/repository"
	"github.com/Lixing-Zhang/restaurant-api/internal/seed"
	"github.com/Lixing-Zhang/restaurant-api/internal/service"
	"github.com/Lixing-Zhang/restaurant-api/internal/validation"
	"github.com/Lixing-Zhang/restaurant-api/pkg/logger"
)

// newTestRouter wires every handler against a seeded in-memory store.
// Seeded ids: 1 Cheeseburger 12.50 ... 6 Cola 3.00, 7 Water 2.50, 10 Tiramisu 6.50.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	log := logger.New("error")
	menuRepo := repository.NewInMemoryMenuRepository()
	orderRepo := repository.NewInMemoryOrderRepository(menuRepo)
	if _, err := seed.Menu(context.Background(), menuRepo); err != nil {
		t.Fatalf("seed: %v", err)
	}

	v := validation.New()
	menuHandler := NewMenuHandler(service.NewMenuService(menuRepo, v), log)
	orderHandler := NewOrderHandler(service.NewOrderService(menuRepo, orderRepo, v), log)
	reportHandler := NewReportHandler(service.NewReportService(orderRepo, time.Local), log)

	r := chi.NewRouter()
	r.Route("/menu", func(r chi.Router) {
		r.Get("/", menuHandler.ListMenu)
		r.Post("/", menuHandler.CreateMenuItem)
		r.Get("/{id}", menuHandler.GetMenuItem)
		r.Put("/{id}", menuHandler.UpdateMenuItem)
		r.Delete("/{id}", menuHandler.DeleteMenuItem)
	})
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", orderHandler.ListOrders)
		r.Post("/", orderHandler.CreateOrder)
		r.Get("/{id}", orderHandler.GetOrder)
	})
	r.Get("/reports/daily", reportHandler.DailyReport)
	return r
}

func do(t *testing.T, h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
