package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Lixing-Zhang/restaurant-api/internal/models"
	"github.com/Lixing-Zhang/restaurant-api/internal/repository"
	"github.com/Lixing-Zhang/restaurant-api/internal/service"
	"github.com/Lixing-Zhang/restaurant-api/internal/validation"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	// Parse request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), req)
	if err != nil {
		var missing *service.MissingMenuItemsError
		switch {
		case errors.As(err, &missing):
			h.log.Warn("order references unknown menu items", "menu_item_ids", missing.IDs)
			WriteError(w, http.StatusBadRequest, "Menu items not found: "+missing.List(), h.log)
		default:
			if verrs, ok := validation.AsErrors(err); ok {
				WriteValidationProblem(w, verrs, h.log)
				return
			}
			h.log.Error("failed to create order", "error", err, "request_id", chimiddleware.GetReqID(r.Context()))
			WriteServerError(w, h.log)
		}
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/orders/%d", order.ID))
	WriteJSON(w, http.StatusCreated, order, h.log)
	h.log.Info("order created successfully", "order_id", order.ID, "items_count", len(req.Items), "total", order.TotalAmount.String())
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		h.log.Error("failed to list orders", "error", err, "request_id", chimiddleware.GetReqID(r.Context()))
		WriteServerError(w, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, orders, h.log)
}

// GetOrder handles GET /orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.log)
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			WriteNotFound(w)
			return
		}
		h.log.Error("failed to get order", "order_id", id, "error", err, "request_id", chimiddleware.GetReqID(r.Context()))
		WriteServerError(w, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
}
