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

// MenuHandler handles menu-related HTTP requests
type MenuHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// ListMenu handles GET /menu?q=&category=&minPrice=&maxPrice=
func (h *MenuHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.MenuFilter{
		Query:    query.Get("q"),
		Category: models.Category(query.Get("category")),
	}

	errs := validation.Errors{}
	var ok bool
	if filter.MinPrice, ok = queryDecimal(r, "minPrice"); !ok {
		errs.Add("minPrice", "must be a number")
	}
	if filter.MaxPrice, ok = queryDecimal(r, "maxPrice"); !ok {
		errs.Add("maxPrice", "must be a number")
	}
	if len(errs) > 0 {
		WriteValidationProblem(w, errs, h.logger)
		return
	}

	items, err := h.service.ListMenu(r.Context(), filter)
	if err != nil {
		h.serverError(w, r, "failed to list menu", err)
		return
	}

	WriteJSON(w, http.StatusOK, items, h.logger)
}

// GetMenuItem handles GET /menu/{id}
// - 200: the item
// - 400: Invalid ID supplied
// - 404: no such item
func (h *MenuHandler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	item, err := h.service.GetMenuItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			h.logger.Info("menu item not found", "menu_item_id", id)
			WriteNotFound(w)
			return
		}
		h.serverError(w, r, "failed to get menu item", err)
		return
	}

	WriteJSON(w, http.StatusOK, item, h.logger)
}

// CreateMenuItem handles POST /menu
func (h *MenuHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode menu item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	item, err := h.service.CreateMenuItem(r.Context(), req)
	if err != nil {
		if verrs, ok := validation.AsErrors(err); ok {
			WriteValidationProblem(w, verrs, h.logger)
			return
		}
		h.serverError(w, r, "failed to create menu item", err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/menu/%d", item.ID))
	WriteJSON(w, http.StatusCreated, item, h.logger)
	h.logger.Info("menu item created", "menu_item_id", item.ID, "category", item.Category)
}

// UpdateMenuItem handles PUT /menu/{id}
func (h *MenuHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	var req models.UpdateMenuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode menu item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	err := h.service.UpdateMenuItem(r.Context(), id, req)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, repository.ErrMenuItemNotFound):
		WriteNotFound(w)
	default:
		if verrs, ok := validation.AsErrors(err); ok {
			WriteValidationProblem(w, verrs, h.logger)
			return
		}
		h.serverError(w, r, "failed to update menu item", err)
	}
}

// DeleteMenuItem handles DELETE /menu/{id}
func (h *MenuHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	err := h.service.DeleteMenuItem(r.Context(), id)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
		h.logger.Info("menu item deleted", "menu_item_id", id)
	case errors.Is(err, repository.ErrMenuItemNotFound):
		WriteNotFound(w)
	default:
		h.serverError(w, r, "failed to delete menu item", err)
	}
}

func (h *MenuHandler) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger.Error(msg, "error", err, "request_id", chimiddleware.GetReqID(r.Context()))
	WriteServerError(w, h.logger)
}
