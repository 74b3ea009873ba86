package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/restaurant-api/internal/models"
	"github.com/Lixing-Zhang/restaurant-api/internal/repository"
	"github.com/Lixing-Zhang/restaurant-api/internal/validation"
)

// MissingMenuItemsError is returned when an order references unknown menu items
type MissingMenuItemsError struct {
	IDs []int64 // ascending
}

func (e *MissingMenuItemsError) Error() string {
	return "menu items not found: " + e.List()
}

// List renders the ids comma separated
func (e *MissingMenuItemsError) List() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(ids, ", ")
}

// OrderService handles order placement and order queries
type OrderService struct {
	menus     repository.MenuRepository
	orders    repository.OrderRepository
	validator *validation.Validator
	now       func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(menus repository.MenuRepository, orders repository.OrderRepository, validator *validation.Validator) *OrderService {
	return &OrderService{
		menus:     menus,
		orders:    orders,
		validator: validator,
		now:       time.Now,
	}
}

// PlaceOrder prices every requested line against the catalog as it is now
// and stores the order with a frozen total. Duplicate menu item ids stay
// separate lines.
func (s *OrderService) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.OrderCreated, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	ids := distinctMenuItemIDs(req.Items)
	catalog, err := s.menus.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch menu items: %w", err)
	}

	if len(catalog) < len(ids) {
		missing := make([]int64, 0, len(ids)-len(catalog))
		for _, id := range ids {
			if _, ok := catalog[id]; !ok {
				missing = append(missing, id)
			}
		}
		sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
		return nil, &MissingMenuItemsError{IDs: missing}
	}

	order := &models.Order{
		// Postgres keeps microseconds; truncating keeps the response equal to what is stored
		OrderDate:   s.now().Truncate(time.Microsecond),
		TotalAmount: decimal.Zero,
		Items:       make([]models.OrderItem, 0, len(req.Items)),
	}
	for _, line := range req.Items {
		item := models.OrderItem{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			UnitPrice:  catalog[line.MenuItemID].Price,
		}
		order.TotalAmount = order.TotalAmount.Add(item.LineTotal())
		order.Items = append(order.Items, item)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	return &models.OrderCreated{
		ID:          order.ID,
		TotalAmount: order.TotalAmount,
		OrderDate:   order.OrderDate,
	}, nil
}

// ListOrders returns every order, most recent first
func (s *OrderService) ListOrders(ctx context.Context) ([]models.OrderSummary, error) {
	return s.orders.ListSummaries(ctx)
}

// GetOrder returns one order with its lines
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.OrderDetail, error) {
	return s.orders.GetDetail(ctx, id)
}

// distinctMenuItemIDs keeps first-seen order
func distinctMenuItemIDs(items []models.OrderItemRequest) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.MenuItemID]; ok {
			continue
		}
		seen[item.MenuItemID] = struct{}{}
		ids = append(ids, item.MenuItemID)
	}
	return ids
}
