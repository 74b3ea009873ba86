package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/restaurant-api/internal/models"
)

// InMemoryMenuRepository implements MenuRepository with in-memory storage
type InMemoryMenuRepository struct {
	mu     sync.RWMutex
	items  map[int64]models.MenuItem
	nextID int64
}

// NewInMemoryMenuRepository creates an empty in-memory catalog
func NewInMemoryMenuRepository() *InMemoryMenuRepository {
	return &InMemoryMenuRepository{
		items:  make(map[int64]models.MenuItem),
		nextID: 1,
	}
}

// List returns matching items ordered by id
func (r *InMemoryMenuRepository) List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(filter.Query)
	items := make([]models.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		if query != "" && !containsFold(item, query) {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && item.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && item.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		items = append(items, cloneMenuItem(item))
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func containsFold(item models.MenuItem, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(item.Name), lowerQuery) {
		return true
	}
	return item.Description != nil && strings.Contains(strings.ToLower(*item.Description), lowerQuery)
}

// GetByID returns a menu item by its ID
func (r *InMemoryMenuRepository) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, ErrMenuItemNotFound
	}
	item = cloneMenuItem(item)
	return &item, nil
}

func (r *InMemoryMenuRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]models.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make(map[int64]models.MenuItem, len(ids))
	for _, id := range ids {
		if item, exists := r.items[id]; exists {
			found[id] = cloneMenuItem(item)
		}
	}
	return found, nil
}

func (r *InMemoryMenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = cloneMenuItem(*item)
	return nil
}

func (r *InMemoryMenuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return ErrMenuItemNotFound
	}
	r.items[item.ID] = cloneMenuItem(*item)
	return nil
}

func (r *InMemoryMenuRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return ErrMenuItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *InMemoryMenuRepository) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

// name returns the live catalog name, or "" for a deleted item
func (r *InMemoryMenuRepository) name(id int64) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[id].Name
}

func cloneMenuItem(item models.MenuItem) models.MenuItem {
	if item.Description != nil {
		desc := *item.Description
		item.Description = &desc
	}
	return item
}

// InMemoryOrderRepository implements OrderRepository with in-memory storage.
// Item names are resolved against the catalog at read time.
type InMemoryOrderRepository struct {
	mu         sync.RWMutex
	menu       *InMemoryMenuRepository
	orders     []models.Order
	nextID     int64
	nextItemID int64
}

// NewInMemoryOrderRepository creates an empty order store joined to menu
func NewInMemoryOrderRepository(menu *InMemoryMenuRepository) *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		menu:       menu,
		nextID:     1,
		nextItemID: 1,
	}
}

func (r *InMemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++
	for i := range order.Items {
		order.Items[i].ID = r.nextItemID
		order.Items[i].OrderID = order.ID
		r.nextItemID++
	}

	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	r.orders = append(r.orders, stored)
	return nil
}

// ListSummaries returns all orders, most recent first
func (r *InMemoryOrderRepository) ListSummaries(ctx context.Context) ([]models.OrderSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]models.OrderSummary, 0, len(r.orders))
	for _, order := range r.orders {
		count := 0
		for _, item := range order.Items {
			count += item.Quantity
		}
		summaries = append(summaries, models.OrderSummary{
			ID:        order.ID,
			Date:      order.OrderDate,
			Total:     order.TotalAmount,
			ItemCount: count,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].Date.Equal(summaries[j].Date) {
			return summaries[i].Date.After(summaries[j].Date)
		}
		return summaries[i].ID > summaries[j].ID
	})
	return summaries, nil
}

func (r *InMemoryOrderRepository) GetDetail(ctx context.Context, id int64) (*models.OrderDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, order := range r.orders {
		if order.ID != id {
			continue
		}

		detail := &models.OrderDetail{
			ID:    order.ID,
			Date:  order.OrderDate,
			Total: order.TotalAmount,
			Items: make([]models.OrderItemDetail, 0, len(order.Items)),
		}
		for _, item := range order.Items {
			detail.Items = append(detail.Items, models.OrderItemDetail{
				MenuItemID: item.MenuItemID,
				Name:       r.menu.name(item.MenuItemID),
				UnitPrice:  item.UnitPrice,
				Quantity:   item.Quantity,
				LineTotal:  item.LineTotal(),
			})
		}
		return detail, nil
	}
	return nil, ErrOrderNotFound
}

func (r *InMemoryOrderRepository) DailyStats(ctx context.Context, from, to time.Time) (models.DailyStats, error) {
	if err := ctx.Err(); err != nil {
		return models.DailyStats{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := models.DailyStats{TotalRevenue: decimal.Zero}
	for _, order := range r.orders {
		if !inWindow(order.OrderDate, from, to) {
			continue
		}
		stats.TotalOrders++
		stats.TotalRevenue = stats.TotalRevenue.Add(order.TotalAmount)
	}
	return stats, nil
}

// TopItems ranks menu items by quantity sold in the window; ties go to the lower id
func (r *InMemoryOrderRepository) TopItems(ctx context.Context, from, to time.Time, limit int) ([]models.TopSellingItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sold := make(map[int64]int)
	for _, order := range r.orders {
		if !inWindow(order.OrderDate, from, to) {
			continue
		}
		for _, item := range order.Items {
			sold[item.MenuItemID] += item.Quantity
		}
	}

	top := make([]models.TopSellingItem, 0, len(sold))
	for id, qty := range sold {
		top = append(top, models.TopSellingItem{MenuItemID: id, QuantitySold: qty})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].QuantitySold != top[j].QuantitySold {
			return top[i].QuantitySold > top[j].QuantitySold
		}
		return top[i].MenuItemID < top[j].MenuItemID
	})
	if len(top) > limit {
		top = top[:limit]
	}

	for i := range top {
		top[i].Name = r.menu.name(top[i].MenuItemID)
	}
	return top, nil
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
