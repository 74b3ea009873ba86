package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Lixing-Zhang/restaurant-api/internal/models"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrOrderNotFound    = errors.New("order not found")
)

// MenuRepository defines the interface for catalog data access
type MenuRepository interface {
	List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id int64) (*models.MenuItem, error)
	// GetByIDs returns the subset of ids that exist, keyed by id
	GetByIDs(ctx context.Context, ids []int64) (map[int64]models.MenuItem, error)
	// Create assigns item.ID
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// OrderRepository defines the interface for order data access.
// Time windows are half-open: [from, to).
type OrderRepository interface {
	// Create persists the order and all its items atomically, assigning ids
	Create(ctx context.Context, order *models.Order) error
	ListSummaries(ctx context.Context) ([]models.OrderSummary, error)
	GetDetail(ctx context.Context, id int64) (*models.OrderDetail, error)
	DailyStats(ctx context.Context, from, to time.Time) (models.DailyStats, error)
	TopItems(ctx context.Context, from, to time.Time, limit int) ([]models.TopSellingItem, error)
}
