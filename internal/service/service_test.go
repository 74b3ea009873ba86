package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/restaurant-api/internal/models"
	"github.com/Lixing-Zhang/restaurant-api/internal/repository"
	"github.com/Lixing-Zhang/restaurant-api/internal/validation"
)

// spyMenuRepository counts catalog reads made while placing orders
type spyMenuRepository struct {
	*repository.InMemoryMenuRepository
	bulkReads int
}

func (r *spyMenuRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]models.MenuItem, error) {
	r.bulkReads++
	return r.InMemoryMenuRepository.GetByIDs(ctx, ids)
}

type fixture struct {
	menuRepo  *spyMenuRepository
	orderRepo *repository.InMemoryOrderRepository
	menu      *MenuService
	orders    *OrderService
	items     map[string]models.MenuItem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mem := repository.NewInMemoryMenuRepository()
	menuRepo := &spyMenuRepository{InMemoryMenuRepository: mem}
	orderRepo := repository.NewInMemoryOrderRepository(mem)
	v := validation.New()

	f := &fixture{
		menuRepo:  menuRepo,
		orderRepo: orderRepo,
		menu:      NewMenuService(menuRepo, v),
		orders:    NewOrderService(menuRepo, orderRepo, v),
		items:     make(map[string]models.MenuItem),
	}

	for _, req := range []models.CreateMenuItemRequest{
		{Name: "Cola", Price: decimal.RequireFromString("3.00"), Category: models.CategoryDrinks},
		{Name: "Cheeseburger", Price: decimal.RequireFromString("12.50"), Category: models.CategoryBurgers},
		{Name: "Pommes Frites", Price: decimal.RequireFromString("4.50"), Category: models.CategorySides},
		{Name: "Tiramisu", Price: decimal.RequireFromString("6.50"), Category: models.CategoryDesserts},
	} {
		item, err := f.menu.CreateMenuItem(context.Background(), req)
		if err != nil {
			t.Fatalf("create %s: %v", req.Name, err)
		}
		f.items[item.Name] = *item
	}
	return f
}

func (f *fixture) id(name string) int64 {
	return f.items[name].ID
}
