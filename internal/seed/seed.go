// Package seed bootstraps an empty catalog with a default menu.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Lixing-Zhang/restaurant-api/internal/models"
)

// Catalog is the part of the menu store seeding needs
type Catalog interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, item *models.MenuItem) error
}

// DefaultMenu returns the items inserted into an empty catalog
func DefaultMenu() []models.MenuItem {
	item := func(name, desc, price string, category models.Category) models.MenuItem {
		return models.MenuItem{
			Name:        name,
			Description: &desc,
			Price:       decimal.RequireFromString(price),
			Category:    category,
		}
	}

	return []models.MenuItem{
		item("Cheeseburger", "Classic beef patty with cheddar.", "12.50", models.CategoryBurgers),
		item("Veggie Burger", "Chickpea patty with avocado cream.", "11.00", models.CategoryBurgers),
		item("Chicken Wings (6 pcs)", "Spicy, served with a BBQ dip.", "8.99", models.CategoryStarters),
		item("Caesar Salad", "Romaine, croutons, parmesan.", "9.50", models.CategorySalads),
		item("French Fries", "Golden and crispy.", "4.50", models.CategorySides),
		item("Cola", "0.33l ice cold.", "3.00", models.CategoryDrinks),
		item("Water", "Still or sparkling.", "2.50", models.CategoryDrinks),
		item("Pizza Margherita", "Tomato sauce, mozzarella, basil.", "10.00", models.CategoryPizza),
		item("Pizza Salami", "With spicy salami.", "12.00", models.CategoryPizza),
		item("Tiramisu", "Homemade Italian dessert.", "6.50", models.CategoryDesserts),
	}
}

// Menu inserts DefaultMenu when the catalog is empty and reports how many
// items were added. A non-empty catalog is left alone.
func Menu(ctx context.Context, catalog Catalog) (int, error) {
	count, err := catalog.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count menu items: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	items := DefaultMenu()
	for i := range items {
		if err := catalog.Create(ctx, &items[i]); err != nil {
			return i, fmt.Errorf("seed menu item %q: %w", items[i].Name, err)
		}
	}
	return len(items), nil
}
