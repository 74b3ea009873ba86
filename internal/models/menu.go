package models

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Render money as JSON numbers (3.5) rather than strings ("3.5").
	decimal.MarshalJSONWithoutQuotes = true
}

// Category is the closed set of menu sections an item can belong to
type Category string

const (
	CategoryBurgers  Category = "Burgers"
	CategorySalads   Category = "Salads"
	CategoryStarters Category = "Starters"
	CategorySides    Category = "Sides"
	CategoryDrinks   Category = "Drinks"
	CategoryPizza    Category = "Pizza"
	CategoryDesserts Category = "Desserts"
)

// Categories lists every valid category in display order
func Categories() []Category {
	return []Category{
		CategoryBurgers,
		CategorySalads,
		CategoryStarters,
		CategorySides,
		CategoryDrinks,
		CategoryPizza,
		CategoryDesserts,
	}
}

// Valid reports whether c is one of the known categories (exact, case-sensitive)
func (c Category) Valid() bool {
	switch c {
	case CategoryBurgers, CategorySalads, CategoryStarters, CategorySides,
		CategoryDrinks, CategoryPizza, CategoryDesserts:
		return true
	}
	return false
}

// MenuItem represents a purchasable catalog entry
type MenuItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
}

// MenuFilter narrows a catalog listing. Nil/empty fields are ignored and
// the remaining ones are combined with AND.
type MenuFilter struct {
	Query    string
	Category Category
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// CreateMenuItemRequest is the body of POST /menu
type CreateMenuItemRequest struct {
	Name        string          `json:"name" validate:"required,notblank,max=100"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"positive,money"`
	Category    Category        `json:"category" validate:"required,category"`
}

// UpdateMenuItemRequest is the body of PUT /menu/{id}
type UpdateMenuItemRequest struct {
	Name        string          `json:"name" validate:"required,notblank,min=3,max=100"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"positive,money"`
	Category    Category        `json:"category" validate:"required,category"`
}
