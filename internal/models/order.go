package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a placed order. TotalAmount is computed once from the catalog
// prices seen at placement and never recomputed.
type Order struct {
	ID          int64
	OrderDate   time.Time
	TotalAmount decimal.Decimal
	Items       []OrderItem
}

// OrderItem is one line of an order. MenuItemID is a plain reference; the
// menu item may be deleted later without affecting the line.
type OrderItem struct {
	ID         int64
	OrderID    int64
	MenuItemID int64
	Quantity   int
	UnitPrice  decimal.Decimal
}

// LineTotal returns unit price times quantity
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderRequest represents an incoming order request
type OrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"min=1,dive"`
}

// OrderItemRequest represents a single requested line
type OrderItemRequest struct {
	MenuItemID int64 `json:"menuItemId" validate:"gt=0"`
	Quantity   int   `json:"quantity" validate:"gt=0,lt=100"`
}

// OrderCreated is returned after a successful placement
type OrderCreated struct {
	ID          int64           `json:"id"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	OrderDate   time.Time       `json:"orderDate"`
}

// OrderSummary is one row of GET /orders
type OrderSummary struct {
	ID        int64           `json:"id"`
	Date      time.Time       `json:"date"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

// OrderDetail is the body of GET /orders/{id}
type OrderDetail struct {
	ID    int64             `json:"id"`
	Date  time.Time         `json:"date"`
	Total decimal.Decimal   `json:"total"`
	Items []OrderItemDetail `json:"items"`
}

// OrderItemDetail shows a line with the unit price frozen at order time.
// Name is the live catalog name, empty if the menu item has been deleted.
type OrderItemDetail struct {
	MenuItemID int64           `json:"menuItemId"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Quantity   int             `json:"quantity"`
	LineTotal  decimal.Decimal `json:"lineTotal"`
}
