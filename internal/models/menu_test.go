package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories() {
		if !c.Valid() {
			t.Errorf("expected %q to be valid", c)
		}
	}

	for _, c := range []Category{"", "burgers", "Soups", "Drink"} {
		if c.Valid() {
			t.Errorf("expected %q to be invalid", c)
		}
	}
}

func TestOrderItem_LineTotal(t *testing.T) {
	item := OrderItem{UnitPrice: decimal.RequireFromString("8.99"), Quantity: 3}
	if got := item.LineTotal(); !got.Equal(decimal.RequireFromString("26.97")) {
		t.Errorf("LineTotal() = %s, want 26.97", got)
	}
}

func TestMenuItem_PriceRendersAsNumber(t *testing.T) {
	item := MenuItem{ID: 1, Name: "Cola", Price: decimal.RequireFromString("3.5"), Category: CategoryDrinks}

	body, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if price, ok := raw["price"].(float64); !ok || price != 3.5 {
		t.Errorf("price = %#v, want number 3.5", raw["price"])
	}
}
