package models

import (
	"github.com/shopspring/decimal"
)

// DailyStats is the count/revenue aggregate over one day
type DailyStats struct {
	TotalOrders  int
	TotalRevenue decimal.Decimal
}

// TopSellingItem is one entry of the daily top-N ranking
type TopSellingItem struct {
	MenuItemID   int64  `json:"menuItemId"`
	Name         string `json:"name"`
	QuantitySold int    `json:"quantitySold"`
}

// DailyReport is the body of GET /reports/daily
type DailyReport struct {
	Date         string           `json:"date"`
	TotalOrders  int              `json:"totalOrders"`
	TotalRevenue decimal.Decimal  `json:"totalRevenue"`
	TopItems     []TopSellingItem `json:"topItems"`
}
