package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Lixing-Zhang/restaurant-api/internal/models"
	"github.com/Lixing-Zhang/restaurant-api/internal/repository"
)

var ErrInvalidDate = errors.New("invalid date")

// reportDateFormats are tried in order; the first exact match wins
var reportDateFormats = []string{
	"2006-01-02",
	"02.01.2006",
	"02-01-2006",
}

const topItemsLimit = 3

// ReportService builds sales reports from placed orders
type ReportService struct {
	orders   repository.OrderRepository
	location *time.Location
}

// NewReportService creates a report service computing day boundaries in loc
func NewReportService(orders repository.OrderRepository, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{
		orders:   orders,
		location: loc,
	}
}

// DailyReport aggregates the orders placed on the given day. A day without
// orders yields zero totals and an empty ranking.
func (s *ReportService) DailyReport(ctx context.Context, date string) (*models.DailyReport, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return nil, err
	}

	from := day
	to := day.AddDate(0, 0, 1)

	var (
		stats models.DailyStats
		top   []models.TopSellingItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.orders.DailyStats(gctx, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		top, err = s.orders.TopItems(gctx, from, to, topItemsLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if top == nil {
		top = []models.TopSellingItem{}
	}

	return &models.DailyReport{
		Date:         day.Format("2006-01-02"),
		TotalOrders:  stats.TotalOrders,
		TotalRevenue: stats.TotalRevenue,
		TopItems:     top,
	}, nil
}

func (s *ReportService) parseDate(date string) (time.Time, error) {
	for _, layout := range reportDateFormats {
		if t, err := time.ParseInLocation(layout, date, s.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
