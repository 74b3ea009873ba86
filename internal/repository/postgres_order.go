package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lixing-Zhang/restaurant-api/internal/models"
)

const (
	insertOrderSQL = `
		INSERT INTO orders (order_date, total_amount)
		VALUES ($1, $2)
		RETURNING id`

	insertOrderItemSQL = `
		INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	listOrderSummariesSQL = `
		SELECT o.id, o.order_date, o.total_amount, COALESCE(SUM(oi.quantity), 0)
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		GROUP BY o.id
		ORDER BY o.order_date DESC, o.id DESC`

	getOrderSQL = `
		SELECT id, order_date, total_amount
		FROM orders WHERE id = $1`

	getOrderItemsSQL = `
		SELECT oi.menu_item_id, COALESCE(m.name, ''), oi.unit_price, oi.quantity
		FROM order_items oi
		LEFT JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`

	dailyStatsSQL = `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE order_date >= $1 AND order_date < $2`

	topItemsSQL = `
		SELECT oi.menu_item_id, COALESCE(m.name, ''), SUM(oi.quantity) AS sold
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		LEFT JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE o.order_date >= $1 AND o.order_date < $2
		GROUP BY oi.menu_item_id, m.name
		ORDER BY sold DESC, oi.menu_item_id ASC
		LIMIT $3`
)

// PostgresOrderRepository implements OrderRepository on PostgreSQL
type PostgresOrderRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepository(pool *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{pool: pool}
}

// Create inserts the order row and its lines in one transaction
func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, insertOrderSQL, order.OrderDate, order.TotalAmount).Scan(&order.ID); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for _, item := range order.Items {
		batch.Queue(insertOrderItemSQL, order.ID, item.MenuItemID, item.Quantity, item.UnitPrice)
	}

	results := tx.SendBatch(ctx, batch)
	for i := range order.Items {
		if err := results.QueryRow().Scan(&order.Items[i].ID); err != nil {
			results.Close()
			return fmt.Errorf("insert order item %d: %w", i, err)
		}
		order.Items[i].OrderID = order.ID
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

func (r *PostgresOrderRepository) ListSummaries(ctx context.Context) ([]models.OrderSummary, error) {
	rows, err := r.pool.Query(ctx, listOrderSummariesSQL)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.OrderSummary, 0)
	for rows.Next() {
		var s models.OrderSummary
		if err := rows.Scan(&s.ID, &s.Date, &s.Total, &s.ItemCount); err != nil {
			return nil, fmt.Errorf("scan order summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *PostgresOrderRepository) GetDetail(ctx context.Context, id int64) (*models.OrderDetail, error) {
	var detail models.OrderDetail
	err := r.pool.QueryRow(ctx, getOrderSQL, id).Scan(&detail.ID, &detail.Date, &detail.Total)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}

	rows, err := r.pool.Query(ctx, getOrderItemsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("get order %d items: %w", id, err)
	}
	defer rows.Close()

	detail.Items = make([]models.OrderItemDetail, 0)
	for rows.Next() {
		var line models.OrderItemDetail
		if err := rows.Scan(&line.MenuItemID, &line.Name, &line.UnitPrice, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		line.LineTotal = models.OrderItem{UnitPrice: line.UnitPrice, Quantity: line.Quantity}.LineTotal()
		detail.Items = append(detail.Items, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *PostgresOrderRepository) DailyStats(ctx context.Context, from, to time.Time) (models.DailyStats, error) {
	var stats models.DailyStats
	if err := r.pool.QueryRow(ctx, dailyStatsSQL, from, to).Scan(&stats.TotalOrders, &stats.TotalRevenue); err != nil {
		return models.DailyStats{}, fmt.Errorf("daily stats: %w", err)
	}
	return stats, nil
}

func (r *PostgresOrderRepository) TopItems(ctx context.Context, from, to time.Time, limit int) ([]models.TopSellingItem, error) {
	rows, err := r.pool.Query(ctx, topItemsSQL, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top items: %w", err)
	}
	defer rows.Close()

	top := make([]models.TopSellingItem, 0, limit)
	for rows.Next() {
		var item models.TopSellingItem
		if err := rows.Scan(&item.MenuItemID, &item.Name, &item.QuantitySold); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		top = append(top, item)
	}
	return top, rows.Err()
}
