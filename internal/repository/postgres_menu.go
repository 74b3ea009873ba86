package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lixing-Zhang/restaurant-api/internal/models"
)

// PostgresMenuRepository implements MenuRepository on PostgreSQL
type PostgresMenuRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresMenuRepository(pool *pgxpool.Pool) *PostgresMenuRepository {
	return &PostgresMenuRepository{pool: pool}
}

const selectMenuItemSQL = `SELECT id, name, description, price, category FROM menu_items`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *PostgresMenuRepository) List(ctx context.Context, filter models.MenuFilter) ([]models.MenuItem, error) {
	var (
		conds []string
		args  []interface{}
	)

	if filter.Query != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.Query)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR COALESCE(description, '') ILIKE $%d)", n, n))
	}
	if filter.Category != "" {
		args = append(args, string(filter.Category))
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}

	query := selectMenuItemSQL
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	items := make([]models.MenuItem, 0)
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresMenuRepository) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	item, err := scanMenuItem(r.pool.QueryRow(ctx, selectMenuItemSQL+" WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMenuItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get menu item %d: %w", id, err)
	}
	return &item, nil
}

func (r *PostgresMenuRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]models.MenuItem, error) {
	rows, err := r.pool.Query(ctx, selectMenuItemSQL+" WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, fmt.Errorf("get menu items: %w", err)
	}
	defer rows.Close()

	found := make(map[int64]models.MenuItem, len(ids))
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		found[item.ID] = item
	}
	return found, rows.Err()
}

// Create inserts the item and reads back the stored price (NUMERIC(10,2))
func (r *PostgresMenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO menu_items (name, description, price, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, price`,
		item.Name, item.Description, item.Price, string(item.Category),
	).Scan(&item.ID, &item.Price)
	if err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

func (r *PostgresMenuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE menu_items SET name = $1, description = $2, price = $3, category = $4
		WHERE id = $5`,
		item.Name, item.Description, item.Price, string(item.Category), item.ID,
	)
	if err != nil {
		return fmt.Errorf("update menu item %d: %w", item.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (r *PostgresMenuRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (r *PostgresMenuRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count menu items: %w", err)
	}
	return count, nil
}

func scanMenuItem(row pgx.Row) (models.MenuItem, error) {
	var (
		item     models.MenuItem
		category string
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &category); err != nil {
		return models.MenuItem{}, err
	}
	item.Category = models.Category(category)
	return item, nil
}
