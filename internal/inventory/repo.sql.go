package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savoria-erp/savoria/internal/platform/db"
	"github.com/savoria-erp/savoria/internal/shared"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListItems returns every stock item ordered by name.
func (r *Repository) ListItems(ctx context.Context) ([]StockItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, unit, quantity, reorder_level, updated_at FROM stock_items ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []StockItem
	for rows.Next() {
		var it StockItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Unit, &it.Quantity, &it.ReorderLevel, &it.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// GetItem fetches one stock item.
func (r *Repository) GetItem(ctx context.Context, id int64) (StockItem, error) {
	var it StockItem
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, unit, quantity, reorder_level, updated_at FROM stock_items WHERE id = $1`, id,
	).Scan(&it.ID, &it.Name, &it.Unit, &it.Quantity, &it.ReorderLevel, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StockItem{}, shared.ErrNotFound
		}
		return StockItem{}, err
	}
	return it, nil
}

// CreateItem inserts a stock item.
func (r *Repository) CreateItem(ctx context.Context, item StockItem) (StockItem, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO stock_items (name, unit, quantity, reorder_level)
		 VALUES ($1, $2, $3, $4) RETURNING id, updated_at`,
		item.Name, item.Unit, item.Quantity, item.ReorderLevel,
	).Scan(&item.ID, &item.UpdatedAt)
	return item, err
}

// ApplyAdjustment updates a quantity and records the movement in one
// transaction.
func (r *Repository) ApplyAdjustment(ctx context.Context, itemID int64, newQuantity, delta float64, note string) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE stock_items SET quantity = $2, updated_at = now() WHERE id = $1`, itemID, newQuantity)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO stock_movements (item_id, delta, note) VALUES ($1, $2, $3)`, itemID, delta, note)
		return err
	})
}
