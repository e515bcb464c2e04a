package orders

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

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

// CreateOrder inserts an order. Lines are stored as JSONB.
func (r *Repository) CreateOrder(ctx context.Context, order Order) (Order, error) {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return Order{}, err
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO orders (customer_email, lines, total_cents, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, customer_email, lines, total_cents, status, created_at, updated_at`,
		order.CustomerEmail, lines, order.TotalCents, string(order.Status))
	return scanOrder(row)
}

// GetOrder fetches one order.
func (r *Repository) GetOrder(ctx context.Context, id int64) (Order, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, customer_email, lines, total_cents, status, created_at, updated_at FROM orders WHERE id = $1`, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, shared.ErrNotFound
		}
		return Order{}, err
	}
	return order, nil
}

// ListByCustomer returns a customer's orders, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, email string) ([]Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, customer_email, lines, total_cents, status, created_at, updated_at
		 FROM orders WHERE customer_email = $1 ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// ListAll returns every order, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, customer_email, lines, total_cents, status, created_at, updated_at
		 FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanOrders(rows)
}

// UpdateStatus writes a new status.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByStatus returns order counts per status.
func (r *Repository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, count(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make(map[Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		parsed, err := ParseStatus(status)
		if err != nil {
			continue
		}
		counts[parsed] = n
	}
	return counts, rows.Err()
}

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	var lines []byte
	var status string
	if err := row.Scan(&o.ID, &o.CustomerEmail, &lines, &o.TotalCents, &status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(lines, &o.Lines); err != nil {
		return Order{}, err
	}
	parsed, err := ParseStatus(status)
	if err != nil {
		return Order{}, err
	}
	o.Status = parsed
	return o, nil
}

func scanOrders(rows pgx.Rows) ([]Order, error) {
	var out []Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, order)
	}
	return out, rows.Err()
}
