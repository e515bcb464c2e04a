package reservations

import (
	"context"
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

const columns = `id, customer_email, guest_name, at, party_size, notes, status, created_at`

// Create inserts a reservation.
func (r *Repository) Create(ctx context.Context, res Reservation) (Reservation, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO reservations (customer_email, guest_name, at, party_size, notes, status)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+columns,
		res.CustomerEmail, res.GuestName, res.At, res.PartySize, res.Notes, string(res.Status))
	return scan(row)
}

// ListByCustomer returns a customer's reservations, soonest first.
func (r *Repository) ListByCustomer(ctx context.Context, email string) ([]Reservation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+columns+` FROM reservations WHERE customer_email = $1 ORDER BY at`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

// ListUpcoming returns reservations from a moment onward, soonest first.
func (r *Repository) ListUpcoming(ctx context.Context) ([]Reservation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+columns+` FROM reservations WHERE at >= now() - interval '2 hours' ORDER BY at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAll(rows)
}

// UpdateStatus writes a new status.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE reservations SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of reservations on the books.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM reservations WHERE status <> 'cancelled'`).Scan(&n)
	return n, err
}

func scan(row pgx.Row) (Reservation, error) {
	var res Reservation
	var status string
	if err := row.Scan(&res.ID, &res.CustomerEmail, &res.GuestName, &res.At, &res.PartySize, &res.Notes, &status, &res.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Reservation{}, shared.ErrNotFound
		}
		return Reservation{}, err
	}
	if parsed, ok := ParseStatus(status); ok {
		res.Status = parsed
	} else {
		res.Status = StatusRequested
	}
	return res, nil
}

func scanAll(rows pgx.Rows) ([]Reservation, error) {
	var out []Reservation
	for rows.Next() {
		res, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
