package feedback

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a feedback entry.
func (r *Repository) Create(ctx context.Context, e Entry) (Entry, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO feedback (name, email, rating, message) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.Name, e.Email, e.Rating, e.Message,
	).Scan(&e.ID, &e.CreatedAt)
	return e, err
}

// ListRecent returns the latest entries.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, rating, message, created_at FROM feedback ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Rating, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ Store = (*Repository)(nil)
