package employees

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savoria-erp/savoria/internal/shared"
)

// ErrDuplicateStaffID indicates a roster entry with a staff ID already in
// use.
var ErrDuplicateStaffID = errors.New("employees: staff ID already in use")

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns the roster ordered by name.
func (r *Repository) List(ctx context.Context) ([]Employee, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, staff_id, name, email, position, active, hired_at FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.StaffID, &e.Name, &e.Email, &e.Position, &e.Active, &e.HiredAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create inserts a roster entry.
func (r *Repository) Create(ctx context.Context, e Employee) (Employee, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO employees (staff_id, name, email, position, active)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id, hired_at`,
		e.StaffID, e.Name, e.Email, e.Position, e.Active,
	).Scan(&e.ID, &e.HiredAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Employee{}, ErrDuplicateStaffID
		}
		return Employee{}, err
	}
	return e, nil
}

// SetActive flips a roster entry's active flag.
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE employees SET active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Roster = (*Repository)(nil)
