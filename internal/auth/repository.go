package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/savoria-erp/savoria/internal/shared"
)

// ErrEmailTaken indicates a signup with an email that already has an
// account.
var ErrEmailTaken = errors.New("auth: email already registered")

// Repository defines persistence for customer accounts.
type Repository interface {
	CreateAccount(ctx context.Context, email, name, passwordHash string) (Account, error)
	FindByEmail(ctx context.Context, email string) (Account, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// CreateAccount inserts an account, reporting ErrEmailTaken on conflict.
func (r *PGRepository) CreateAccount(ctx context.Context, email, name, passwordHash string) (Account, error) {
	var acc Account
	err := r.pool.QueryRow(ctx,
		`INSERT INTO accounts (email, name, password_hash) VALUES ($1, $2, $3)
		 RETURNING id, email, name, password_hash, created_at`,
		email, name, passwordHash,
	).Scan(&acc.ID, &acc.Email, &acc.Name, &acc.PasswordHash, &acc.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Account{}, ErrEmailTaken
		}
		return Account{}, err
	}
	return acc, nil
}

// FindByEmail fetches an account by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (Account, error) {
	var acc Account
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash, created_at FROM accounts WHERE email = $1`,
		email,
	).Scan(&acc.ID, &acc.Email, &acc.Name, &acc.PasswordHash, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, shared.ErrNotFound
		}
		return Account{}, err
	}
	return acc, nil
}

var _ Repository = (*PGRepository)(nil)
