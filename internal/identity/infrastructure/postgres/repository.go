package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alerquim/commerce-platform/internal/identity/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Add(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO users (id, name, email, password_hash, role, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		u.ID, u.Name, u.Email.String(), u.PasswordHash, u.Role, u.CreatedAt)
	return err
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT id, name, email, password_hash, role, created_at
		FROM users WHERE id=$1`, id))
}

func (r *Repository) GetByEmail(ctx context.Context, email domain.Email) (*domain.User, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT id, name, email, password_hash, role, created_at
		FROM users WHERE email=$1`, email.String()))
}

func (r *Repository) scanOne(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	var email string
	if err := row.Scan(&u.ID, &u.Name, &email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	parsed, err := domain.NewEmail(email)
	if err != nil {
		return nil, err
	}
	u.Email = parsed
	return u, nil
}
