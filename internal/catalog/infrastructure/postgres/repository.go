package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/alerquim/commerce-platform/internal/catalog/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Add(ctx context.Context, p *domain.Product) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO products (id, name, description, price, stock_quantity, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.Name, p.Description, p.Price.Amount(), p.StockQuantity(), p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var (
		name, description    string
		price                decimal.Decimal
		quantity             int
		createdAt, updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, `SELECT name, description, price, stock_quantity, created_at, updated_at
		FROM products WHERE id=$1`, id).
		Scan(&name, &description, &price, &quantity, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT quantity, reference, created_at
		FROM stock_movements WHERE product_id=$1 ORDER BY created_at`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []domain.StockMovement
	for rows.Next() {
		var m domain.StockMovement
		if err := rows.Scan(&m.Quantity, &m.Reference, &m.At); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	money, err := domain.NewMoney(price)
	if err != nil {
		return nil, err
	}
	return domain.RestoreProduct(id, name, description, money, quantity, movements, createdAt, updatedAt), nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, price, stock_quantity, created_at, updated_at
		FROM products ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var (
			id                   uuid.UUID
			name, description    string
			price                decimal.Decimal
			quantity             int
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &name, &description, &price, &quantity, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		money, err := domain.NewMoney(price)
		if err != nil {
			return nil, err
		}
		products = append(products, domain.RestoreProduct(id, name, description, money, quantity, nil, createdAt, updatedAt))
	}
	return products, rows.Err()
}

// Update persists the product row and any movements appended since the load.
// The quantity column is written from the aggregate, so callers that raced a
// concurrent decrement should prefer DecrementStock for removals.
func (r *Repository) Update(ctx context.Context, p *domain.Product) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx, `UPDATE products SET name=$2, description=$3, price=$4, stock_quantity=$5, updated_at=$6
		WHERE id=$1`,
		p.ID, p.Name, p.Description, p.Price.Amount(), p.StockQuantity(), p.UpdatedAt)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}

	batch := &pgx.Batch{}
	for _, m := range p.PendingMovements() {
		batch.Queue(`INSERT INTO stock_movements (product_id, quantity, reference, created_at)
			VALUES ($1,$2,$3,$4)`,
			p.ID, m.Quantity, m.Reference, m.At)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// DecrementStock makes the sufficiency check and the subtraction one atomic
// statement, then appends the movement in the same transaction. Zero rows
// affected means either the product is missing or the stock is short; the
// follow-up existence probe tells the two apart.
func (r *Repository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int, reference string) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	ct, err := tx.Exec(ctx, `UPDATE products
		SET stock_quantity = stock_quantity - $2, updated_at = now()
		WHERE id=$1 AND stock_quantity >= $2`, id, quantity)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrProductNotFound
		}
		return domain.ErrInsufficientStock
	}

	_, err = tx.Exec(ctx, `INSERT INTO stock_movements (product_id, quantity, reference, created_at)
		VALUES ($1,$2,$3,now())`, id, -quantity, reference)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}
