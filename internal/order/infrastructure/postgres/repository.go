package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alerquim/commerce-platform/internal/order/application"
	"github.com/alerquim/commerce-platform/internal/order/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

func (r *Repository) Save(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `INSERT INTO orders (id, customer_document, seller_name, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET status=$4, updated_at=$6`,
		o.ID, o.CustomerDocument, o.SellerName, o.Status, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, item := range o.Items {
		batch.Queue(`INSERT INTO order_items (order_id, product_id, quantity)
			VALUES ($1,$2,$3)
			ON CONFLICT (order_id, product_id) DO UPDATE SET quantity=$3`,
			o.ID, item.ProductID, item.Quantity)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	o := &domain.Order{}
	err := r.pool.QueryRow(ctx, `SELECT id, customer_document, seller_name, status, created_at, updated_at
		FROM orders WHERE id=$1`, id).
		Scan(&o.ID, &o.CustomerDocument, &o.SellerName, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrOrderNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `SELECT product_id, quantity FROM order_items WHERE order_id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}

func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, customer_document, seller_name, status, created_at, updated_at
		FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		o := &domain.Order{}
		if err := rows.Scan(&o.ID, &o.CustomerDocument, &o.SellerName, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		rows, err := r.pool.Query(ctx, `SELECT product_id, quantity FROM order_items WHERE order_id=$1`, o.ID)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var item domain.OrderItem
			if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
				rows.Close()
				return nil, err
			}
			o.Items = append(o.Items, item)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}
	return orders, nil
}
