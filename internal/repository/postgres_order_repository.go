package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enroute-labs/enroute-api/internal/domain"
)

const orderColumns = `id, order_number, customer_name, customer_email, customer_phone,
	shipping_address, shipping_city, shipping_state, shipping_zip, delivery_type,
	subtotal, tax, total, items, status, created_at`

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository
func NewPostgresOrderRepository(pool *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{pool: pool}
}

// Create inserts a checkout order
func (r *PostgresOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (id, order_number, customer_name, customer_email, customer_phone,
			shipping_address, shipping_city, shipping_state, shipping_zip, delivery_type,
			subtotal, tax, total, items, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.pool.Exec(ctx, query,
		order.ID,
		order.OrderNumber,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.ShippingAddress,
		order.ShippingCity,
		order.ShippingState,
		order.ShippingZip,
		order.DeliveryType,
		order.Subtotal,
		order.Tax,
		order.Total,
		order.Items,
		order.Status,
		order.CreatedAt,
	)
	return err
}

// GetByOrderNumber returns the order with the given number, or nil
func (r *PostgresOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_number = $1`

	order := &domain.Order{}
	err := r.pool.QueryRow(ctx, query, orderNumber).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerName,
		&order.CustomerEmail,
		&order.CustomerPhone,
		&order.ShippingAddress,
		&order.ShippingCity,
		&order.ShippingState,
		&order.ShippingZip,
		&order.DeliveryType,
		&order.Subtotal,
		&order.Tax,
		&order.Total,
		&order.Items,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}
