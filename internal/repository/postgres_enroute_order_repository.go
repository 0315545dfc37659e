package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enroute-labs/enroute-api/internal/domain"
)

const enrouteOrderColumns = `id, user_id, point_name, zone, lat, lng, time_slot, reschedule_count, created_at`

// PostgresEnrouteOrderRepository implements EnrouteOrderRepository using PostgreSQL
type PostgresEnrouteOrderRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEnrouteOrderRepository creates a new PostgresEnrouteOrderRepository
func NewPostgresEnrouteOrderRepository(pool *pgxpool.Pool) *PostgresEnrouteOrderRepository {
	return &PostgresEnrouteOrderRepository{pool: pool}
}

// Create inserts an enroute order
func (r *PostgresEnrouteOrderRepository) Create(ctx context.Context, order *domain.EnrouteOrder) error {
	query := `
		INSERT INTO enroute_orders (id, user_id, point_name, zone, lat, lng, time_slot, reschedule_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.PointName,
		order.Zone,
		order.Coordinates.Lat,
		order.Coordinates.Lng,
		order.TimeSlot,
		order.RescheduleCount,
		order.CreatedAt,
	)
	return err
}

// GetByID returns the enroute order with the given id, or nil
func (r *PostgresEnrouteOrderRepository) GetByID(ctx context.Context, id string) (*domain.EnrouteOrder, error) {
	query := `SELECT ` + enrouteOrderColumns + ` FROM enroute_orders WHERE id = $1`

	order := &domain.EnrouteOrder{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.PointName,
		&order.Zone,
		&order.Coordinates.Lat,
		&order.Coordinates.Lng,
		&order.TimeSlot,
		&order.RescheduleCount,
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

// ApplyReschedule moves the order to a new point/slot and bumps the
// reschedule counter. The cap check rides in the same UPDATE so two
// concurrent reschedules cannot both pass.
func (r *PostgresEnrouteOrderRepository) ApplyReschedule(ctx context.Context, id, pointName, timeSlot string) (bool, error) {
	query := `
		UPDATE enroute_orders
		SET point_name = $2, time_slot = $3, reschedule_count = reschedule_count + 1
		WHERE id = $1 AND reschedule_count < $4
	`
	tag, err := r.pool.Exec(ctx, query, id, pointName, timeSlot, domain.MaxReschedules)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
