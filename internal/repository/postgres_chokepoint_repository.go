package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/enroute-labs/enroute-api/internal/domain"
	"github.com/enroute-labs/enroute-api/pkg/telemetry"
)

// chokepointSelect joins each chokepoint with its slot table. Slot order
// within a chokepoint follows sort_order, which preserves the declaration
// order of the seeded slot list.
const chokepointSelect = `
	SELECT cp.id, cp.zone, cp.name, cp.lat, cp.lng, cp.traffic_score, cp.created_at,
		ts.id, ts.label, ts.max_orders, ts.current_orders, ts.sort_order
	FROM chokepoints cp
	LEFT JOIN time_slots ts ON ts.chokepoint_id = cp.id`

// PostgresChokePointRepository implements ChokePointRepository using PostgreSQL
type PostgresChokePointRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresChokePointRepository creates a new PostgresChokePointRepository
func NewPostgresChokePointRepository(pool *pgxpool.Pool) *PostgresChokePointRepository {
	return &PostgresChokePointRepository{pool: pool}
}

func (r *PostgresChokePointRepository) query(ctx context.Context, where, orderBy string, args ...interface{}) ([]*domain.ChokePoint, error) {
	query := chokepointSelect
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY " + orderBy + ", ts.sort_order ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []*domain.ChokePoint
	byID := make(map[string]*domain.ChokePoint)

	for rows.Next() {
		cp := &domain.ChokePoint{}
		var slotID, label *string
		var maxOrders, currentOrders, sortOrder *int

		err := rows.Scan(
			&cp.ID,
			&cp.Zone,
			&cp.Name,
			&cp.Coordinates.Lat,
			&cp.Coordinates.Lng,
			&cp.TrafficScore,
			&cp.CreatedAt,
			&slotID,
			&label,
			&maxOrders,
			&currentOrders,
			&sortOrder,
		)
		if err != nil {
			return nil, err
		}

		existing, ok := byID[cp.ID]
		if !ok {
			byID[cp.ID] = cp
			points = append(points, cp)
			existing = cp
		}

		if slotID != nil {
			existing.TimeSlots = append(existing.TimeSlots, &domain.TimeSlot{
				ID:            *slotID,
				Label:         *label,
				MaxOrders:     *maxOrders,
				CurrentOrders: *currentOrders,
				SortOrder:     *sortOrder,
			})
		}
	}
	return points, rows.Err()
}

// FindAll returns every chokepoint with its slot table
func (r *PostgresChokePointRepository) FindAll(ctx context.Context) ([]*domain.ChokePoint, error) {
	return r.query(ctx, "", "cp.created_at ASC, cp.id ASC")
}

// FindByZone returns chokepoints matching the zone name,
// case-insensitive substring match, in insertion order
func (r *PostgresChokePointRepository) FindByZone(ctx context.Context, zone string) ([]*domain.ChokePoint, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.chokepoint.find_by_zone")
	defer span.End()
	span.SetAttributes(attribute.String("zone", zone))

	points, err := r.query(ctx, "cp.zone ILIKE '%' || $1 || '%'", "cp.created_at ASC, cp.id ASC", zone)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("count", len(points)))
	return points, nil
}

// FindByID returns the chokepoint with the given id, or nil
func (r *PostgresChokePointRepository) FindByID(ctx context.Context, id string) (*domain.ChokePoint, error) {
	points, err := r.query(ctx, "cp.id = $1", "cp.created_at ASC, cp.id ASC", id)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, nil
	}
	return points[0], nil
}

// FindByNameAndZone returns the chokepoint with the given name in the
// given zone, or nil
func (r *PostgresChokePointRepository) FindByNameAndZone(ctx context.Context, name, zone string) (*domain.ChokePoint, error) {
	points, err := r.query(ctx, "cp.name = $1 AND cp.zone = $2", "cp.created_at ASC, cp.id ASC", name, zone)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, nil
	}
	return points[0], nil
}

// FindPeersInZone returns all other chokepoints sharing a zone
func (r *PostgresChokePointRepository) FindPeersInZone(ctx context.Context, zone, excludeID string) ([]*domain.ChokePoint, error) {
	return r.query(ctx, "cp.zone = $1 AND cp.id <> $2", "cp.created_at ASC, cp.id ASC", zone, excludeID)
}

// TryReserveSlot increments the slot counter if and only if the slot still
// has capacity. The check and the increment happen in one UPDATE so two
// concurrent reservations can never push the counter past max_orders.
func (r *PostgresChokePointRepository) TryReserveSlot(ctx context.Context, chokepointID, label string) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.chokepoint.try_reserve_slot")
	defer span.End()
	span.SetAttributes(
		attribute.String("chokepoint_id", chokepointID),
		attribute.String("slot_label", label),
	)

	query := `
		UPDATE time_slots
		SET current_orders = current_orders + 1
		WHERE chokepoint_id = $1 AND label = $2 AND current_orders < max_orders
	`
	tag, err := r.pool.Exec(ctx, query, chokepointID, label)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	reserved := tag.RowsAffected() == 1
	span.SetAttributes(attribute.Bool("reserved", reserved))
	return reserved, nil
}

// Create inserts a chokepoint and its slot table in one transaction
func (r *PostgresChokePointRepository) Create(ctx context.Context, cp *domain.ChokePoint) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO chokepoints (id, zone, name, lat, lng, traffic_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, cp.ID, cp.Zone, cp.Name, cp.Coordinates.Lat, cp.Coordinates.Lng, cp.TrafficScore, cp.CreatedAt)
	if err != nil {
		return err
	}

	for i, slot := range cp.TimeSlots {
		_, err = tx.Exec(ctx, `
			INSERT INTO time_slots (id, chokepoint_id, label, max_orders, current_orders, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, slot.ID, cp.ID, slot.Label, slot.MaxOrders, slot.CurrentOrders, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
