package repository

import (
	"context"

	"github.com/enroute-labs/enroute-api/internal/domain"
)

// ChokePointRepository provides access to chokepoints and their slot
// tables. The slot counters are owned by this layer: TryReserveSlot is the
// only write path for current_orders and performs the capacity check and
// the increment in a single store-side operation.
type ChokePointRepository interface {
	// FindAll returns every chokepoint
	FindAll(ctx context.Context) ([]*domain.ChokePoint, error)

	// FindByZone returns chokepoints whose zone matches the given name,
	// case-insensitive substring match, in repository order
	FindByZone(ctx context.Context, zone string) ([]*domain.ChokePoint, error)

	// FindByID returns the chokepoint with the given id, or nil
	FindByID(ctx context.Context, id string) (*domain.ChokePoint, error)

	// FindByNameAndZone returns the chokepoint with the given name in the
	// given zone, or nil
	FindByNameAndZone(ctx context.Context, name, zone string) (*domain.ChokePoint, error)

	// FindPeersInZone returns all other chokepoints sharing a zone, in
	// repository order
	FindPeersInZone(ctx context.Context, zone, excludeID string) ([]*domain.ChokePoint, error)

	// TryReserveSlot atomically increments the slot's order counter if and
	// only if it still has capacity. Returns false without error when the
	// slot is full or does not exist.
	TryReserveSlot(ctx context.Context, chokepointID, label string) (bool, error)

	// Create inserts a chokepoint and its slot table in one transaction
	Create(ctx context.Context, cp *domain.ChokePoint) error
}

// EnrouteOrderRepository persists enroute orders
type EnrouteOrderRepository interface {
	Create(ctx context.Context, order *domain.EnrouteOrder) error
	GetByID(ctx context.Context, id string) (*domain.EnrouteOrder, error)

	// ApplyReschedule moves the order to a new point/slot and increments
	// its reschedule counter, conditional on the counter still being
	// under the cap. Returns false when the cap was already reached.
	ApplyReschedule(ctx context.Context, id, pointName, timeSlot string) (bool, error)
}

// ProductRepository provides read access to the catalog
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	Search(ctx context.Context, query string) ([]*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// OrderRepository persists checkout orders
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
}
