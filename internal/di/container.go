package di

import (
	"github.com/enroute-labs/enroute-api/internal/events"
	"github.com/enroute-labs/enroute-api/internal/handler"
	"github.com/enroute-labs/enroute-api/internal/metrics"
	"github.com/enroute-labs/enroute-api/internal/repository"
	"github.com/enroute-labs/enroute-api/internal/service"
	"github.com/enroute-labs/enroute-api/pkg/config"
	"github.com/enroute-labs/enroute-api/pkg/database"
	"github.com/enroute-labs/enroute-api/pkg/kafka"
	"github.com/enroute-labs/enroute-api/pkg/redis"
)

// Container wires repositories, services and handlers together
type Container struct {
	HealthHandler     *handler.HealthHandler
	LocationHandler   *handler.LocationHandler
	ChokepointHandler *handler.ChokepointHandler
	EnrouteHandler    *handler.EnrouteHandler
	ProductHandler    *handler.ProductHandler
	CheckoutHandler   *handler.CheckoutHandler
}

// New builds the dependency graph. cache and producer may be nil; the
// zone-listing cache and eventing degrade to no-ops without them.
func New(cfg *config.Config, db *database.PostgresDB, cache *redis.Client, producer *kafka.Producer) *Container {
	metrics.Init()

	var chokepoints repository.ChokePointRepository = repository.NewPostgresChokePointRepository(db.Pool())
	if cache != nil {
		chokepoints = repository.NewCachedChokePointRepository(chokepoints, cache, cfg.Redis.CacheTTL)
	}
	enrouteOrders := repository.NewPostgresEnrouteOrderRepository(db.Pool())
	products := repository.NewPostgresProductRepository(db.Pool())
	orders := repository.NewPostgresOrderRepository(db.Pool())

	publisher := events.NewPublisher(producer)

	zoneService := service.NewZoneService(chokepoints)
	chokepointService := service.NewChokepointService(chokepoints)
	assignmentService := service.NewAssignmentService(chokepoints)
	orderService := service.NewOrderService(chokepoints, enrouteOrders, assignmentService, publisher)
	productService := service.NewProductService(products)
	checkoutService := service.NewCheckoutService(orders, cfg.Checkout.TaxRate, cfg.Checkout.OrderNumberPrefix)

	return &Container{
		HealthHandler:     handler.NewHealthHandler(db, cache, cfg.App.Version),
		LocationHandler:   handler.NewLocationHandler(zoneService),
		ChokepointHandler: handler.NewChokepointHandler(chokepointService),
		EnrouteHandler:    handler.NewEnrouteHandler(orderService),
		ProductHandler:    handler.NewProductHandler(productService),
		CheckoutHandler:   handler.NewCheckoutHandler(checkoutService),
	}
}
