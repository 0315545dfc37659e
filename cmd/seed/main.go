package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/enroute-labs/enroute-api/internal/domain"
	"github.com/enroute-labs/enroute-api/internal/repository"
	"github.com/enroute-labs/enroute-api/pkg/config"
	"github.com/enroute-labs/enroute-api/pkg/database"
	"github.com/enroute-labs/enroute-api/pkg/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS chokepoints (
	id            UUID PRIMARY KEY,
	zone          TEXT NOT NULL,
	name          TEXT NOT NULL,
	lat           DOUBLE PRECISION NOT NULL,
	lng           DOUBLE PRECISION NOT NULL,
	traffic_score INT NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (name, zone)
);

CREATE INDEX IF NOT EXISTS idx_chokepoints_zone ON chokepoints (zone);

CREATE TABLE IF NOT EXISTS time_slots (
	id             UUID PRIMARY KEY,
	chokepoint_id  UUID NOT NULL REFERENCES chokepoints (id) ON DELETE CASCADE,
	label          TEXT NOT NULL,
	max_orders     INT NOT NULL,
	current_orders INT NOT NULL DEFAULT 0,
	sort_order     INT NOT NULL DEFAULT 0,
	UNIQUE (chokepoint_id, label),
	CHECK (current_orders >= 0),
	CHECK (current_orders <= max_orders)
);

CREATE TABLE IF NOT EXISTS enroute_orders (
	id               UUID PRIMARY KEY,
	user_id          TEXT NOT NULL,
	point_name       TEXT NOT NULL,
	zone             TEXT NOT NULL,
	lat              DOUBLE PRECISION NOT NULL DEFAULT 0,
	lng              DOUBLE PRECISION NOT NULL DEFAULT 0,
	time_slot        TEXT NOT NULL,
	reschedule_count INT NOT NULL DEFAULT 0,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS products (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price       NUMERIC(10,2) NOT NULL,
	category    TEXT NOT NULL,
	image_url   TEXT NOT NULL DEFAULT '',
	in_stock    INT NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products (category);

CREATE TABLE IF NOT EXISTS orders (
	id               UUID PRIMARY KEY,
	order_number     TEXT NOT NULL UNIQUE,
	customer_name    TEXT NOT NULL,
	customer_email   TEXT NOT NULL,
	customer_phone   TEXT NOT NULL,
	shipping_address TEXT NOT NULL,
	shipping_city    TEXT NOT NULL,
	shipping_state   TEXT NOT NULL,
	shipping_zip     TEXT NOT NULL,
	delivery_type    TEXT NOT NULL,
	subtotal         NUMERIC(10,2) NOT NULL,
	tax              NUMERIC(10,2) NOT NULL,
	total            NUMERIC(10,2) NOT NULL,
	items            TEXT NOT NULL,
	status           TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func chokepointFixtures() []*domain.ChokePoint {
	now := time.Now().UTC()
	return []*domain.ChokePoint{
		{
			ID:           uuid.NewString(),
			Zone:         "South Dallas",
			Name:         "DART Ledbetter Station",
			Coordinates:  domain.Coordinates{Lat: 32.6766, Lng: -96.8236},
			TrafficScore: 90,
			TimeSlots: []*domain.TimeSlot{
				{ID: uuid.NewString(), Label: "5-6 PM", MaxOrders: 10, CurrentOrders: 2},
				{ID: uuid.NewString(), Label: "6-7 PM", MaxOrders: 10, CurrentOrders: 1},
			},
			CreatedAt: now,
		},
		{
			ID:           uuid.NewString(),
			Zone:         "South Dallas",
			Name:         "Loop 12 & I-35",
			Coordinates:  domain.Coordinates{Lat: 32.6889, Lng: -96.8207},
			TrafficScore: 80,
			TimeSlots: []*domain.TimeSlot{
				{ID: uuid.NewString(), Label: "5-6 PM", MaxOrders: 8, CurrentOrders: 3},
			},
			CreatedAt: now.Add(time.Millisecond),
		},
	}
}

type productFixture struct {
	name, description, category, imageURL string
	price                                 float64
	inStock                               int
}

func productFixtures() []productFixture {
	const img = "https://images.unsplash.com/photo-%s?auto=format&fit=crop&w=400&h=300"
	return []productFixture{
		{"Fresh Organic Bananas", "Premium organic bananas, perfect for snacking", "grocery", fmt.Sprintf(img, "1571771894821-ce9b6c11b08e"), 2.48, 100},
		{"Wonder Bread Classic", "Soft white bread, perfect for sandwiches", "grocery", fmt.Sprintf(img, "1509440159596-0249088772ff"), 1.98, 50},
		{"Mixed Fresh Fruits", "Variety pack of seasonal fresh fruits", "grocery", fmt.Sprintf(img, "1610832958506-aa56368176cf"), 8.97, 25},
		{"Great Value Milk", "Whole milk, 1 gallon", "grocery", fmt.Sprintf(img, "1550583724-b2692b85b150"), 3.64, 30},
		{"Fresh Vegetable Bundle", "Mixed vegetables for healthy meals", "grocery", fmt.Sprintf(img, "1540420773420-3366772f4999"), 6.48, 40},
		{"Barilla Pasta", "Premium pasta for family dinners", "grocery", fmt.Sprintf(img, "1551892374-ecf8754cf8b0"), 1.24, 75},
		{"Fresh Chicken Breast", "Boneless, skinless chicken breast", "grocery", fmt.Sprintf(img, "1604503468506-a8da13d82791"), 7.98, 20},
		{"Cheerios Cereal", "Heart healthy whole grain cereal", "grocery", fmt.Sprintf(img, "1559717865-a99cac1c95d8"), 4.68, 60},
		{"HP Laptop 15.6\"", "Intel Core i5, 8GB RAM, 256GB SSD", "electronics", fmt.Sprintf(img, "1496181133206-80ce9b88a853"), 549.00, 15},
		{"iPhone 14", "128GB, Blue, Unlocked", "electronics", fmt.Sprintf(img, "1512499617640-c74ae3a79d37"), 699.00, 10},
		{"Sony WH-1000XM4", "Noise Cancelling Wireless Headphones", "electronics", fmt.Sprintf(img, "1505740420928-5e560c06d30e"), 248.00, 25},
		{"Samsung 55\" 4K TV", "Smart TV with HDR, Built-in Alexa", "electronics", fmt.Sprintf(img, "1593359677879-a4bb92f829d1"), 449.00, 8},
		{"PlayStation 5", "Gaming console with wireless controller", "electronics", fmt.Sprintf(img, "1606144042614-b2417e99c4e3"), 499.00, 5},
		{"iPad Air", "10.9-inch display, Wi-Fi, 64GB", "electronics", fmt.Sprintf(img, "1544244015-0df4b3ffc6b0"), 519.00, 12},
		{"3-Piece Sofa Set", "Comfortable sectional sofa with cushions", "home", fmt.Sprintf(img, "1586023492125-27b2c045efd7"), 899.00, 3},
		{"Coffee Maker", "12-cup programmable coffee maker", "home", fmt.Sprintf(img, "1556909114-f6e7ad7d3136"), 79.99, 20},
		{"Queen Bed Frame", "Modern platform bed with headboard", "home", fmt.Sprintf(img, "1522771739844-6a9f6d5f14af"), 299.00, 7},
		{"Table Lamp Set", "Modern desk lamps with adjustable brightness", "home", fmt.Sprintf(img, "1555041469-a586c61ea9bc"), 45.99, 15},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&logger.Config{
		Level:       "info",
		ServiceName: "enroute-seed",
		Development: true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Database:       cfg.Database.DBName,
		SSLMode:        cfg.Database.SSLMode,
		MaxConns:       5,
		MinConns:       1,
		ConnectTimeout: 10 * time.Second,
		MaxRetries:     5,
		RetryInterval:  2 * time.Second,
	})
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	if err := db.Exec(ctx, schema); err != nil {
		log.Fatal("failed to create schema", zap.Error(err))
	}
	log.Info("schema ready")

	if err := db.Exec(ctx, "TRUNCATE chokepoints, time_slots, products CASCADE"); err != nil {
		log.Fatal("failed to clear existing data", zap.Error(err))
	}

	repo := repository.NewPostgresChokePointRepository(db.Pool())
	points := chokepointFixtures()
	for _, cp := range points {
		if err := repo.Create(ctx, cp); err != nil {
			log.Fatal("failed to insert chokepoint",
				zap.String("name", cp.Name),
				zap.Error(err))
		}
	}
	log.Info("chokepoints seeded", zap.Int("count", len(points)))

	products := productFixtures()
	for _, p := range products {
		err := db.Exec(ctx, `
			INSERT INTO products (id, name, description, price, category, image_url, in_stock)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.NewString(), p.name, p.description, p.price, p.category, p.imageURL, p.inStock)
		if err != nil {
			log.Fatal("failed to insert product",
				zap.String("name", p.name),
				zap.Error(err))
		}
	}
	log.Info("products seeded", zap.Int("count", len(products)))

	log.Info("seed complete")
}
