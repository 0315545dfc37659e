package domain

import "time"

// Product is a catalog item
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	InStock     int     `json:"inStock"`
}

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
)

// Delivery types
const (
	DeliveryTypeHome  = "home"
	DeliveryTypeRoute = "route"
)

// Order is a checkout order. Items is the serialized cart contents.
type Order struct {
	ID              string    `json:"id"`
	OrderNumber     string    `json:"orderNumber"`
	CustomerName    string    `json:"customerName"`
	CustomerEmail   string    `json:"customerEmail"`
	CustomerPhone   string    `json:"customerPhone"`
	ShippingAddress string    `json:"shippingAddress"`
	ShippingCity    string    `json:"shippingCity"`
	ShippingState   string    `json:"shippingState"`
	ShippingZip     string    `json:"shippingZip"`
	DeliveryType    string    `json:"deliveryType"`
	Subtotal        float64   `json:"subtotal"`
	Tax             float64   `json:"tax"`
	Total           float64   `json:"total"`
	Items           string    `json:"items"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}
