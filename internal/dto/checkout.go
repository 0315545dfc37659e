package dto

// CreateOrderRequest is the body of POST /api/orders
type CreateOrderRequest struct {
	CustomerName    string  `json:"customerName" binding:"required"`
	CustomerEmail   string  `json:"customerEmail" binding:"required,email"`
	CustomerPhone   string  `json:"customerPhone" binding:"required"`
	ShippingAddress string  `json:"shippingAddress" binding:"required"`
	ShippingCity    string  `json:"shippingCity" binding:"required"`
	ShippingState   string  `json:"shippingState" binding:"required"`
	ShippingZip     string  `json:"shippingZip" binding:"required"`
	DeliveryType    string  `json:"deliveryType" binding:"required,oneof=home route"`
	Subtotal        float64 `json:"subtotal" binding:"required,gt=0"`
	Items           string  `json:"items" binding:"required"`
}

// Validate validates the CreateOrderRequest
func (r *CreateOrderRequest) Validate() (bool, string) {
	if r.CustomerName == "" {
		return false, "Customer name is required"
	}
	if r.Subtotal <= 0 {
		return false, "Subtotal must be greater than 0"
	}
	if r.DeliveryType != "home" && r.DeliveryType != "route" {
		return false, "Delivery type must be home or route"
	}
	return true, ""
}

// ProductListFilter represents filters for listing products
type ProductListFilter struct {
	Category string `form:"category"`
	Search   string `form:"q"`
}
