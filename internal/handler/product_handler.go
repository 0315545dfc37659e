package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/enroute-labs/enroute-api/internal/dto"
	"github.com/enroute-labs/enroute-api/internal/service"
	"github.com/enroute-labs/enroute-api/pkg/response"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler creates a ProductHandler
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List handles GET /api/products with optional category and q filters
func (h *ProductHandler) List(c *gin.Context) {
	var filter dto.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	products, err := h.products.List(c.Request.Context(), &filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, products)
}

// Get handles GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "Product not found")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Success(c, product)
}
