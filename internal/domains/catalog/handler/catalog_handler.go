package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/catalog/model"
	"storefront-backend/internal/domains/catalog/repository"
	"storefront-backend/internal/shared/response"
)

// CatalogHandler exposes the read-only product catalog
type CatalogHandler struct {
	catalog repository.Reader
}

func NewCatalogHandler(catalog repository.Reader) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns all products
// GET /products
func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to list products")
		return
	}
	response.Success(c, http.StatusOK, products)
}

// Get returns one product, optionally a specific variant
// GET /products/:id?variant_id=...
func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.catalog.Get(c.Request.Context(), c.Param("id"), c.Query("variant_id"))
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeProductNotFound, "Product not found")
			return
		}
		response.InternalServerError(c, "Failed to get product")
		return
	}
	response.Success(c, http.StatusOK, product)
}
