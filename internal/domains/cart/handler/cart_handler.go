package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/cart/model"
	"storefront-backend/internal/domains/cart/service"
	"storefront-backend/internal/domains/cart/state"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/money"
)

// CartHandler exposes the cart facade over HTTP. It is a thin layer: it
// binds, validates, delegates, and shapes the response.
type CartHandler struct {
	cart     service.ServiceInterface
	currency money.Currency
}

func NewCartHandler(cart service.ServiceInterface, currency money.Currency) *CartHandler {
	if !currency.IsValid() {
		currency = money.DefaultCurrency
	}
	return &CartHandler{cart: cart, currency: currency}
}

// GetCart returns the current cart with derived totals
// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	st := h.cart.State()
	response.Success(c, http.StatusOK, model.ToResponse(st, state.Totals(st), h.currency))
}

// AddItem adds a catalog product to the cart
// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidInput, "Validation failed", err)
		return
	}

	st, err := h.cart.AddProduct(c.Request.Context(), req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrProductNotFound):
			response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeProductNotFound, "Product not found")
		case errors.Is(err, model.ErrOutOfStock):
			response.ErrorResponse(c, http.StatusConflict, model.ErrCodeOutOfStock, "Product is out of stock")
		default:
			response.InternalServerError(c, "Failed to add item")
		}
		return
	}

	response.Success(c, http.StatusOK, model.ToResponse(st, state.Totals(st), h.currency))
}

// SetQuantity overwrites a line's quantity; zero or negative removes it
// PUT /cart/items
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req model.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidInput, "Validation failed", err)
		return
	}

	st := h.cart.SetQuantity(c.Request.Context(), req.ProductID, req.VariantID, req.Quantity)
	response.Success(c, http.StatusOK, model.ToResponse(st, state.Totals(st), h.currency))
}

// Increment bumps an existing line's quantity; absent lines are untouched
// POST /cart/items/increment
func (h *CartHandler) Increment(c *gin.Context) {
	var req model.IncrementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if req.By == 0 {
		req.By = 1
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, model.ErrCodeInvalidInput, "Validation failed", err)
		return
	}

	st := h.cart.Increment(c.Request.Context(), req.ProductID, req.VariantID, req.By)
	response.Success(c, http.StatusOK, model.ToResponse(st, state.Totals(st), h.currency))
}

// RemoveItem drops a line from the cart
// DELETE /cart/items?product_id=...&variant_id=...
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID := c.Query("product_id")
	if productID == "" {
		response.BadRequest(c, "product_id is required")
		return
	}

	st := h.cart.RemoveItem(c.Request.Context(), productID, c.Query("variant_id"))
	response.Success(c, http.StatusOK, model.ToResponse(st, state.Totals(st), h.currency))
}

// Clear empties the cart
// DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	st := h.cart.Clear(c.Request.Context())
	response.Success(c, http.StatusOK, model.ToResponse(st, state.Totals(st), h.currency))
}
