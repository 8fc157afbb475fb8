package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartservice "storefront-backend/internal/domains/cart/service"
	"storefront-backend/internal/domains/coupon/model"
	"storefront-backend/internal/domains/coupon/service"
	"storefront-backend/internal/infrastructure/storage"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/money"
)

// ApplyCouponResponse pairs the validation result with the totals the UI
// shows next to it
type ApplyCouponResponse struct {
	Result        model.ValidationResult `json:"result"`
	SubtotalCents int64                  `json:"subtotal_cents"`
	DiscountCents int64                  `json:"discount_cents"`
	TotalCents    int64                  `json:"total_cents"`
	TotalDisplay  string                 `json:"total_display"`
}

// CouponHandler validates coupon codes against the live cart subtotal. The
// applied code is remembered through the persistence adapter as a
// convenience; validation itself stays pure.
type CouponHandler struct {
	evaluator *service.Evaluator
	cart      cartservice.ServiceInterface
	store     storage.Store
	currency  money.Currency
}

func NewCouponHandler(evaluator *service.Evaluator, cart cartservice.ServiceInterface, store storage.Store, currency money.Currency) *CouponHandler {
	if !currency.IsValid() {
		currency = money.DefaultCurrency
	}
	return &CouponHandler{evaluator: evaluator, cart: cart, store: store, currency: currency}
}

// Apply validates a code against the current subtotal and remembers it on
// success. Coupon failures are 200s with a structured result - they are
// inline form feedback, not transport errors.
// POST /cart/coupon
func (h *CouponHandler) Apply(c *gin.Context) {
	var req model.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_INVALID_INPUT", "Validation failed", err)
		return
	}

	subtotal := h.cart.Totals().SubtotalCents
	result := h.evaluator.Validate(c.Request.Context(), req.Code, subtotal)

	if result.Valid {
		h.store.SaveAppliedCoupon(c.Request.Context(), result.Code)
	}

	response.Success(c, http.StatusOK, h.toResponse(result, subtotal))
}

// Applied revalidates the remembered code against the current subtotal
// GET /cart/coupon
func (h *CouponHandler) Applied(c *gin.Context) {
	code := h.store.LoadAppliedCoupon(c.Request.Context())
	if code == "" {
		response.NotFound(c, "No coupon applied")
		return
	}

	subtotal := h.cart.Totals().SubtotalCents
	result := h.evaluator.Validate(c.Request.Context(), code, subtotal)
	response.Success(c, http.StatusOK, h.toResponse(result, subtotal))
}

// Remove forgets the remembered code
// DELETE /cart/coupon
func (h *CouponHandler) Remove(c *gin.Context) {
	h.store.ClearAppliedCoupon(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}

func (h *CouponHandler) toResponse(result model.ValidationResult, subtotalCents int64) ApplyCouponResponse {
	total := subtotalCents - result.DiscountCents
	return ApplyCouponResponse{
		Result:        result,
		SubtotalCents: subtotalCents,
		DiscountCents: result.DiscountCents,
		TotalCents:    total,
		TotalDisplay:  money.Format(total, h.currency),
	}
}
