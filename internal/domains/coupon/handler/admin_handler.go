package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"storefront-backend/internal/domains/coupon/model"
	"storefront-backend/internal/domains/coupon/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/jwt"
)

// AdminHandler manages the coupon table. All routes except Login sit behind
// the admin auth middleware.
type AdminHandler struct {
	table        *service.Table
	jwtManager   *jwt.Manager
	username     string
	passwordHash string
}

func NewAdminHandler(table *service.Table, jwtManager *jwt.Manager, username, passwordHash string) *AdminHandler {
	return &AdminHandler{
		table:        table,
		jwtManager:   jwtManager,
		username:     username,
		passwordHash: passwordHash,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges admin credentials for a bearer token
// POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// An unset hash disables admin login entirely
	if h.passwordHash == "" || req.Username != h.username {
		response.Unauthorized(c, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password)); err != nil {
		response.Unauthorized(c, "Invalid credentials")
		return
	}

	token, err := h.jwtManager.GenerateAdminToken(req.Username)
	if err != nil {
		response.InternalServerError(c, "Failed to issue token")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// List returns all coupon definitions
// GET /admin/coupons
func (h *AdminHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, h.table.List())
}

// Create adds a new coupon definition
// POST /admin/coupons
func (h *AdminHandler) Create(c *gin.Context) {
	var req model.UpsertCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_INVALID_INPUT", "Validation failed", err)
		return
	}

	coupon := req.ToCoupon()
	if err := h.table.Create(coupon); err != nil {
		response.ErrorResponse(c, http.StatusConflict, model.ErrCodeDuplicate, "Coupon code already exists")
		return
	}

	response.Success(c, http.StatusCreated, coupon)
}

// Update creates or replaces the coupon at :code
// PUT /admin/coupons/:code
func (h *AdminHandler) Update(c *gin.Context) {
	var req model.UpsertCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	req.Code = c.Param("code")
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_INVALID_INPUT", "Validation failed", err)
		return
	}

	coupon := req.ToCoupon()
	h.table.Upsert(coupon)
	response.Success(c, http.StatusOK, coupon)
}

// Delete removes the coupon at :code
// DELETE /admin/coupons/:code
func (h *AdminHandler) Delete(c *gin.Context) {
	if !h.table.Delete(c.Param("code")) {
		response.ErrorResponse(c, http.StatusNotFound, model.ErrCodeCouponNotFound, "Coupon not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
