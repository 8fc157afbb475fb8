package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront-backend/internal/domains/coupon/service"
	"storefront-backend/internal/shared/middleware"
	"storefront-backend/pkg/jwt"
)

const adminSecret = "test-secret"

func setupAdminRouter(t *testing.T, passwordHash string) *gin.Engine {
	t.Helper()

	manager := jwt.NewManager(adminSecret, time.Hour)
	h := NewAdminHandler(service.DefaultTable(), manager, "admin", passwordHash)

	r := gin.New()
	r.POST("/admin/login", h.Login)

	coupons := r.Group("/admin/coupons")
	coupons.Use(middleware.AdminAuth(manager))
	{
		coupons.GET("", h.List)
		coupons.POST("", h.Create)
		coupons.PUT("/:code", h.Update)
		coupons.DELETE("/:code", h.Delete)
	}
	return r
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func adminRequest(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, password string) string {
	t.Helper()

	w := adminRequest(r, http.MethodPost, "/admin/login", "", `{"username":"admin","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data.Token)
	return env.Data.Token
}

func TestLogin_WrongPassword(t *testing.T) {
	r := setupAdminRouter(t, hashPassword(t, "hunter2"))

	w := adminRequest(r, http.MethodPost, "/admin/login", "", `{"username":"admin","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_DisabledWithoutHash(t *testing.T) {
	r := setupAdminRouter(t, "")

	w := adminRequest(r, http.MethodPost, "/admin/login", "", `{"username":"admin","password":"anything"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCouponRoutes_RequireToken(t *testing.T) {
	r := setupAdminRouter(t, hashPassword(t, "hunter2"))

	w := adminRequest(r, http.MethodGet, "/admin/coupons", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = adminRequest(r, http.MethodGet, "/admin/coupons", "garbage-token", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCouponRoutes_RejectTokenSignedWithOtherSecret(t *testing.T) {
	r := setupAdminRouter(t, hashPassword(t, "hunter2"))

	forged, err := jwt.NewManager("some-other-secret", time.Hour).GenerateAdminToken("admin")
	require.NoError(t, err)

	w := adminRequest(r, http.MethodGet, "/admin/coupons", forged, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCouponCRUD(t *testing.T) {
	r := setupAdminRouter(t, hashPassword(t, "hunter2"))
	token := login(t, r, "hunter2")

	w := adminRequest(r, http.MethodGet, "/admin/coupons", token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	body := `{"code":"SPRING15","kind":"percentage","value":15}`
	w = adminRequest(r, http.MethodPost, "/admin/coupons", token, body)
	assert.Equal(t, http.StatusCreated, w.Code)

	// duplicate create conflicts
	w = adminRequest(r, http.MethodPost, "/admin/coupons", token, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	// upsert replaces
	w = adminRequest(r, http.MethodPut, "/admin/coupons/SPRING15", token, `{"kind":"percentage","value":20}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = adminRequest(r, http.MethodDelete, "/admin/coupons/SPRING15", token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = adminRequest(r, http.MethodDelete, "/admin/coupons/SPRING15", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreate_RejectsInvalidDefinition(t *testing.T) {
	r := setupAdminRouter(t, hashPassword(t, "hunter2"))
	token := login(t, r, "hunter2")

	// percentage over 100
	w := adminRequest(r, http.MethodPost, "/admin/coupons", token, `{"code":"TOOBIG","kind":"percentage","value":150}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// non-alphanumeric code
	w = adminRequest(r, http.MethodPost, "/admin/coupons", token, `{"code":"BAD CODE","kind":"fixed","value":500}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
