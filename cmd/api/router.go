package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/shared/middleware"
	"storefront-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCartRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// CART ROUTES
// ========================================
func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container) {
	cart := v1.Group("/cart")
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.DELETE("", c.CartHandler.Clear)

		cart.POST("/items", c.CartHandler.AddItem)
		cart.PUT("/items", c.CartHandler.SetQuantity)
		cart.POST("/items/increment", c.CartHandler.Increment)
		cart.DELETE("/items", c.CartHandler.RemoveItem)

		cart.POST("/coupon", c.CouponHandler.Apply)
		cart.GET("/coupon", c.CouponHandler.Applied)
		cart.DELETE("/coupon", c.CouponHandler.Remove)
	}
}

// ========================================
// CATALOG ROUTES
// ========================================
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.CatalogHandler.List)
		products.GET("/:id", c.CatalogHandler.Get)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	{
		admin.POST("/login", c.AdminHandler.Login)

		coupons := admin.Group("/coupons")
		coupons.Use(middleware.AdminAuth(c.JWTManager))
		{
			coupons.GET("", c.AdminHandler.List)
			coupons.POST("", c.AdminHandler.Create)
			coupons.PUT("/:code", c.AdminHandler.Update)
			coupons.DELETE("/:code", c.AdminHandler.Delete)
		}
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}
		services := gin.H{
			"cart_store": "ok",
		}

		// Redis-backed stores expose a ping; the file store has nothing to check
		if pinger, ok := appCtx.Store.(interface{ Ping(context.Context) error }); ok {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := pinger.Ping(ctx); err != nil {
				services["cart_store"] = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		if appCtx.DB != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				services["database"] = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			} else {
				services["database"] = "ok"
			}
		}

		health["services"] = services

		statusCode := http.StatusOK
		if health["status"] != "ok" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
