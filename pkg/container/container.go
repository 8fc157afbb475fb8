package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"storefront-backend/internal/config"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/internal/infrastructure/storage"
	"storefront-backend/pkg/jwt"
	"storefront-backend/pkg/money"

	cartHandler "storefront-backend/internal/domains/cart/handler"
	cartService "storefront-backend/internal/domains/cart/service"
	catalogHandler "storefront-backend/internal/domains/catalog/handler"
	catalogRepo "storefront-backend/internal/domains/catalog/repository"
	couponHandler "storefront-backend/internal/domains/coupon/handler"
	couponService "storefront-backend/internal/domains/coupon/service"
)

// Container holds the full dependency graph of the application.
// Everything in here is a singleton built once at startup.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB // nil unless catalog source is postgres
	Store      storage.Store
	JWTManager *jwt.Manager

	// Repositories
	CatalogRepo catalogRepo.Reader

	// Services
	CartService CartServiceInterface
	CouponTable *couponService.Table
	Evaluator   *couponService.Evaluator

	// Handlers
	CartHandler    *cartHandler.CartHandler
	CouponHandler  *couponHandler.CouponHandler
	AdminHandler   *couponHandler.AdminHandler
	CatalogHandler *catalogHandler.CatalogHandler
}

// CartServiceInterface re-exports the cart service contract so the
// router does not import the service package directly.
type CartServiceInterface = cartService.ServiceInterface

// NewContainer builds the whole dependency graph.
//
// Initialization order matters: config first, then infrastructure
// (store, database), then repositories, services, and handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	currency := money.Currency(cfg.App.Currency)
	if !currency.IsValid() {
		log.Warn().Str("currency", cfg.App.Currency).Msg("Unknown currency, falling back to USD")
		currency = money.USD
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Persistence backend for the cart slot
	maxAge := time.Duration(cfg.Cart.MaxAgeDays) * 24 * time.Hour
	switch cfg.Cart.Backend {
	case config.CartBackendRedis:
		store := storage.NewRedisStore(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB, cfg.Cart.StorageKey, maxAge)
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.Store = store
		log.Info().Str("host", cfg.Redis.Host).Str("key", cfg.Cart.StorageKey).Msg("Redis cart store ready")
	default:
		store, err := storage.NewFileStore(cfg.Cart.FilePath, maxAge)
		if err != nil {
			return nil, fmt.Errorf("failed to open cart file store: %w", err)
		}
		c.Store = store
		log.Info().Str("path", cfg.Cart.FilePath).Msg("File cart store ready")
	}

	// Catalog source
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		db := database.NewPostgresDB(&database.DBConfig{
			Host:           cfg.Database.Host,
			Port:           cfg.Database.Port,
			Username:       cfg.Database.User,
			Password:       cfg.Database.Password,
			DBName:         cfg.Database.Database,
			SSLMode:        cfg.Database.SSLMode,
			MaxConns:       int32(cfg.Database.MaxConns),
			MinConns:       int32(cfg.Database.MinConns),
			MaxRetries:     3,
			RetryDelay:     2 * time.Second,
			ConnectTimeout: 10 * time.Second,
		})
		if err := db.Connect(ctx); err != nil {
			c.Store.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db
		c.CatalogRepo = catalogRepo.NewPostgresRepository(db)
	default:
		c.CatalogRepo = catalogRepo.SeededMemoryRepository()
		log.Info().Msg("Using seeded in-memory catalog")
	}

	// Cart service loads the persisted cart before it starts watching
	// for external writes
	cart, err := cartService.NewCartService(ctx, c.Store, c.CatalogRepo)
	if err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to initialize cart service: %w", err)
	}
	c.CartService = cart

	c.CouponTable = couponService.DefaultTable()
	c.Evaluator = couponService.NewEvaluator(c.CouponTable)

	c.JWTManager = jwt.NewManager(
		cfg.Admin.JWTSecret,
		time.Duration(cfg.Admin.TokenExpiryMinute)*time.Minute,
	)

	c.CartHandler = cartHandler.NewCartHandler(c.CartService, currency)
	c.CouponHandler = couponHandler.NewCouponHandler(c.Evaluator, c.CartService, c.Store, currency)
	c.AdminHandler = couponHandler.NewAdminHandler(c.CouponTable, c.JWTManager, cfg.Admin.Username, cfg.Admin.PasswordHash)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogRepo)

	log.Info().Msg("Container initialized")
	return c, nil
}

// Cleanup releases all resources in reverse initialization order
func (c *Container) Cleanup() {
	if c.CartService != nil {
		if err := c.CartService.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close cart service")
		}
	}
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close cart store")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
