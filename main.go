package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rifat2413010/e-commerce-bloom/auth"
	"github.com/rifat2413010/e-commerce-bloom/cart"
	"github.com/rifat2413010/e-commerce-bloom/catalog"
	"github.com/rifat2413010/e-commerce-bloom/checkout"
	"github.com/rifat2413010/e-commerce-bloom/config"
	"github.com/rifat2413010/e-commerce-bloom/events"
	"github.com/rifat2413010/e-commerce-bloom/middleware"
	"github.com/rifat2413010/e-commerce-bloom/models"
	"github.com/rifat2413010/e-commerce-bloom/orders"
	"github.com/rifat2413010/e-commerce-bloom/routes"
	"github.com/rifat2413010/e-commerce-bloom/settings"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	log := newLogger(cfg)
	slog.SetDefault(log)
	log.Info("✅ Starting application...")

	if cfg.JWTSecret == "" {
		fatal(log, "JWT_SECRET is required", nil)
	}

	// Init DB
	db := initDatabase(cfg, log)
	if cfg.AutoMigrate {
		if err := db.AutoMigrate(models.AllModels()...); err != nil {
			fatal(log, "❌ AutoMigrate failed", err)
		}
	}

	site := settings.NewRepository(db)
	seedSettings(site, cfg.SettingsSeedFile, log)

	cat := catalog.NewRepository(db)
	carts := cart.NewService(initCartStore(cfg, log), cat)

	if err := serve(cfg, log, db, site, cat, carts); err != nil {
		fatal(log, "❌ Failed to start server", err)
	}
}

// serve wires the order pipeline and HTTP routes and blocks in the server.
// Resources opened here are released before main decides the exit code.
func serve(cfg *config.Config, log *slog.Logger, db *gorm.DB, site *settings.Repository, cat *catalog.Repository, carts *cart.Service) error {
	// Order events: admin websocket feed, plus RabbitMQ when configured
	hub := events.NewHub(log)
	publishers := events.Fanout{hub}
	if cfg.RabbitMQURL != "" {
		pool, err := events.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize)
		if err != nil {
			return fmt.Errorf("rabbitmq: %w", err)
		}
		defer pool.Close()
		publishers = append(publishers, events.NewRabbitPublisher(pool, cfg.RabbitMQQueue, log))
		log.Info("order events published to RabbitMQ", "queue", cfg.RabbitMQQueue)
	}

	gateway := orders.NewGormGateway(db, publishers, log)

	// Gin setup
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.GinMode == gin.DebugMode {
		r.Use(gin.Logger())
	}

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", "X-API-KEY", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Retry-After"},
		AllowCredentials: !allowsAnyOrigin(cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Catalog:     cat,
		Carts:       carts,
		Checkout:    checkout.NewService(carts, cat, gateway, site, log),
		Gateway:     gateway,
		Orders:      orders.NewRepository(db),
		Settings:    site,
		Sessions:    auth.NewSessionIssuer(cfg.JWTSecret, cfg.SessionTTL),
		Hub:         hub,
		Limiter:     middleware.NewRateLimiter(cfg.CheckoutRPS, cfg.CheckoutBurst),
		AdminAPIKey: cfg.AdminAPIKey,
	})

	// Start server
	log.Info("🚀 Server running", "port", cfg.Port)
	return r.Run(":" + cfg.Port)
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.GinMode == gin.DebugMode {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}

// initDatabase sets up the GORM DB connection
func initDatabase(cfg *config.Config, log *slog.Logger) *gorm.DB {
	gormConfig := &gorm.Config{}
	if cfg.GinMode != gin.DebugMode {
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormConfig)
	if err != nil {
		fatal(log, "❌ DB connection failed", err)
	}
	return db
}

func initCartStore(cfg *config.Config, log *slog.Logger) cart.Store {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR not set, carts are kept in memory and lost on restart")
		return cart.NewMemoryStore(cfg.CartTTL)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		fatal(log, "❌ Redis connection failed", err)
	}
	return cart.NewRedisStore(rdb, cfg.CartTTL)
}

// seedSettings inserts the keys from the seed file that are not in the table yet.
func seedSettings(site *settings.Repository, path string, log *slog.Logger) {
	entries, err := settings.LoadSeed(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("no settings seed file", "path", path)
		return
	}
	if err != nil {
		fatal(log, "❌ Failed to read settings seed", err)
	}
	created, err := site.Seed(context.Background(), entries)
	if err != nil {
		fatal(log, "❌ Failed to seed settings", err)
	}
	log.Info("site settings seeded", "created", created, "path", path)
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			return true
		}
	}
	return false
}
