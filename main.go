package main

import (
	"log"
	"net/http"
	"time"

	"github.com/freshfruit/storefront/controllers"
	"github.com/freshfruit/storefront/database"
	"github.com/freshfruit/storefront/logger"
	"github.com/freshfruit/storefront/middleware"
	"github.com/freshfruit/storefront/repository"
	"github.com/freshfruit/storefront/routes"
	"github.com/freshfruit/storefront/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, using system environment variables")
	}

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	store, err := openStore(cfg)
	if err != nil {
		logger.Log.Fatal("Could not open store", zap.Error(err))
	}

	var cache *services.CacheManager
	if cfg.RedisAddr != "" {
		cache = services.NewCacheManager(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	}

	userRepo := repository.NewUserRepository(store)
	productRepo := repository.NewProductRepository(store)
	orderRepo := repository.NewOrderRepository(store)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, tokenService, services.NewPasswordValidator())
	orderService := services.NewOrderService(orderRepo)
	productService := services.NewProductService(productRepo, cache)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	routes.Register(r, routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		Order:   controllers.NewOrderController(orderService),
		Product: controllers.NewProductController(productService),
	}, tokenService)

	logger.Log.Info("Storefront API started", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}
}

func openStore(cfg *Config) (database.Store, error) {
	if cfg.StoreDriver == "postgres" {
		return database.ConnectPostgres(
			cfg.PostgresHost, cfg.PostgresPort,
			cfg.PostgresUser, cfg.PostgresPassword,
			cfg.PostgresDB, cfg.PostgresSSLMode,
		)
	}
	return database.NewFileStore(cfg.StorePath)
}
