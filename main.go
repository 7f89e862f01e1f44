package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/shubham7227/ecommerce/controllers"
	"github.com/shubham7227/ecommerce/database"
	"github.com/shubham7227/ecommerce/kafka"
	"github.com/shubham7227/ecommerce/logger"
	"github.com/shubham7227/ecommerce/middleware"
	"github.com/shubham7227/ecommerce/repository"
	"github.com/shubham7227/ecommerce/routes"
	"github.com/shubham7227/ecommerce/services"
)

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		zap.NewExample().Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Initialize(cfg.Env)
	defer zap.L().Sync()

	if err := database.Connect(cfg.MongoURL, cfg.MongoDB); err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	if err := database.EnsureIndexes(context.Background()); err != nil {
		zap.L().Warn("Failed to ensure indexes", zap.Error(err))
	}

	redisClient := database.NewRedisClient(cfg.RedisURL)
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)

	// Wire repositories, services and controllers.
	productRepo := repository.NewMongoProductRepository(database.DB)
	orderRepo := repository.NewMongoOrderRepository(database.DB)
	cartRepo := repository.NewMongoCartRepository(database.DB)
	reviewRepo := repository.NewMongoReviewRepository(database.DB)
	brandRepo := repository.NewMongoBrandRepository(database.DB)
	userRepo := repository.NewMongoUserRepository(database.DB)

	txRunner := services.NewMongoTxRunner(database.MongoClient)
	orderService := services.NewOrderService(orderRepo, cartRepo, productRepo, txRunner, producer)

	cache := controllers.NewResponseCache(redisClient)
	productController := controllers.NewProductController(productRepo, reviewRepo, cache)
	orderController := controllers.NewOrderController(orderRepo, orderService)
	brandController := controllers.NewBrandController(brandRepo)
	cartController := controllers.NewCartController(cartRepo)
	authController := controllers.NewAuthController(userRepo, []byte(cfg.JWTSecret))

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.SecurityHeaders())

	limiter := middleware.NewRateLimiter(rate.Limit(50), 100, 3*time.Minute)
	r.Use(limiter.Middleware())

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.Register(r, []byte(cfg.JWTSecret),
		productController, orderController, brandController, cartController, authController)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Storefront starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down storefront...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	producer.Close()
	if err := redisClient.Close(); err != nil {
		zap.L().Error("Failed to close Redis", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		zap.L().Error("Failed to disconnect MongoDB", zap.Error(err))
	}

	zap.L().Info("Storefront stopped gracefully")
}
