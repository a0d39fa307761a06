package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/hubstack/inventory-service/docs"
	"github.com/hubstack/inventory-service/internal/inventory"
	"github.com/hubstack/inventory-service/internal/inventory/client"
	httpDelivery "github.com/hubstack/inventory-service/internal/inventory/delivery/http"
	"github.com/hubstack/inventory-service/internal/inventory/domain"
	"github.com/hubstack/inventory-service/internal/inventory/usecase/command"
	"github.com/hubstack/inventory-service/kafka"
	"github.com/hubstack/inventory-service/pkg/database"
	"github.com/hubstack/inventory-service/pkg/logger"
	"github.com/hubstack/inventory-service/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "inventory-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting inventory service")

	// Initialize tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
		}
	}()

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "inventorydb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := db.AutoMigrate(&domain.StockRecord{}, &domain.TransferRequest{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Hub directory client with Redis-cached lookups
	hubDirectoryURL := getEnv("HUB_SERVICE_URL", "http://localhost:8081")
	hubClient := client.NewHubDirectoryClient(hubDirectoryURL)

	var redisClient *redis.Client
	if addr := getEnv("REDIS_ADDR", ""); addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: getEnv("REDIS_PASSWORD", ""),
		})
		logger.Logger.Info().Str("redis_addr", addr).Msg("Hub metadata cache enabled")
	}
	hubs := client.NewCachedHubDirectory(hubClient, redisClient, 5*time.Minute)

	logger.Logger.Info().
		Str("hub_service_url", hubDirectoryURL).
		Msg("Hub directory client initialized")

	// Kafka publisher and consumer are optional; without brokers the
	// service still serves HTTP traffic.
	var events command.EventPublisher
	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		publisher, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
		defer publisher.Close()
		events = publisher
	}

	// Initialize handler with Wire DI
	handler, err := inventory.InitializeHTTPHandler(db, hubs, events)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if brokers != "" {
		stockRepo := inventory.ProvideStockRepository(db)
		consumer, err := kafka.NewConsumer(
			strings.Split(brokers, ","),
			getEnv("KAFKA_GROUP_ID", "inventory-service"),
			[]string{kafka.TopicOrderFulfilled},
		)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
		}
		defer consumer.Close()

		consumer.RegisterHandler(kafka.EventTypeOrderFulfilled, orderFulfilledHandler(stockRepo))
		if err := consumer.Start(ctx); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
		}
	}

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8082")
	go startHTTPServer(handler, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(handler *httpDelivery.InventoryHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register middlewares
	middlewareConfig := httpDelivery.DefaultMiddlewareConfig()
	httpDelivery.RegisterMiddlewares(router, middlewareConfig)

	// Register routes
	handler.RegisterRoutes(router)

	// Health check endpoint
	handler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	corsHandler := httpDelivery.SetupCORS(middlewareConfig)

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Str("swagger_endpoint", "/swagger/").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, corsHandler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

// orderFulfilledHandler consumes stock at the fulfilling hub when an
// order is fulfilled. The debit goes through the repository's locked
// AdjustQuantity unit; a consumption exceeding recorded stock fails the
// event and the quantity stays untouched, leaving the discrepancy in
// the error log for reconciliation instead of in the stock numbers.
func orderFulfilledHandler(stock domain.StockRepository) kafka.EventHandler {
	return func(ctx context.Context, event kafka.OrderFulfilledEvent) error {
		record, err := stock.FindByHubAndSKU(event.HubID, event.SKU)
		if err != nil {
			return err
		}

		_, err = stock.AdjustQuantity(ctx, record.ID, -event.Quantity)
		var insufficient *domain.InsufficientStockError
		if errors.As(err, &insufficient) {
			logger.Logger.Error().
				Str("order_id", event.OrderID).
				Str("hub_id", event.HubID).
				Str("sku", event.SKU).
				Int("recorded", insufficient.Available).
				Int("consumed", event.Quantity).
				Msg("Order consumed more than recorded stock")
		}
		return err
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
