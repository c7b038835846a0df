package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripcast-service/internal/domain/repository"
	"tripcast-service/internal/infrastructure/config"
	"tripcast-service/internal/infrastructure/forecast"
	"tripcast-service/internal/infrastructure/persistence"
	"tripcast-service/internal/interface/handler"
	tripRepo "tripcast-service/internal/interface/repository"
	"tripcast-service/internal/usecase"
	"tripcast-service/pkg/logger"
	"tripcast-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Tripcast Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serviceMetrics := metrics.NewMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)

	// Set up PostgreSQL connection for trip aggregates
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN, persistence.PostgresOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatal("Failed to get PostgreSQL handle", "error", err)
	}
	defer sqlDB.Close()

	// Forecasts are loaded once; MongoDB is only needed for the mongo source
	var mongoClient *mongo.Client
	var forecastRepository repository.ForecastRepository
	if cfg.ForecastSource == forecast.SourceMongo {
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoClient = client
		forecastRepository = tripRepo.NewMongoForecastRepository(db)
	}

	forecastTable, err := forecast.Load(ctx, cfg.ForecastSource, cfg.ForecastFile, forecastRepository)
	if err != nil {
		log.Fatal("Failed to load forecasts", "source", cfg.ForecastSource, "error", err)
	}
	serviceMetrics.ForecastEntries.Set(float64(forecastTable.Len()))
	log.Info("Forecasts loaded", "source", cfg.ForecastSource, "entries", forecastTable.Len())

	if mongoClient != nil {
		// The table is immutable from here on
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}

	// Set up repositories and use cases
	tripRepository := tripRepo.NewGormTripRepository(gormDB)
	engine := usecase.NewAssessmentEngine(forecastTable)
	tripService := usecase.NewTripService(tripRepository, engine, cfg.TripsMinYear, serviceMetrics, log)

	router := handler.NewRouter(handler.RouterConfig{
		Trips:          handler.NewTripHandler(tripService),
		Health:         handler.NewHealthHandler(sqlDB),
		Metrics:        promhttp.Handler(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	log.Info("Tripcast Service stopped")
}
