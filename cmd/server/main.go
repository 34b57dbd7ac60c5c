package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tailtracker-service/internal/infrastructure/config"
	"tailtracker-service/internal/infrastructure/oauth"
	"tailtracker-service/internal/infrastructure/persistence"
	"tailtracker-service/internal/interface/api"
	"tailtracker-service/internal/interface/provider"
	mongoRepo "tailtracker-service/internal/interface/repository"
	"tailtracker-service/internal/usecase"
	"tailtracker-service/pkg/logger"
	"tailtracker-service/pkg/metrics"

	domainRepo "tailtracker-service/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting TailTracker Service")
	defer log.Sync()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Airport reference data is optional; without it history segments are
	// served without airport names.
	var airportRepository domainRepo.AirportRepository
	if cfg.PostgresURI != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airportRepository = mongoRepo.NewGormAirportRepository(gormDB)
	} else {
		log.Warn("POSTGRES_DSN not set, airport name decoration disabled")
	}

	// Set up repositories
	entryRepo := mongoRepo.NewMongoEntryRepository(db)

	// Set up provider clients
	openskyOAuth := oauth.NewOpenSkyOAuth(cfg.HistoryClientID, cfg.HistorySecret, cfg.HistoryTokenURL, log)
	historyHTTPClient := openskyOAuth.HTTPClient(ctx)
	historyHTTPClient.Timeout = cfg.ProviderTimeout

	registryClient := provider.NewRegistryClient(cfg.RegistryBaseURL, cfg.ProviderTimeout, log)
	liveClient := provider.NewLiveFlightClient(cfg.LiveBaseURL, cfg.LiveAPIKey, cfg.ProviderTimeout, log)
	historyClient := provider.NewHistoryClient(cfg.HistoryBaseURL, historyHTTPClient, log)

	// Set up usecases
	appMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer, "tailtracker")
	entryUsecase := usecase.NewEntryUsecase(entryRepo, log)
	detailsUsecase := usecase.NewDetailsUsecase(entryRepo, airportRepository, registryClient, liveClient, historyClient, appMetrics, log, cfg.BackfillTimeout)

	// Set up HTTP server
	handler := api.NewHandler(entryUsecase, detailsUsecase, log)
	router := api.NewRouter(handler)
	router.Handle("/metrics", promhttp.Handler())

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

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("TailTracker Service stopped")
}
