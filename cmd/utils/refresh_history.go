package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"tailtracker-service/internal/infrastructure/config"
	"tailtracker-service/internal/infrastructure/oauth"
	"tailtracker-service/internal/infrastructure/persistence"
	"tailtracker-service/internal/interface/provider"
	mongoRepo "tailtracker-service/internal/interface/repository"
	"tailtracker-service/internal/usecase"
	"tailtracker-service/pkg/logger"
	"tailtracker-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// One-shot history refresh for a single registration. Useful for warming the
// cache after importing old journal entries.
func main() {
	registration := flag.String("registration", "", "aircraft registration to refresh")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	if *registration == "" {
		log.Fatal("usage: refresh_history -registration <tail number>")
	}

	appLogger := logger.NewLogger()
	defer appLogger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())

	entryRepo := mongoRepo.NewMongoEntryRepository(db)

	openskyOAuth := oauth.NewOpenSkyOAuth(cfg.HistoryClientID, cfg.HistorySecret, cfg.HistoryTokenURL, appLogger)
	historyHTTPClient := openskyOAuth.HTTPClient(ctx)
	historyHTTPClient.Timeout = cfg.ProviderTimeout

	registryClient := provider.NewRegistryClient(cfg.RegistryBaseURL, cfg.ProviderTimeout, appLogger)
	liveClient := provider.NewLiveFlightClient(cfg.LiveBaseURL, cfg.LiveAPIKey, cfg.ProviderTimeout, appLogger)
	historyClient := provider.NewHistoryClient(cfg.HistoryBaseURL, historyHTTPClient, appLogger)

	appMetrics := metrics.NewMetrics(prometheus.NewRegistry(), "tailtracker")
	details := usecase.NewDetailsUsecase(entryRepo, nil, registryClient, liveClient, historyClient, appMetrics, appLogger, cfg.BackfillTimeout)

	result, err := details.GetDetails(ctx, *registration)
	if err != nil {
		log.Fatalf("refresh failed: %v", err)
	}

	fmt.Printf("registration: %s\n", *registration)
	fmt.Printf("history segments: %d\n", len(result.FlightHistory))
	fmt.Printf("last check: %s\n", result.LastHistoryCheck.Format(time.RFC3339))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result.FlightHistory); err != nil {
		log.Fatalf("failed to print history: %v", err)
	}
}
