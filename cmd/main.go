package main

import (
	"net/http"

	"go.uber.org/zap"

	"amenityfinder/internal/api"
	"amenityfinder/internal/config"
	"amenityfinder/internal/core"
	"amenityfinder/internal/domain/repository"
	"amenityfinder/internal/infrastructure/listings"
	"amenityfinder/web"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	listingsClient := listings.NewClient(cfg.ListingsBaseURL, cfg.ListingsPublicURL, cfg.CacheTTL)
	overpassRepo := repository.NewOverpassRepository(cfg.OverpassURL, cfg.OverpassTimeout)

	var recorder core.SearchRecorder
	var history api.SearchHistory
	if cfg.PostgresURL != "" {
		historyRepo, err := repository.NewSearchHistoryRepository(cfg.PostgresURL)
		if err != nil {
			logger.Fatal("failed to open search history store", zap.Error(err))
		}
		defer historyRepo.Close()
		recorder = historyRepo
		history = historyRepo
	}

	insightService := core.NewInsightService(
		overpassRepo,
		recorder,
		cfg.SaveSearchHistory,
		cfg.CacheTTL,
		logger,
	)

	static, err := api.StaticFS(web.StaticFS)
	if err != nil {
		logger.Fatal("failed to mount static assets", zap.Error(err))
	}

	handler := api.NewHandler(listingsClient, insightService, history, logger)
	router := api.NewRouter(handler, static)

	logger.Info("starting server", zap.String("addr", cfg.ListenAddr))
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
