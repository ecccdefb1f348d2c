package main

import (
	"fmt"
	"log"

	"github.com/Kullendorff/systembolaget/config"
	httpDelivery "github.com/Kullendorff/systembolaget/internal/delivery/http"
	"github.com/Kullendorff/systembolaget/internal/domain"
	"github.com/Kullendorff/systembolaget/internal/infrastructure/cache"
	"github.com/Kullendorff/systembolaget/internal/infrastructure/catalog"
	"github.com/Kullendorff/systembolaget/internal/infrastructure/interpreter"
	"github.com/Kullendorff/systembolaget/internal/infrastructure/tastinglog"
	"github.com/Kullendorff/systembolaget/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.InitLogger(cfg.Logging.Level, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting systembolaget wine API",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port))

	// Catalog load is the single external-I/O boundary; a failure degrades
	// to an empty catalog and the server keeps serving empty results.
	store, err := catalog.Load(cfg.Catalog.Path, logger)
	if err != nil {
		logger.Warn("serving with empty catalog", zap.Error(err))
	}

	packaging := usecase.PackagingPolicy{
		MinVolumeML: cfg.Packaging.MinVolumeML,
		MaxVolumeML: cfg.Packaging.MaxVolumeML,
		ExcludeBox:  cfg.Packaging.ExcludeBox,
	}
	searchService := usecase.NewSearchService(store, usecase.SearchServiceConfig{
		Packaging: packaging,
	}, logger)

	// Optional personalization from a tasting-log export
	profiler := usecase.NewProfileBuilder(searchService.Matcher(), cfg.TastingLog.MinRating, logger)
	var profile *domain.UserProfile
	var logEntries []domain.TastingEntry
	if cfg.TastingLog.Path != "" {
		logEntries, err = tastinglog.Load(cfg.TastingLog.Path, logger)
		if err != nil {
			logger.Warn("tasting log unavailable, personalization disabled", zap.Error(err))
		} else if len(logEntries) > 0 {
			profile = profiler.Build(cfg.TastingLog.UserID, logEntries, store.All())
		}
	}

	// Optional natural-language interpreter behind a TTL cache
	var interp domain.Interpreter
	if cfg.Interpreter.Enabled {
		client := interpreter.NewClient(interpreter.Config{
			Host:              cfg.Interpreter.Host,
			Model:             cfg.Interpreter.Model,
			Timeout:           cfg.Interpreter.Timeout,
			MaxRetries:        cfg.Interpreter.MaxRetries,
			RequestsPerMinute: cfg.Interpreter.RequestsPerMinute,
		}, logger)
		interp = interpreter.NewCached(client, cache.NewMemoryCache(), cfg.Interpreter.CacheTTL, logger)
		logger.Info("query interpreter enabled", zap.String("host", cfg.Interpreter.Host))
	}

	handler := httpDelivery.NewHandler(searchService, interp, profile, profiler, logEntries, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
