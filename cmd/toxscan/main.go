package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/Toxscan/internal/api"
	"github.com/MikeSquared-Agency/Toxscan/internal/catalog"
	"github.com/MikeSquared-Agency/Toxscan/internal/config"
	"github.com/MikeSquared-Agency/Toxscan/internal/curation"
	"github.com/MikeSquared-Agency/Toxscan/internal/hermes"
	"github.com/MikeSquared-Agency/Toxscan/internal/labs"
	"github.com/MikeSquared-Agency/Toxscan/internal/metrics"
	"github.com/MikeSquared-Agency/Toxscan/internal/normalize"
	"github.com/MikeSquared-Agency/Toxscan/internal/observability"
	"github.com/MikeSquared-Agency/Toxscan/internal/scoring"
	"github.com/MikeSquared-Agency/Toxscan/internal/store"
	"github.com/MikeSquared-Agency/Toxscan/internal/vocab"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	params := scoreParams(cfg.Scoring)
	if err := params.Validate(); err != nil {
		logger.Error("invalid scoring parameters", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	// Database (optional)
	var db store.Store
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		db = pg
		logger.Info("connected to database")
	} else {
		db = store.NewMemoryStore()
		logger.Warn("no database configured, using in-memory store")
	}
	defer db.Close()

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	// Vocabulary
	source, err := vocabularySource(cfg.Vocabulary, db)
	if err != nil {
		logger.Error("failed to configure vocabulary", "error", err)
		os.Exit(1)
	}
	cache := vocab.NewCache(source, vocab.CacheOptions{
		TTL:         cfg.VocabularyTTL(),
		LoadTimeout: cfg.VocabularyLoadTimeout(),
		OnLoad:      onVocabularyLoad(hermesClient, m, logger),
	}, logger)
	if _, err := cache.Refresh(ctx); err != nil {
		logger.Warn("initial vocabulary load failed, will retry on demand", "source", cfg.Vocabulary.Source, "error", err)
	}

	err = hermes.SubscribeRefresh(hermesClient, logger, cfg.VocabularyLoadTimeout(), func(ctx context.Context) error {
		_, err := cache.Refresh(ctx)
		return err
	})
	if err != nil {
		logger.Warn("failed to subscribe to vocabulary refresh", "error", err)
	}

	// Curation tracker
	tracker := curation.NewTracker(db, hermesClient, m, cfg.CurationFlushInterval(), cfg.Curation.BufferSize, logger)
	tracker.Start(ctx)
	defer tracker.Stop()

	// Scoring engine
	engine := scoring.NewEngine(cache, scoring.EngineOptions{
		Params: params,
		Normalize: normalize.Options{
			MinPartialAliasLen: cfg.Scoring.MinPartialAliasLen,
			FallbackMaxLen:     cfg.Scoring.FallbackMaxLen,
		},
		Recorder: tracker,
		Metrics:  m,
	}, logger)

	// Catalog
	sourceOpts := catalog.OpenFactsOptions{
		UserAgent:         cfg.Catalog.UserAgent,
		Timeout:           cfg.CatalogTimeout(),
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
		Metrics:           m,
	}
	offOpts, obfOpts := sourceOpts, sourceOpts
	offOpts.BaseURL = cfg.Catalog.OpenFoodFactsURL
	obfOpts.BaseURL = cfg.Catalog.OpenBeautyFactsURL
	sources := []catalog.ProductSource{
		catalog.NewOpenFoodFactsClient(offOpts),
		catalog.NewOpenBeautyFactsClient(obfOpts),
	}
	catalogService := catalog.NewService(db, engine, sources, hermesClient, m, logger)

	// Labs
	labProcessor := labs.NewProcessor(engine, db, hermesClient, m, logger)

	// API server
	router := api.NewRouter(catalogService, engine, labProcessor, db, m, cfg.Server, logger)
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Metrics server
	metricsRouter := api.NewMetricsRouter()
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)
	// Stop the tracker before the store closes so its final flush lands.
	tracker.Stop()
	cancel()

	logger.Info("shutdown complete")
}

func scoreParams(c config.ScoringConfig) scoring.ScoreParams {
	return scoring.ScoreParams{
		BaseScore:           c.BaseScore,
		MaxWeightMultiplier: c.MaxWeightMultiplier,
		VolumePerToken:      c.VolumePerToken,
		VolumeCap:           c.VolumeCap,
		ConcernThreshold:    c.ConcernThreshold,
		MaxConcerns:         c.MaxConcerns,
		MaxTokens:           c.MaxTokens,
		ModerateAbove:       c.ModerateAbove,
		ElevatedAbove:       c.ElevatedAbove,
	}
}

func vocabularySource(c config.VocabularyConfig, db store.Store) (vocab.Source, error) {
	switch c.Source {
	case config.VocabularyBuiltin, "":
		return vocab.BuiltinSource{}, nil
	case config.VocabularyFile:
		return vocab.NewFileSource(c.Path), nil
	case config.VocabularyPostgres:
		return db, nil
	}
	return nil, fmt.Errorf("unknown vocabulary source %q", c.Source)
}

// onVocabularyLoad records every load attempt and announces it. The cache
// logs the load itself.
func onVocabularyLoad(h hermes.Client, m *metrics.Metrics, logger *slog.Logger) func(*vocab.Vocabulary, error) {
	return func(v *vocab.Vocabulary, err error) {
		ev := hermes.VocabularyReloadedEvent{Timestamp: time.Now().UTC()}
		if err != nil {
			m.ObserveVocabularyLoad(0, err)
			ev.Error = err.Error()
		} else {
			m.ObserveVocabularyLoad(v.Len(), nil)
			ev.Version = v.Version()
			ev.Markers = v.Len()
			ev.Aliases = len(v.Aliases())
			ev.Conflicts = len(v.Conflicts())
		}
		hermes.Emit(h, logger, hermes.SubjectVocabularyReloaded, ev)
	}
}
