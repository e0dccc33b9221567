package app

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/nba-odds-board/external/opticodds"
	"github.com/riskibarqy/nba-odds-board/internal/config"
	"github.com/riskibarqy/nba-odds-board/internal/interfaces/httpapi"
	"github.com/riskibarqy/nba-odds-board/internal/platform/logging"
	"github.com/riskibarqy/nba-odds-board/internal/platform/metrics"
	"github.com/riskibarqy/nba-odds-board/internal/platform/resilience"
	"github.com/riskibarqy/nba-odds-board/internal/usecase"
)

const metricsNamespace = "nba_odds_board"

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var registry *metrics.Registry
	if cfg.MetricsEnabled {
		registry = metrics.New(metricsNamespace)
	}

	opticOddsClient := opticodds.NewClient(opticodds.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.OpticOddsTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:    cfg.OpticOddsBaseURL,
		APIKey:     cfg.OpticOddsAPIKey,
		Timeout:    cfg.OpticOddsTimeout,
		Sport:      cfg.OpticOddsSport,
		League:     cfg.OpticOddsLeague,
		Sportsbook: cfg.OpticOddsSportsbook,
		OddsFormat: cfg.OpticOddsOddsFormat,
		BatchSize:  cfg.OpticOddsBatchSize,
		RateLimit:  cfg.OpticOddsRateLimit,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.OpticOddsCircuitEnabled,
			FailureThreshold: cfg.OpticOddsCircuitFailureCount,
			OpenTimeout:      cfg.OpticOddsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.OpticOddsCircuitHalfOpenMaxReq,
		},
		Metrics: registry,
	})

	cacheTTL := cfg.CacheTTL
	if !cfg.CacheEnabled {
		cacheTTL = 0
	}
	boardSvc := usecase.NewBoardService(opticOddsClient, usecase.BoardServiceConfig{
		Location:     cfg.BoardTimezone,
		CacheTTL:     cacheTTL,
		BuildTimeout: cfg.WriteTimeout,
		Logger:       logger,
		Metrics:      registry,
	})

	handler := httpapi.NewHandler(boardSvc, httpapi.PageConfig{
		RefreshInterval: cfg.BoardRefreshInterval,
	}, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:            registry,
	})

	logger.Info("board service configured",
		"timezone", cfg.BoardTimezone.String(),
		"sportsbook", cfg.OpticOddsSportsbook,
		"batch_size", cfg.OpticOddsBatchSize,
		"cache_enabled", cfg.CacheEnabled,
		"cache_ttl", cacheTTL,
		"metrics_enabled", cfg.MetricsEnabled,
	)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
