package httpapi

import (
	"net/http"

	"github.com/riskibarqy/nba-odds-board/internal/platform/id"
	"github.com/riskibarqy/nba-odds-board/internal/platform/logging"
	"github.com/riskibarqy/nba-odds-board/internal/platform/metrics"
)

type RouterConfig struct {
	ServiceName        string
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	// Metrics, when set, is served at /metrics and records request counters.
	Metrics *metrics.Registry
	// RequestIDs defaults to random hex ids.
	RequestIDs id.Generator
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "nba-odds-board"
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg)
	registerBoardRoutes(mux, handler)

	return RequestTracing(cfg.ServiceName,
		RequestID(cfg.RequestIDs,
			RequestLogging(logger, cfg.Metrics,
				CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
