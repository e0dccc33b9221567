package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/nba-odds-board/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	CORSAllowedOrigins             []string
	SwaggerEnabled                 bool
	LogLevel                       logging.Level
	OpticOddsBaseURL               string
	OpticOddsAPIKey                string
	OpticOddsTimeout               time.Duration
	OpticOddsSport                 string
	OpticOddsLeague                string
	OpticOddsSportsbook            string
	OpticOddsOddsFormat            string
	OpticOddsBatchSize             int
	OpticOddsRateLimit             float64
	OpticOddsCircuitEnabled        bool
	OpticOddsCircuitFailureCount   int
	OpticOddsCircuitOpenTimeout    time.Duration
	OpticOddsCircuitHalfOpenMaxReq int
	BoardTimezone                  *time.Location
	BoardRefreshInterval           time.Duration
	CacheEnabled                   bool
	CacheTTL                       time.Duration
	MetricsEnabled                 bool
	PprofEnabled                   bool
	PprofAddr                      string
	UptraceEnabled                 bool
	UptraceDSN                     string
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	apiKey := strings.TrimSpace(getEnv("OPTICODDS_API_KEY", ""))
	if apiKey == "" {
		return Config{}, fmt.Errorf("OPTICODDS_API_KEY is required")
	}
	opticOddsTimeout, err := time.ParseDuration(getEnv("OPTICODDS_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse OPTICODDS_TIMEOUT: %w", err)
	}
	if opticOddsTimeout <= 0 {
		return Config{}, fmt.Errorf("OPTICODDS_TIMEOUT must be > 0")
	}
	batchSize, err := getEnvAsInt("OPTICODDS_BATCH_SIZE", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse OPTICODDS_BATCH_SIZE: %w", err)
	}
	if batchSize <= 0 {
		return Config{}, fmt.Errorf("OPTICODDS_BATCH_SIZE must be > 0")
	}
	rateLimit, err := strconv.ParseFloat(getEnv("OPTICODDS_RATE_LIMIT", "0"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse OPTICODDS_RATE_LIMIT: %w", err)
	}
	if rateLimit < 0 {
		return Config{}, fmt.Errorf("OPTICODDS_RATE_LIMIT must be >= 0")
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("OPTICODDS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse OPTICODDS_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("OPTICODDS_CIRCUIT_FAILURE_COUNT", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse OPTICODDS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if circuitFailureCount <= 0 {
		return Config{}, fmt.Errorf("OPTICODDS_CIRCUIT_FAILURE_COUNT must be > 0")
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("OPTICODDS_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse OPTICODDS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if circuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("OPTICODDS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("OPTICODDS_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse OPTICODDS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if circuitHalfOpenMaxReq <= 0 {
		return Config{}, fmt.Errorf("OPTICODDS_CIRCUIT_HALF_OPEN_MAX_REQ must be > 0")
	}

	timezoneName := strings.TrimSpace(getEnv("BOARD_TIMEZONE", "America/Los_Angeles"))
	boardTimezone, err := time.LoadLocation(timezoneName)
	if err != nil {
		return Config{}, fmt.Errorf("parse BOARD_TIMEZONE %q: %w", timezoneName, err)
	}
	refreshInterval, err := time.ParseDuration(getEnv("BOARD_REFRESH_INTERVAL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BOARD_REFRESH_INTERVAL: %w", err)
	}
	if refreshInterval < time.Second {
		return Config{}, fmt.Errorf("BOARD_REFRESH_INTERVAL must be >= 1s")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheEnabled && cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0 when CACHE_ENABLED=true")
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse METRICS_ENABLED: %w", err)
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "nba-odds-board"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:                 swaggerEnabled,
		LogLevel:                       logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		OpticOddsBaseURL:               strings.TrimSpace(getEnv("OPTICODDS_BASE_URL", "https://api.opticodds.com/api/v3")),
		OpticOddsAPIKey:                apiKey,
		OpticOddsTimeout:               opticOddsTimeout,
		OpticOddsSport:                 strings.TrimSpace(getEnv("OPTICODDS_SPORT", "basketball")),
		OpticOddsLeague:                strings.TrimSpace(getEnv("OPTICODDS_LEAGUE", "nba")),
		OpticOddsSportsbook:            strings.TrimSpace(getEnv("OPTICODDS_SPORTSBOOK", "FanDuel")),
		OpticOddsOddsFormat:            strings.TrimSpace(getEnv("OPTICODDS_ODDS_FORMAT", "AMERICAN")),
		OpticOddsBatchSize:             batchSize,
		OpticOddsRateLimit:             rateLimit,
		OpticOddsCircuitEnabled:        circuitEnabled,
		OpticOddsCircuitFailureCount:   circuitFailureCount,
		OpticOddsCircuitOpenTimeout:    circuitOpenTimeout,
		OpticOddsCircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
		BoardTimezone:                  boardTimezone,
		BoardRefreshInterval:           refreshInterval,
		CacheEnabled:                   cacheEnabled,
		CacheTTL:                       cacheTTL,
		MetricsEnabled:                 metricsEnabled,
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	for _, item := range strings.Split(raw, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(item), "=")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
