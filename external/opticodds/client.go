package opticodds

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/riskibarqy/nba-odds-board/internal/domain/fixture"
	"github.com/riskibarqy/nba-odds-board/internal/domain/odds"
	"github.com/riskibarqy/nba-odds-board/internal/domain/result"
	"github.com/riskibarqy/nba-odds-board/internal/platform/batch"
	"github.com/riskibarqy/nba-odds-board/internal/platform/logging"
	"github.com/riskibarqy/nba-odds-board/internal/platform/metrics"
	"github.com/riskibarqy/nba-odds-board/internal/platform/resilience"
	"github.com/riskibarqy/nba-odds-board/internal/usecase"
)

const (
	defaultBaseURL    = "https://api.opticodds.com/api/v3"
	defaultSport      = "basketball"
	defaultLeague     = "nba"
	defaultSportsbook = "FanDuel"
	defaultOddsFormat = "AMERICAN"
	defaultBatchSize  = 5
	maxResponseBytes  = 6 << 20

	endpointFixtures = "fixtures"
	endpointOdds     = "fixtures_odds"
	endpointResults  = "fixtures_results"

	apiKeyHeader = "X-Api-Key"
)

var errOpticOddsTransient = crerr.New("opticodds transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Sport      string
	League     string
	Sportsbook string
	OddsFormat string
	// BatchSize caps fixture ids per odds or results request.
	BatchSize int
	// RateLimit is requests per second across batches; zero disables pacing.
	RateLimit      float64
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	Metrics        *metrics.Registry
}

// Client talks to the OpticOdds v3 REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	sport      string
	league     string
	sportsbook string
	oddsFormat string
	batchSize  int
	limiter    *rate.Limiter
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	metrics    *metrics.Registry
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	named := logger.Named("opticodds")
	breakerCfg := cfg.CircuitBreaker
	registry := cfg.Metrics
	breakerCfg.OnStateChange = func(name string, from, to resilience.CircuitState) {
		named.Warn("circuit breaker state changed", "breaker", name, "from", string(from), "to", string(to))
		registry.ObserveCircuit(name, string(to))
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		sport:      firstNonEmpty(cfg.Sport, defaultSport),
		league:     firstNonEmpty(cfg.League, defaultLeague),
		sportsbook: firstNonEmpty(cfg.Sportsbook, defaultSportsbook),
		oddsFormat: firstNonEmpty(cfg.OddsFormat, defaultOddsFormat),
		batchSize:  batchSize,
		limiter:    limiter,
		logger:     named,
		breaker:    resilience.NewCircuitBreaker("opticodds", breakerCfg),
		metrics:    cfg.Metrics,
	}
}

// FetchFixturesByDate lists the league's fixtures starting on date (YYYY-MM-DD).
func (c *Client) FetchFixturesByDate(ctx context.Context, date string) ([]fixture.Fixture, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, fmt.Errorf("%w: start date is required", usecase.ErrInvalidInput)
	}

	query := url.Values{}
	query.Set("sport", c.sport)
	query.Set("league", c.league)
	query.Set("start_date", date)

	raw, err := c.doRequest(ctx, endpointFixtures, "/fixtures", query)
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures start_date=%s: %w", date, err)
	}
	items, err := decodeObjects(raw)
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures start_date=%s: %w", date, err)
	}

	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		mapped, ok := mapFixture(item)
		if !ok {
			c.logger.WarnContext(ctx, "skip fixture without id", "start_date", date)
			continue
		}
		out = append(out, mapped)
	}
	return out, nil
}

// FetchOdds returns main-line quotes for the configured sportsbook, keyed by fixture id.
// Fixtures the provider omits are absent from the map.
func (c *Client) FetchOdds(ctx context.Context, fixtureIDs []string) (map[string][]odds.Quote, error) {
	byFixture, err := batch.Fetch(ctx, fixtureIDs, c.batchSize, func(ctx context.Context, group []string) ([]oddsFixture, error) {
		query := fixtureIDQuery(group)
		query.Set("sportsbook", c.sportsbook)
		query.Set("odds_format", c.oddsFormat)
		query.Set("is_main", "true")

		raw, err := c.doRequest(ctx, endpointOdds, "/fixtures/odds", query)
		if err != nil {
			return nil, err
		}
		items, err := decodeObjects(raw)
		if err != nil {
			return nil, err
		}
		out := make([]oddsFixture, 0, len(items))
		for _, item := range items {
			out = append(out, mapOddsFixture(item))
		}
		return out, nil
	}, func(item oddsFixture) (string, bool) {
		return item.ID, item.ID != ""
	}, batch.WithLimiter(c.limiter))
	if err != nil {
		return nil, fmt.Errorf("fetch odds: %w", err)
	}

	out := make(map[string][]odds.Quote, len(byFixture))
	for id, item := range byFixture {
		out[id] = item.Quotes
	}
	return out, nil
}

// FetchResults returns raw result records keyed by the fixture they belong to.
func (c *Client) FetchResults(ctx context.Context, fixtureIDs []string) (map[string]result.Record, error) {
	out, err := batch.Fetch(ctx, fixtureIDs, c.batchSize, func(ctx context.Context, group []string) ([]result.Record, error) {
		query := fixtureIDQuery(group)
		query.Set("sport", c.sport)
		query.Set("league", c.league)

		raw, err := c.doRequest(ctx, endpointResults, "/fixtures/results", query)
		if err != nil {
			return nil, err
		}
		items, err := decodeObjects(raw)
		if err != nil {
			return nil, err
		}
		records := make([]result.Record, 0, len(items))
		for _, item := range items {
			records = append(records, result.Record(item))
		}
		return records, nil
	}, result.Record.FixtureID, batch.WithLimiter(c.limiter))
	if err != nil {
		return nil, fmt.Errorf("fetch results: %w", err)
	}
	return out, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	started := time.Now()
	var raw []byte
	err := c.breaker.Execute(func() error {
		var reqErr error
		raw, reqErr = c.executeRequest(ctx, fullURL)
		return reqErr
	}, isOpticOddsCircuitFailure)
	c.metrics.ObserveUpstream(endpoint, err, time.Since(started))

	switch {
	case err == nil:
		return raw, nil
	case errors.Is(err, resilience.ErrCircuitOpen):
		c.logger.WarnContext(ctx, "opticodds circuit breaker rejected request", "endpoint", endpoint, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: odds provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		return nil, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
	}
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: send request: %s", errOpticOddsTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		c.logger.WarnContext(ctx, "opticodds request failed", "url", fullURL, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", errOpticOddsTransient, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	body := sanitizeSensitiveText(abbreviateBody(raw), c.apiKey)
	if isTransientStatus(resp.StatusCode) {
		err = fmt.Errorf("%w: provider status=%d body=%s", errOpticOddsTransient, resp.StatusCode, body)
	} else {
		err = fmt.Errorf("provider status=%d body=%s", resp.StatusCode, body)
	}
	c.logger.WarnContext(ctx, "opticodds request failed", "url", fullURL, "status", resp.StatusCode, "error", err)
	return nil, err
}

func mapFixture(item map[string]any) (fixture.Fixture, bool) {
	id := getString(item, "id")
	if id == "" {
		return fixture.Fixture{}, false
	}
	rawStart := getString(item, "start_date")
	start, _ := fixture.ParseStart(rawStart)
	rawStatus := getString(item, "status")

	return fixture.Fixture{
		ID:        id,
		HomeTeam:  getString(item, "home_team_display"),
		AwayTeam:  getString(item, "away_team_display"),
		StartAt:   start,
		RawStart:  rawStart,
		Status:    fixture.NormalizeStatus(rawStatus),
		RawStatus: rawStatus,
		Record:    item,
	}, true
}

// mapOddsFixture keeps every object in the odds list. A non-array odds field means no quotes.
func mapOddsFixture(item map[string]any) oddsFixture {
	id := getString(item, "id")
	entries, _ := item["odds"].([]any)
	quotes := make([]odds.Quote, 0, len(entries))
	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		quote := mapQuote(obj)
		quote.FixtureID = id
		quotes = append(quotes, quote)
	}
	return oddsFixture{ID: id, Quotes: quotes}
}

func mapQuote(item map[string]any) odds.Quote {
	quote := odds.Quote{
		ID:         getString(item, "id"),
		Sportsbook: getString(item, "sportsbook"),
		Market:     getString(item, "market"),
		Name:       getString(item, "name"),
		Selection:  getString(item, "selection"),
		IsMain:     getBool(item, "is_main"),
	}
	switch price := item["price"].(type) {
	case float64:
		quote.Price = odds.NewPrice(price)
	case string:
		quote.Price = odds.ParsePrice(price)
	}
	if points, ok := getFloat(item, "points"); ok {
		quote.Points = &points
	}
	return quote
}

func fixtureIDQuery(ids []string) url.Values {
	query := url.Values{}
	for _, id := range ids {
		query.Add("fixture_id", id)
	}
	return query
}

func getString(src map[string]any, key string) string {
	switch typed := src[key].(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return ""
	}
}

func getFloat(src map[string]any, key string) (float64, bool) {
	switch typed := src[key].(type) {
	case float64:
		return typed, true
	case string:
		v, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	default:
		return 0, false
	}
}

func getBool(src map[string]any, key string) bool {
	switch typed := src[key].(type) {
	case bool:
		return typed
	case string:
		v, _ := strconv.ParseBool(strings.TrimSpace(typed))
		return v
	default:
		return false
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func isOpticOddsCircuitFailure(err error) bool {
	return errors.Is(err, errOpticOddsTransient)
}

func isTransientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, apiKey, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
