package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/riskibarqy/nba-odds-board/internal/domain/board"
	"github.com/riskibarqy/nba-odds-board/internal/domain/fixture"
	"github.com/riskibarqy/nba-odds-board/internal/domain/odds"
	"github.com/riskibarqy/nba-odds-board/internal/domain/result"
	"github.com/riskibarqy/nba-odds-board/internal/platform/cache"
	"github.com/riskibarqy/nba-odds-board/internal/platform/logging"
	"github.com/riskibarqy/nba-odds-board/internal/platform/metrics"
)

// OddsProvider is the upstream sports data feed.
type OddsProvider interface {
	FetchFixturesByDate(ctx context.Context, date string) ([]fixture.Fixture, error)
	FetchOdds(ctx context.Context, fixtureIDs []string) (map[string][]odds.Quote, error)
	FetchResults(ctx context.Context, fixtureIDs []string) (map[string]result.Record, error)
}

type BoardServiceConfig struct {
	Location *time.Location
	// CacheTTL of zero disables the snapshot cache.
	CacheTTL time.Duration
	// BuildTimeout bounds a shared snapshot build, which outlives the request that started it.
	BuildTimeout time.Duration
	Logger       *logging.Logger
	Metrics      *metrics.Registry
	Now          func() time.Time
}

const defaultBuildTimeout = 30 * time.Second

type BoardService struct {
	provider OddsProvider
	location *time.Location
	snapshot *cache.Store[board.Board]
	timeout  time.Duration
	logger   *logging.Logger
	metrics  *metrics.Registry
	now      func() time.Time
}

func NewBoardService(provider OddsProvider, cfg BoardServiceConfig) *BoardService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	timeout := cfg.BuildTimeout
	if timeout <= 0 {
		timeout = defaultBuildTimeout
	}

	svc := &BoardService{
		provider: provider,
		location: location,
		timeout:  timeout,
		logger:   logger.Named("board"),
		metrics:  cfg.Metrics,
		now:      now,
	}
	if cfg.CacheTTL > 0 {
		svc.snapshot = cache.NewStore[board.Board](cfg.CacheTTL)
	}
	return svc
}

func (s *BoardService) Location() *time.Location {
	return s.location
}

// GetBoard returns the board for the current day. A fresh snapshot is reused; concurrent misses share one build.
func (s *BoardService) GetBoard(ctx context.Context) (board.Board, error) {
	ref := s.now()
	if s.snapshot == nil {
		return s.BuildBoard(ctx, ref)
	}

	today, _ := fixture.CalendarDates(ref, s.location)
	if cached, ok := s.snapshot.Get(ctx, today); ok {
		s.metrics.ObserveCache(true)
		return cached, nil
	}
	s.metrics.ObserveCache(false)

	// Every waiter shares this build, so it is detached from the first caller's cancellation.
	return s.snapshot.GetOrLoad(ctx, today, func(ctx context.Context) (board.Board, error) {
		buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.BuildBoard(buildCtx, ref)
	})
}

// GetBoardForDate builds the board whose "today" is date (YYYY-MM-DD) in the board timezone.
// The current day is served through GetBoard.
func (s *BoardService) GetBoardForDate(ctx context.Context, date string) (board.Board, error) {
	day, err := time.ParseInLocation(fixture.DateLayout, date, s.location)
	if err != nil {
		return board.Board{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if today, _ := fixture.CalendarDates(s.now(), s.location); today == date {
		return s.GetBoard(ctx)
	}
	return s.BuildBoard(ctx, day.Add(12*time.Hour))
}

// BuildBoard fetches both days' fixtures in parallel, then odds and results for all of them, and builds the view.
func (s *BoardService) BuildBoard(ctx context.Context, ref time.Time) (board.Board, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BoardService.BuildBoard")
	defer span.End()

	out, err := s.buildBoard(ctx, ref)
	s.metrics.ObserveBoardBuild(err, out.GameCount())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "build board failed", "error", err)
		return board.Board{}, err
	}

	span.SetAttributes(
		attribute.String("board.today", out.Today),
		attribute.Int("board.games", out.GameCount()),
	)
	s.logger.InfoContext(ctx, "board built", "today", out.Today, "tomorrow", out.Tomorrow, "games", out.GameCount())
	return out, nil
}

func (s *BoardService) buildBoard(ctx context.Context, ref time.Time) (board.Board, error) {
	today, tomorrow := fixture.CalendarDates(ref, s.location)
	fixtures, err := s.fetchFixtures(ctx, today, tomorrow)
	if err != nil {
		return board.Board{}, err
	}

	ids := make([]string, 0, len(fixtures))
	for _, item := range fixtures {
		ids = append(ids, item.ID)
	}

	oddsByFixture, err := s.provider.FetchOdds(ctx, ids)
	if err != nil {
		return board.Board{}, fmt.Errorf("fetch odds for %d fixtures: %w", len(ids), err)
	}
	resultsByFixture, err := s.provider.FetchResults(ctx, ids)
	if err != nil {
		return board.Board{}, fmt.Errorf("fetch results for %d fixtures: %w", len(ids), err)
	}

	return board.Build(fixtures, oddsByFixture, resultsByFixture, ref, s.location), nil
}

// fetchFixtures requests every date concurrently and concatenates the answers in date order.
func (s *BoardService) fetchFixtures(ctx context.Context, dates ...string) ([]fixture.Fixture, error) {
	perDate := make([][]fixture.Fixture, len(dates))

	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()
	for i, date := range dates {
		i, date := i, date
		p.Go(func(ctx context.Context) error {
			items, err := s.provider.FetchFixturesByDate(ctx, date)
			if err != nil {
				return fmt.Errorf("fetch fixtures for %s: %w", date, err)
			}
			perDate[i] = items
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, items := range perDate {
		total += len(items)
	}
	out := make([]fixture.Fixture, 0, total)
	for _, items := range perDate {
		out = append(out, items...)
	}
	return out, nil
}
