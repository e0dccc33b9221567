package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/nba-odds-board/internal/domain/fixture"
	"github.com/riskibarqy/nba-odds-board/internal/domain/odds"
	"github.com/riskibarqy/nba-odds-board/internal/domain/result"
)

func mustStart(t *testing.T, raw string) time.Time {
	t.Helper()
	start, ok := fixture.ParseStart(raw)
	require.True(t, ok, raw)
	return start
}

func points(v float64) *float64 { return &v }

func TestBuild_CompletedGameWithOdds(t *testing.T) {
	t.Parallel()

	ref := time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC)
	fixtures := []fixture.Fixture{{
		ID:        "F1",
		HomeTeam:  "Lakers",
		AwayTeam:  "Celtics",
		StartAt:   mustStart(t, "2026-10-18T19:30:00Z"),
		RawStart:  "2026-10-18T19:30:00Z",
		Status:    fixture.StatusCompleted,
		RawStatus: "completed",
	}}
	quotes := map[string][]odds.Quote{
		"F1": {
			{FixtureID: "F1", Market: odds.MarketMoneyline, Name: "Celtics", Price: odds.NewPrice(120), IsMain: true},
			{FixtureID: "F1", Market: odds.MarketMoneyline, Name: "Lakers", Price: odds.NewPrice(-140), IsMain: true},
			{FixtureID: "F1", Market: odds.MarketMoneyline, Name: "Draw", Price: odds.Price{}, IsMain: true},
			{FixtureID: "F1", Market: odds.MarketMoneyline, Name: "Alt", Price: odds.NewPrice(-500), IsMain: false},
			{FixtureID: "F1", Market: odds.MarketTotalPoints, Name: "Over 221.5", Price: odds.NewPrice(-110), Points: points(221.5), IsMain: true},
			{FixtureID: "F1", Market: odds.MarketTotalPoints, Name: "Under 221.5", Price: odds.NewPrice(-110), Points: points(221.5), IsMain: true},
		},
	}
	results := map[string]result.Record{
		"F1": {"scores": map[string]any{
			"home": map[string]any{"total": 110.0},
			"away": map[string]any{"total": 105.0},
		}},
	}

	got := Build(fixtures, quotes, results, ref, time.UTC)

	assert.Equal(t, "2026-10-18", got.Today)
	assert.Equal(t, "2026-10-19", got.Tomorrow)
	require.Len(t, got.Dates, 1)
	assert.Equal(t, TagToday, got.Dates[0].Tag)
	require.Len(t, got.Dates[0].Games, 1)

	game := got.Dates[0].Games[0]
	require.NotNil(t, game.Final)
	assert.Equal(t, 110.0, game.Final.HomeScore)
	assert.Equal(t, 105.0, game.Final.AwayScore)
	assert.Equal(t, WinnerHome, game.Final.Winner)
	assert.Equal(t, "Lakers", game.WinnerName())
	assert.False(t, game.FinalPending)
	assert.Equal(t, "7:30 PM UTC", game.StartTimeLocal)

	require.Len(t, game.Moneyline.Chips, 3, "alternate lines are dropped")
	assert.Equal(t, 1, game.Moneyline.Favorite)
	assert.Equal(t, odds.ToneUnderdog, game.Moneyline.Chips[0].Tone)
	assert.Equal(t, odds.ToneFavorite, game.Moneyline.Chips[1].Tone)
	assert.Equal(t, "+120", game.Moneyline.Chips[0].Price)
	assert.Equal(t, "-140", game.Moneyline.Chips[1].Price)
	assert.Equal(t, "", game.Moneyline.Chips[2].Price, "missing price is passed through")
	assert.Nil(t, game.Moneyline.Chips[2].ImpliedProbability)

	require.Len(t, game.Total.Chips, 2)
	assert.Equal(t, odds.ToneFavorite, game.Total.Chips[0].Tone)
	assert.Equal(t, odds.ToneUnderdog, game.Total.Chips[1].Tone)
	assert.Equal(t, 221.5, *game.Total.Chips[0].Points)

	assert.Empty(t, game.Spread.Chips)
	assert.True(t, game.HasOdds())
}

func TestBuild_CompletedWithoutScoreIsPending(t *testing.T) {
	t.Parallel()

	ref := time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC)
	fixtures := []fixture.Fixture{{
		ID:       "F1",
		HomeTeam: "Heat",
		AwayTeam: "Knicks",
		StartAt:  mustStart(t, "2026-10-18T17:00:00Z"),
		Status:   fixture.StatusCompleted,
		Record:   map[string]any{"id": "F1"},
	}}

	got := Build(fixtures, nil, nil, ref, time.UTC)
	game := got.Games()[0]
	assert.Nil(t, game.Final)
	assert.True(t, game.FinalPending)
	assert.False(t, game.HasOdds())
}

func TestBuild_TieAndFixtureScoreFallback(t *testing.T) {
	t.Parallel()

	ref := time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC)
	fixtures := []fixture.Fixture{{
		ID:       "F1",
		HomeTeam: "Heat",
		AwayTeam: "Knicks",
		StartAt:  mustStart(t, "2026-10-18T17:00:00Z"),
		Status:   fixture.StatusCompleted,
		Record: map[string]any{"result": map[string]any{"scores": map[string]any{
			"home": map[string]any{"total": 99.0},
			"away": map[string]any{"total": 99.0},
		}}},
	}}

	game := Build(fixtures, nil, nil, ref, time.UTC).Games()[0]
	require.NotNil(t, game.Final)
	assert.Equal(t, WinnerTie, game.Final.Winner)
	assert.Equal(t, "", game.WinnerName())
}

func TestBuild_UnplayedGameIgnoresScores(t *testing.T) {
	t.Parallel()

	ref := time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC)
	fixtures := []fixture.Fixture{{
		ID:      "F1",
		StartAt: mustStart(t, "2026-10-18T23:00:00Z"),
		Status:  fixture.StatusUnplayed,
	}}
	results := map[string]result.Record{"F1": {"scores": map[string]any{
		"home": map[string]any{"total": 1.0},
		"away": map[string]any{"total": 2.0},
	}}}

	game := Build(fixtures, nil, results, ref, time.UTC).Games()[0]
	assert.Nil(t, game.Final)
	assert.False(t, game.FinalPending)
}

func TestBuild_NoValidPriceKeepsChipsNeutral(t *testing.T) {
	t.Parallel()

	ref := time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC)
	fixtures := []fixture.Fixture{{ID: "F1", StartAt: mustStart(t, "2026-10-18T23:00:00Z")}}
	quotes := map[string][]odds.Quote{"F1": {
		{Market: odds.MarketPointSpread, Name: "Heat -3.5", Price: odds.ParsePrice("n/a"), IsMain: true},
		{Market: odds.MarketPointSpread, Name: "Knicks +3.5", IsMain: true},
	}}

	game := Build(fixtures, quotes, nil, ref, time.UTC).Games()[0]
	assert.Equal(t, odds.NoFavorite, game.Spread.Favorite)
	for _, chip := range game.Spread.Chips {
		assert.Equal(t, odds.ToneNeutral, chip.Tone)
	}
	assert.Equal(t, "n/a", game.Spread.Chips[0].Price)
}

func TestBuild_GroupsByDateAndIgnoresOrphans(t *testing.T) {
	t.Parallel()

	ref := time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC)
	fixtures := []fixture.Fixture{
		{ID: "T1", StartAt: mustStart(t, "2026-10-19T01:00:00Z")},
		{ID: "A1", StartAt: mustStart(t, "2026-10-18T19:00:00Z")},
		{ID: "T2", StartAt: mustStart(t, "2026-10-19T02:00:00Z")},
		{ID: "A2", StartAt: mustStart(t, "2026-10-18T22:00:00Z")},
	}
	quotes := map[string][]odds.Quote{"ORPHAN": {{Market: odds.MarketMoneyline, IsMain: true, Price: odds.NewPrice(-110)}}}
	results := map[string]result.Record{"ORPHAN": {}}

	got := Build(fixtures, quotes, results, ref, time.UTC)
	require.Len(t, got.Dates, 2)
	assert.Equal(t, "2026-10-18", got.Dates[0].Date)
	assert.Equal(t, TagToday, got.Dates[0].Tag)
	assert.Equal(t, "2026-10-19", got.Dates[1].Date)
	assert.Equal(t, TagTomorrow, got.Dates[1].Tag)

	ids := func(games []GameView) []string {
		out := make([]string, 0, len(games))
		for _, g := range games {
			out = append(out, g.ID)
		}
		return out
	}
	assert.Equal(t, []string{"A1", "A2"}, ids(got.Dates[0].Games))
	assert.Equal(t, []string{"T1", "T2"}, ids(got.Dates[1].Games))

	flat := got.Games()
	assert.Len(t, flat, len(fixtures))
	assert.ElementsMatch(t, []string{"T1", "A1", "T2", "A2"}, ids(flat))
	assert.Equal(t, 4, got.GameCount())
}

func TestBuild_EmptyInput(t *testing.T) {
	t.Parallel()

	got := Build(nil, nil, nil, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), nil)
	assert.True(t, got.Empty())
	assert.Equal(t, "2026-10-18", got.Today)
	assert.NotNil(t, got.Dates)
}

func TestBuild_SameDayCompletedAndUpcomingInPacificTime(t *testing.T) {
	t.Parallel()

	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 2026-10-18 noon PDT.
	ref := time.Date(2026, 10, 18, 19, 0, 0, 0, time.UTC)
	fixtures := []fixture.Fixture{
		{
			ID:        "F1",
			HomeTeam:  "Lakers",
			AwayTeam:  "Celtics",
			StartAt:   mustStart(t, "2026-10-18T17:00:00Z"),
			RawStart:  "2026-10-18T17:00:00Z",
			Status:    fixture.StatusCompleted,
			RawStatus: "completed",
		},
		{
			ID:        "F2",
			HomeTeam:  "Heat",
			AwayTeam:  "Knicks",
			StartAt:   mustStart(t, "2026-10-19T02:30:00Z"),
			RawStart:  "2026-10-19T02:30:00Z",
			Status:    fixture.StatusUnplayed,
			RawStatus: "unplayed",
		},
	}
	quotes := map[string][]odds.Quote{
		"F2": {
			{FixtureID: "F2", Market: odds.MarketMoneyline, Name: "Knicks", Price: odds.NewPrice(120), IsMain: true},
			{FixtureID: "F2", Market: odds.MarketMoneyline, Name: "Heat", Price: odds.NewPrice(-140), IsMain: true},
			{FixtureID: "F2", Market: odds.MarketMoneyline, Name: "Draw", IsMain: true},
		},
	}
	results := map[string]result.Record{
		"F1": {"scores": map[string]any{
			"home": map[string]any{"total": 110.0},
			"away": map[string]any{"total": 105.0},
		}},
	}

	got := Build(fixtures, quotes, results, ref, la)

	assert.Equal(t, "2026-10-18", got.Today)
	require.Len(t, got.Dates, 1, "both games start on 2026-10-18 Pacific time")
	assert.Equal(t, "2026-10-18", got.Dates[0].Date)
	assert.Equal(t, TagToday, got.Dates[0].Tag)
	require.Len(t, got.Dates[0].Games, 2)

	completed := got.Dates[0].Games[0]
	assert.Equal(t, "F1", completed.ID)
	require.NotNil(t, completed.Final)
	assert.Equal(t, WinnerHome, completed.Final.Winner)
	assert.Equal(t, "10:00 AM PDT", completed.StartTimeLocal)

	upcoming := got.Dates[0].Games[1]
	assert.Equal(t, "F2", upcoming.ID)
	assert.Nil(t, upcoming.Final)
	assert.False(t, upcoming.FinalPending)
	assert.Equal(t, "7:30 PM PDT", upcoming.StartTimeLocal)
	require.Len(t, upcoming.Moneyline.Chips, 3)
	assert.Equal(t, 1, upcoming.Moneyline.Favorite)
	assert.Equal(t, "-140", upcoming.Moneyline.Chips[1].Price)
	assert.Equal(t, "", upcoming.Moneyline.Chips[2].Price)
	assert.Nil(t, upcoming.Moneyline.Chips[2].ImpliedProbability)
	assert.Equal(t, odds.ToneUnderdog, upcoming.Moneyline.Chips[2].Tone)
}

func TestBuild_DateOnlyStartStaysOnItsDay(t *testing.T) {
	t.Parallel()

	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	ref := time.Date(2026, 10, 18, 19, 0, 0, 0, time.UTC)
	fixtures := []fixture.Fixture{{ID: "F1", RawStart: "2026-10-18", Status: fixture.StatusUnplayed}}

	got := Build(fixtures, nil, nil, ref, la)
	require.Len(t, got.Dates, 1)
	assert.Equal(t, "2026-10-18", got.Dates[0].Date)
	assert.Equal(t, TagToday, got.Dates[0].Tag)

	game := got.Dates[0].Games[0]
	assert.Empty(t, game.StartTimeLocal, "a bare date has no start time to show")
	assert.True(t, game.StartAt.IsZero())
}

func TestGameView_WinnerNameFallsBackToSide(t *testing.T) {
	t.Parallel()

	home := GameView{Final: &FinalScore{HomeScore: 101, AwayScore: 99, Winner: WinnerHome}}
	assert.Equal(t, "Home", home.WinnerName())

	away := GameView{AwayTeam: "Knicks", Final: &FinalScore{HomeScore: 90, AwayScore: 99, Winner: WinnerAway}}
	assert.Equal(t, "Knicks", away.WinnerName())

	tie := GameView{Final: &FinalScore{HomeScore: 99, AwayScore: 99, Winner: WinnerTie}}
	assert.Empty(t, tie.WinnerName())
}
