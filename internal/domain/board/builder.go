package board

import (
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/nba-odds-board/internal/domain/fixture"
	"github.com/riskibarqy/nba-odds-board/internal/domain/odds"
	"github.com/riskibarqy/nba-odds-board/internal/domain/result"
)

const startTimeLayout = "3:04 PM MST"

// Build merges fixtures with their odds and results into a board grouped by local calendar date.
// Odds and results keyed by fixtures outside the list are ignored.
func Build(
	fixtures []fixture.Fixture,
	oddsByFixture map[string][]odds.Quote,
	resultsByFixture map[string]result.Record,
	ref time.Time,
	loc *time.Location,
) Board {
	if loc == nil {
		loc = time.UTC
	}
	today, tomorrow := fixture.CalendarDates(ref, loc)

	out := Board{
		Today:       today,
		Tomorrow:    tomorrow,
		Timezone:    loc.String(),
		GeneratedAt: ref.In(loc),
		Dates:       []DateGroup{},
	}

	indexByDate := make(map[string]int, 2)
	for _, item := range fixtures {
		date := item.LocalDate(loc)
		idx, ok := indexByDate[date]
		if !ok {
			idx = len(out.Dates)
			indexByDate[date] = idx
			out.Dates = append(out.Dates, DateGroup{Date: date, Tag: dateTag(date, today, tomorrow)})
		}
		view := buildGame(item, oddsByFixture[item.ID], resultsByFixture[item.ID], loc)
		out.Dates[idx].Games = append(out.Dates[idx].Games, view)
	}

	sort.SliceStable(out.Dates, func(i, j int) bool {
		return out.Dates[i].Date < out.Dates[j].Date
	})

	return out
}

func dateTag(date, today, tomorrow string) string {
	switch date {
	case today:
		return TagToday
	case tomorrow:
		return TagTomorrow
	default:
		return ""
	}
}

func buildGame(item fixture.Fixture, quotes []odds.Quote, res result.Record, loc *time.Location) GameView {
	view := GameView{
		ID:          item.ID,
		HomeTeam:    item.HomeTeam,
		AwayTeam:    item.AwayTeam,
		Status:      item.Status,
		StatusLabel: statusLabel(item),
		Moneyline:   rankedMarket(odds.MainLines(quotes, odds.MarketMoneyline), odds.Quote.Label),
		Spread:      rankedMarket(odds.MainLines(quotes, odds.MarketPointSpread), quoteName),
		Total:       totalsMarket(odds.MainLines(quotes, odds.MarketTotalPoints)),
	}
	if start, ok := item.Start(loc); ok {
		view.StartAt = start
		view.StartTimeLocal = start.In(loc).Format(startTimeLayout)
	}

	if item.IsCompleted() {
		score := result.ExtractScore(item.Record, res)
		if score.OK {
			view.Final = &FinalScore{
				HomeScore: score.Home,
				AwayScore: score.Away,
				Winner:    winner(score),
			}
		} else {
			view.FinalPending = true
		}
	}

	return view
}

func statusLabel(item fixture.Fixture) string {
	if raw := strings.TrimSpace(item.RawStatus); raw != "" {
		return raw
	}
	return item.Status
}

func winner(score result.Score) string {
	switch {
	case score.Home > score.Away:
		return WinnerHome
	case score.Away > score.Home:
		return WinnerAway
	default:
		return WinnerTie
	}
}

func quoteName(q odds.Quote) string {
	if name := strings.TrimSpace(q.Name); name != "" {
		return name
	}
	return q.Label()
}

// rankedMarket styles the favorite chip as favorable and the rest as underdogs.
// Without any valid price every chip stays neutral.
func rankedMarket(quotes []odds.Quote, label func(odds.Quote) string) MarketView {
	favorite := odds.FavoriteIndex(quotes)
	market := MarketView{Chips: make([]Chip, 0, len(quotes)), Favorite: favorite}
	for i, q := range quotes {
		tone := odds.ToneUnderdog
		switch {
		case favorite == odds.NoFavorite:
			tone = odds.ToneNeutral
		case i == favorite:
			tone = odds.ToneFavorite
		}
		market.Chips = append(market.Chips, newChip(q, label(q), tone))
	}
	return market
}

func totalsMarket(quotes []odds.Quote) MarketView {
	market := MarketView{Chips: make([]Chip, 0, len(quotes)), Favorite: odds.NoFavorite}
	for _, q := range quotes {
		name := quoteName(q)
		market.Chips = append(market.Chips, newChip(q, name, odds.TotalTone(name)))
	}
	return market
}

func newChip(q odds.Quote, label string, tone odds.Tone) Chip {
	chip := Chip{
		Label:  label,
		Price:  odds.FormatAmerican(q.Price),
		Points: q.Points,
		Tone:   tone,
	}
	if prob, ok := q.Price.ImpliedProbability(); ok {
		chip.ImpliedProbability = &prob
	}
	return chip
}
