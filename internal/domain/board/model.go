package board

import (
	"strings"
	"time"

	"github.com/riskibarqy/nba-odds-board/internal/domain/odds"
)

const (
	WinnerHome = "home"
	WinnerAway = "away"
	WinnerTie  = "tie"
)

const (
	TagToday    = "Today"
	TagTomorrow = "Tomorrow"
)

// Board is the date-grouped view of today's and tomorrow's games.
type Board struct {
	Today       string
	Tomorrow    string
	Timezone    string
	GeneratedAt time.Time
	Dates       []DateGroup
}

type DateGroup struct {
	Date  string
	Tag   string
	Games []GameView
}

type GameView struct {
	ID             string
	HomeTeam       string
	AwayTeam       string
	Status         string
	StatusLabel    string
	StartAt        time.Time
	StartTimeLocal string
	Moneyline      MarketView
	Spread         MarketView
	Total          MarketView
	Final          *FinalScore
	// FinalPending marks a completed game whose score has not been published yet.
	FinalPending bool
}

func (g GameView) HasOdds() bool {
	return len(g.Moneyline.Chips) > 0 || len(g.Spread.Chips) > 0 || len(g.Total.Chips) > 0
}

type MarketView struct {
	Chips []Chip
	// Favorite is the chip index with the highest implied probability, odds.NoFavorite when none.
	Favorite int
}

type Chip struct {
	Label              string
	Price              string
	Points             *float64
	Tone               odds.Tone
	ImpliedProbability *float64
}

type FinalScore struct {
	HomeScore float64
	AwayScore float64
	Winner    string
}

// WinnerName is the winning team's display name, "Home" or "Away" when the feed left it blank, empty on a tie.
func (g GameView) WinnerName() string {
	if g.Final == nil {
		return ""
	}
	switch g.Final.Winner {
	case WinnerHome:
		return firstNonBlank(g.HomeTeam, "Home")
	case WinnerAway:
		return firstNonBlank(g.AwayTeam, "Away")
	default:
		return ""
	}
}

func firstNonBlank(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func (b Board) Empty() bool {
	return len(b.Dates) == 0
}

// Games flattens the board back into one list, date by date.
func (b Board) Games() []GameView {
	out := make([]GameView, 0, b.GameCount())
	for _, group := range b.Dates {
		out = append(out, group.Games...)
	}
	return out
}

func (b Board) GameCount() int {
	total := 0
	for _, group := range b.Dates {
		total += len(group.Games)
	}
	return total
}
