package httpapi

import (
	"time"

	"github.com/riskibarqy/nba-odds-board/internal/domain/board"
	"github.com/riskibarqy/nba-odds-board/internal/domain/odds"
)

type boardDTO struct {
	Today       string         `json:"today"`
	Tomorrow    string         `json:"tomorrow"`
	Timezone    string         `json:"timezone"`
	GeneratedAt time.Time      `json:"generated_at"`
	Dates       []dateGroupDTO `json:"dates"`
}

type dateGroupDTO struct {
	Date  string    `json:"date"`
	Tag   string    `json:"tag,omitempty"`
	Games []gameDTO `json:"games"`
}

type gameDTO struct {
	ID             string         `json:"id"`
	HomeTeam       string         `json:"home_team"`
	AwayTeam       string         `json:"away_team"`
	Status         string         `json:"status"`
	StatusLabel    string         `json:"status_label"`
	StartAt        *time.Time     `json:"start_at,omitempty"`
	StartTimeLocal string         `json:"start_time_local,omitempty"`
	Moneyline      marketDTO      `json:"moneyline"`
	Spread         marketDTO      `json:"spread"`
	Total          marketDTO      `json:"total"`
	Final          *finalScoreDTO `json:"final,omitempty"`
	FinalPending   bool           `json:"final_pending"`
	HasOdds        bool           `json:"has_odds"`
}

type marketDTO struct {
	Favorite *int      `json:"favorite"`
	Chips    []chipDTO `json:"chips"`
}

type chipDTO struct {
	Label              string   `json:"label"`
	Price              string   `json:"price"`
	Points             *float64 `json:"points,omitempty"`
	Tone               string   `json:"tone"`
	ImpliedProbability *float64 `json:"implied_probability,omitempty"`
}

type finalScoreDTO struct {
	HomeScore float64 `json:"home_score"`
	AwayScore float64 `json:"away_score"`
	Winner    string  `json:"winner"`
}

func toBoardDTO(in board.Board) boardDTO {
	out := boardDTO{
		Today:       in.Today,
		Tomorrow:    in.Tomorrow,
		Timezone:    in.Timezone,
		GeneratedAt: in.GeneratedAt,
		Dates:       make([]dateGroupDTO, 0, len(in.Dates)),
	}
	for _, group := range in.Dates {
		games := make([]gameDTO, 0, len(group.Games))
		for _, game := range group.Games {
			games = append(games, toGameDTO(game))
		}
		out.Dates = append(out.Dates, dateGroupDTO{Date: group.Date, Tag: group.Tag, Games: games})
	}
	return out
}

func toGameDTO(in board.GameView) gameDTO {
	out := gameDTO{
		ID:             in.ID,
		HomeTeam:       in.HomeTeam,
		AwayTeam:       in.AwayTeam,
		Status:         in.Status,
		StatusLabel:    in.StatusLabel,
		StartTimeLocal: in.StartTimeLocal,
		Moneyline:      toMarketDTO(in.Moneyline),
		Spread:         toMarketDTO(in.Spread),
		Total:          toMarketDTO(in.Total),
		FinalPending:   in.FinalPending,
		HasOdds:        in.HasOdds(),
	}
	if !in.StartAt.IsZero() {
		start := in.StartAt
		out.StartAt = &start
	}
	if in.Final != nil {
		out.Final = &finalScoreDTO{
			HomeScore: in.Final.HomeScore,
			AwayScore: in.Final.AwayScore,
			Winner:    in.Final.Winner,
		}
	}
	return out
}

func toMarketDTO(in board.MarketView) marketDTO {
	out := marketDTO{Chips: make([]chipDTO, 0, len(in.Chips))}
	if in.Favorite != odds.NoFavorite {
		favorite := in.Favorite
		out.Favorite = &favorite
	}
	for _, chip := range in.Chips {
		out.Chips = append(out.Chips, chipDTO{
			Label:              chip.Label,
			Price:              chip.Price,
			Points:             chip.Points,
			Tone:               string(chip.Tone),
			ImpliedProbability: chip.ImpliedProbability,
		})
	}
	return out
}
