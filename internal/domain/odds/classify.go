package odds

import (
	"strconv"
	"strings"
)

// NoFavorite is returned by FavoriteIndex when no quote carries a usable price.
const NoFavorite = -1

type Tone string

const (
	ToneFavorite Tone = "favorite"
	ToneUnderdog Tone = "underdog"
	ToneNeutral  Tone = "neutral"
)

// ImpliedProbability converts an American price into the break-even probability, ignoring the book margin.
// Zero prices are invalid.
func ImpliedProbability(price float64) (float64, bool) {
	switch {
	case !isFinite(price) || price == 0:
		return 0, false
	case price > 0:
		return 100 / (price + 100), true
	default:
		return -price / (-price + 100), true
	}
}

func (p Price) ImpliedProbability() (float64, bool) {
	if !p.Valid {
		return 0, false
	}
	return ImpliedProbability(p.Value)
}

// FavoriteIndex returns the index of the quote with the highest implied probability.
// The earliest quote wins a tie; quotes without a valid price never win.
func FavoriteIndex(quotes []Quote) int {
	best := NoFavorite
	bestProb := 0.0
	for i, q := range quotes {
		prob, ok := q.Price.ImpliedProbability()
		if !ok {
			continue
		}
		if best == NoFavorite || prob > bestProb {
			best = i
			bestProb = prob
		}
	}
	return best
}

// TotalTone styles totals by selection name: over is favorable, under is not.
func TotalTone(name string) Tone {
	lower := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.HasPrefix(lower, "over"):
		return ToneFavorite
	case strings.HasPrefix(lower, "under"):
		return ToneUnderdog
	default:
		return ToneNeutral
	}
}

// FormatAmerican renders a price with an explicit plus sign for underdogs.
func FormatAmerican(p Price) string {
	if !p.Valid {
		return p.Raw
	}
	text := strconv.FormatFloat(p.Value, 'f', -1, 64)
	if p.Value > 0 {
		return "+" + text
	}
	return text
}
