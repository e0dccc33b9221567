package odds

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

const (
	MarketMoneyline   = "Moneyline"
	MarketPointSpread = "Point Spread"
	MarketTotalPoints = "Total Points"
)

// Quote is one sportsbook price for a selection of a market.
type Quote struct {
	ID         string   `json:"id"`
	FixtureID  string   `json:"fixture_id"`
	Sportsbook string   `json:"sportsbook"`
	Market     string   `json:"market"`
	Name       string   `json:"name"`
	Selection  string   `json:"selection"`
	Price      Price    `json:"price"`
	Points     *float64 `json:"points"`
	IsMain     bool     `json:"is_main"`
}

// Label is the chip text: selection when present, else the quote name.
func (q Quote) Label() string {
	if s := strings.TrimSpace(q.Selection); s != "" {
		return s
	}
	return strings.TrimSpace(q.Name)
}

// Price is an American odds price as sent by the provider. The raw text survives
// even when it is not a usable number.
type Price struct {
	Raw   string
	Value float64
	Valid bool
}

func NewPrice(v float64) Price {
	return Price{Raw: strconv.FormatFloat(v, 'f', -1, 64), Value: v, Valid: isFinite(v)}
}

func ParsePrice(raw string) Price {
	p := Price{Raw: raw}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err == nil && isFinite(v) {
		p.Value = v
		p.Valid = true
	}
	return p
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*p = Price{}
	case data[0] == '"':
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			*p = Price{Raw: string(data)}
			return nil
		}
		*p = ParsePrice(s)
	default:
		*p = ParsePrice(string(data))
	}
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.Valid {
		return []byte(strconv.FormatFloat(p.Value, 'f', -1, 64)), nil
	}
	if p.Raw == "" {
		return []byte("null"), nil
	}
	return sonic.Marshal(p.Raw)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MainLines keeps the main-line quotes of market in their original order.
func MainLines(quotes []Quote, market string) []Quote {
	out := make([]Quote, 0, 2)
	for _, q := range quotes {
		if q.IsMain && q.Market == market {
			out = append(out, q)
		}
	}
	return out
}
