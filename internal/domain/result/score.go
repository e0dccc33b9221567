package result

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record is a results payload as decoded from the provider. Its nesting varies between responses.
type Record map[string]any

// FixtureID resolves the fixture a result belongs to: fixture.id first, then id.
func (r Record) FixtureID() (string, bool) {
	if nested, ok := asObject(r["fixture"]); ok {
		if id := idString(nested["id"]); id != "" {
			return id, true
		}
	}
	if id := idString(r["id"]); id != "" {
		return id, true
	}
	return "", false
}

// Score is a resolved final score. OK is false when no candidate carried both totals.
type Score struct {
	Home float64
	Away float64
	OK   bool
}

// Strategy picks one candidate object out of the fixture and result records.
type Strategy struct {
	Name    string
	Extract func(fixture, result map[string]any) (map[string]any, bool)
}

// ScoreStrategies lists where scores may live, highest priority first.
var ScoreStrategies = []Strategy{
	{Name: "result", Extract: func(_, r map[string]any) (map[string]any, bool) { return r, r != nil }},
	{Name: "result.fixture", Extract: func(_, r map[string]any) (map[string]any, bool) { return dig(r, "fixture") }},
	{Name: "result.result", Extract: func(_, r map[string]any) (map[string]any, bool) { return dig(r, "result") }},
	{Name: "result.fixture.result", Extract: func(_, r map[string]any) (map[string]any, bool) { return dig(r, "fixture", "result") }},
	{Name: "fixture", Extract: func(f, _ map[string]any) (map[string]any, bool) { return f, f != nil }},
	{Name: "fixture.result", Extract: func(f, _ map[string]any) (map[string]any, bool) { return dig(f, "result") }},
}

// ExtractScore walks ScoreStrategies in order and returns the first candidate exposing
// numeric scores.home.total and scores.away.total.
func ExtractScore(fixture map[string]any, result Record) Score {
	score, _ := ExtractScoreWith(ScoreStrategies, fixture, result)
	return score
}

// ExtractScoreWith is ExtractScore over an explicit chain; it also reports which strategy matched.
func ExtractScoreWith(chain []Strategy, fixture map[string]any, result Record) (Score, string) {
	for _, strategy := range chain {
		candidate, ok := strategy.Extract(fixture, result)
		if !ok {
			continue
		}
		home, okHome := totalOf(candidate, "home")
		away, okAway := totalOf(candidate, "away")
		if okHome && okAway {
			return Score{Home: home, Away: away, OK: true}, strategy.Name
		}
	}
	return Score{}, ""
}

func totalOf(candidate map[string]any, side string) (float64, bool) {
	node, ok := dig(candidate, "scores", side)
	if !ok {
		return 0, false
	}
	return asNumber(node["total"])
}

func dig(root map[string]any, path ...string) (map[string]any, bool) {
	current := root
	for _, key := range path {
		if current == nil {
			return nil, false
		}
		next, ok := asObject(current[key])
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, current != nil
}

func asObject(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, typed != nil
	case Record:
		return typed, typed != nil
	default:
		return nil, false
	}
}

// asNumber accepts JSON numbers only; numeric strings are not scores.
func asNumber(value any) (float64, bool) {
	var out float64
	switch typed := value.(type) {
	case float64:
		out = typed
	case float32:
		out = float64(typed)
	case int:
		out = float64(typed)
	case int64:
		out = float64(typed)
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		out = parsed
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}

func idString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case json.Number:
		return typed.String()
	case float64:
		if typed == math.Trunc(typed) && !math.IsInf(typed, 0) {
			return strconv.FormatFloat(typed, 'f', -1, 64)
		}
	}
	return ""
}
