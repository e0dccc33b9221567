package httpapi

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/nba-odds-board/internal/domain/board"
	"github.com/riskibarqy/nba-odds-board/internal/domain/fixture"
	"github.com/riskibarqy/nba-odds-board/internal/domain/odds"
)

const (
	defaultPageTitle    = "NBA Schedule (Today & Tomorrow)"
	boardFailureMessage = "Error fetching NBA data."
	lastUpdatedLayout   = "1/2/2006, 3:04:05 PM"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var boardPageTemplate = template.Must(
	template.New("board.html.tmpl").Funcs(template.FuncMap{
		"score":       formatScore,
		"statusClass": statusClass,
		"toneClass":   toneClass,
		"marketRow":   newMarketRow,
	}).ParseFS(templateFS, "templates/board.html.tmpl"),
)

type boardPage struct {
	Title          string
	RefreshSeconds int
	LastUpdated    string
	Zone           string
	Board          board.Board
}

func (h *Handler) renderBoardPage(ctx context.Context, w http.ResponseWriter, out board.Board) error {
	_, span := startSpan(ctx, "httpapi.renderBoardPage")
	defer span.End()

	generated := out.GeneratedAt
	if generated.IsZero() {
		generated = time.Now().In(h.boardService.Location())
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	err := boardPageTemplate.Execute(buf, boardPage{
		Title:          h.page.Title,
		RefreshSeconds: int(h.page.RefreshInterval / time.Second),
		LastUpdated:    generated.Format(lastUpdatedLayout),
		Zone:           generated.Format("MST"),
		Board:          out,
	})
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err = buf.WriteTo(w)
	return err
}

type marketRow struct {
	Label  string
	Market board.MarketView
}

func newMarketRow(label string, market board.MarketView) marketRow {
	return marketRow{Label: label, Market: market}
}

func writeBoardFailure(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(boardFailureMessage))
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func statusClass(status string) string {
	switch status {
	case fixture.StatusLive:
		return "status-live"
	case fixture.StatusCompleted:
		return "status-completed"
	default:
		return "status-unplayed"
	}
}

func toneClass(tone odds.Tone) string {
	switch tone {
	case odds.ToneFavorite:
		return "odds-chip-fav"
	case odds.ToneUnderdog:
		return "odds-chip-dog"
	default:
		return ""
	}
}
