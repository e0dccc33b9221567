package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/nba-odds-board/internal/domain/board"
)

type boardQuery struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetBoardPage renders the HTML board. Any failure collapses into one generic message.
func (h *Handler) GetBoardPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBoardPage")
	defer span.End()

	out, err := h.boardService.GetBoard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get board failed", "error", err)
		writeBoardFailure(w)
		return
	}

	if err := h.renderBoardPage(ctx, w, out); err != nil {
		h.logger.ErrorContext(ctx, "render board page failed", "error", err)
		writeBoardFailure(w)
	}
}

// GetBoard serves the board as JSON; ?date=YYYY-MM-DD shifts the reference day.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBoard")
	defer span.End()

	query := boardQuery{Date: strings.TrimSpace(r.URL.Query().Get("date"))}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	var (
		out board.Board
		err error
	)
	if query.Date == "" {
		out, err = h.boardService.GetBoard(ctx)
	} else {
		out, err = h.boardService.GetBoardForDate(ctx, query.Date)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "get board failed", "date", query.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toBoardDTO(out))
}
