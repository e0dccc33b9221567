package httpapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/nba-odds-board/internal/platform/logging"
	"github.com/riskibarqy/nba-odds-board/internal/usecase"
)

type PageConfig struct {
	Title           string
	RefreshInterval time.Duration
}

type Handler struct {
	boardService *usecase.BoardService
	page         PageConfig
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(boardService *usecase.BoardService, page PageConfig, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if page.Title == "" {
		page.Title = defaultPageTitle
	}
	if page.RefreshInterval <= 0 {
		page.RefreshInterval = 30 * time.Second
	}

	return &Handler{
		boardService: boardService,
		page:         page,
		logger:       logger,
		validator:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
