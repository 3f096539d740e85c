package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/matchdayhq/fantasy-companion/internal/platform/logging"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

type Handler struct {
	pickService      *usecase.PickService
	scoringService   *usecase.ScoringService
	matchStatService *usecase.MatchStatService
	playerService    *usecase.PlayerService
	gameweekService  *usecase.GameweekService
	feedService      *usecase.FeedService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	pickService *usecase.PickService,
	scoringService *usecase.ScoringService,
	matchStatService *usecase.MatchStatService,
	playerService *usecase.PlayerService,
	gameweekService *usecase.GameweekService,
	feedService *usecase.FeedService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		pickService:      pickService,
		scoringService:   scoringService,
		matchStatService: matchStatService,
		playerService:    playerService,
		gameweekService:  gameweekService,
		feedService:      feedService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
