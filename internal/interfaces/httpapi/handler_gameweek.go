package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/matchdayhq/fantasy-companion/internal/domain/gameweek"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

func (h *Handler) ListGameweeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameweeks")
	defer span.End()

	gameweeks, err := h.gameweekService.ListGameweeks(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list gameweeks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameweekDTO, 0, len(gameweeks))
	for _, gw := range gameweeks {
		items = append(items, gameweekToDTO(gw))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCurrentGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentGameweek")
	defer span.End()

	gw, err := h.gameweekService.CurrentGameweek(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get current gameweek failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(gw))
}

func (h *Handler) CreateGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateGameweek")
	defer span.End()

	req, err := h.decodeGameweekRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gw, err := req.toGameweek("")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.gameweekService.CreateGameweek(ctx, gw)
	if err != nil {
		h.logger.WarnContext(ctx, "create gameweek failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameweekToDTO(created))
}

func (h *Handler) UpdateGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateGameweek")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))

	req, err := h.decodeGameweekRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gw, err := req.toGameweek(gameweekID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.gameweekService.UpdateGameweek(ctx, gw)
	if err != nil {
		h.logger.WarnContext(ctx, "update gameweek failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(updated))
}

func (h *Handler) CompleteGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteGameweek")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	if err := h.gameweekService.SetCompleted(ctx, gameweekID, true); err != nil {
		h.logger.WarnContext(ctx, "complete gameweek failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"id":           gameweekID,
		"is_completed": true,
	})
}

func (h *Handler) decodeGameweekRequest(r *http.Request) (gameweekUpsertRequest, error) {
	var req gameweekUpsertRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return req, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validateRequest(r.Context(), req); err != nil {
		return req, err
	}
	return req, nil
}

type gameweekUpsertRequest struct {
	RoundNumber int    `json:"round_number" validate:"required,gte=1"`
	RoundName   string `json:"round_name" validate:"required,max=120"`
	MatchDate   string `json:"match_date" validate:"required"`
	DeadlineAt  string `json:"deadline_at" validate:"required"`
	IsCompleted bool   `json:"is_completed"`
}

func (req gameweekUpsertRequest) toGameweek(id string) (gameweek.Gameweek, error) {
	matchDate, err := time.Parse(time.RFC3339, strings.TrimSpace(req.MatchDate))
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("%w: match_date must be RFC 3339: %v", usecase.ErrInvalidInput, err)
	}
	deadlineAt, err := time.Parse(time.RFC3339, strings.TrimSpace(req.DeadlineAt))
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("%w: deadline_at must be RFC 3339: %v", usecase.ErrInvalidInput, err)
	}

	return gameweek.Gameweek{
		ID:          id,
		RoundNumber: req.RoundNumber,
		RoundName:   strings.TrimSpace(req.RoundName),
		MatchDate:   matchDate.UTC(),
		DeadlineAt:  deadlineAt.UTC(),
		IsCompleted: req.IsCompleted,
	}, nil
}

type gameweekDTO struct {
	ID          string `json:"id"`
	RoundNumber int    `json:"round_number"`
	RoundName   string `json:"round_name"`
	MatchDate   string `json:"match_date"`
	DeadlineAt  string `json:"deadline_at"`
	IsCompleted bool   `json:"is_completed"`
}

func gameweekToDTO(v gameweek.Gameweek) gameweekDTO {
	return gameweekDTO{
		ID:          v.ID,
		RoundNumber: v.RoundNumber,
		RoundName:   v.RoundName,
		MatchDate:   v.MatchDate.UTC().Format(time.RFC3339),
		DeadlineAt:  v.DeadlineAt.UTC().Format(time.RFC3339),
		IsCompleted: v.IsCompleted,
	}
}
