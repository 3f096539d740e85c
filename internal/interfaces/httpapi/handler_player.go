package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/matchdayhq/fantasy-companion/internal/domain/player"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.playerService.ListPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req playerUpsertRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.playerService.CreatePlayer(ctx, player.Player{
		Name:     strings.TrimSpace(req.Name),
		Position: strings.TrimSpace(req.Position),
		Price:    player.PriceFromMillions(req.PriceMillions),
		ImageURL: strings.TrimSpace(req.ImageURL),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(created))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))

	var req playerUpsertRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.playerService.UpdatePlayer(ctx, player.Player{
		ID:       playerID,
		Name:     strings.TrimSpace(req.Name),
		Position: strings.TrimSpace(req.Position),
		Price:    player.PriceFromMillions(req.PriceMillions),
		ImageURL: strings.TrimSpace(req.ImageURL),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(updated))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	if err := h.playerService.DeletePlayer(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"id": playerID})
}

type playerUpsertRequest struct {
	Name          string  `json:"name" validate:"required,max=120"`
	Position      string  `json:"position" validate:"required,max=40"`
	PriceMillions float64 `json:"price_millions" validate:"gte=0"`
	ImageURL      string  `json:"image_url" validate:"omitempty,url"`
}

type playerDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Position      string  `json:"position"`
	PriceMillions float64 `json:"price_millions"`
	ImageURL      string  `json:"image_url,omitempty"`
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:            v.ID,
		Name:          v.Name,
		Position:      v.Position,
		PriceMillions: player.PriceToMillions(v.Price),
		ImageURL:      v.ImageURL,
	}
}
