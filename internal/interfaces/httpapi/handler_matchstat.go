package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/matchdayhq/fantasy-companion/internal/domain/matchstat"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

// EnterMatchStats replaces the gameweek's stat set and returns the
// freshly recomputed scores.
func (h *Handler) EnterMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EnterMatchStats")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))

	var req matchStatsRequest
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

	stats := make([]matchstat.Stat, 0, len(req.Stats))
	for _, row := range req.Stats {
		stats = append(stats, matchstat.Stat{
			GameweekID:  gameweekID,
			PlayerID:    strings.TrimSpace(row.PlayerID),
			Played:      row.Played,
			Goals:       row.Goals,
			Assists:     row.Assists,
			YellowCards: row.YellowCards,
			RedCards:    row.RedCards,
		})
	}

	scores, err := h.matchStatService.EnterStats(ctx, gameweekID, stats)
	if err != nil {
		h.logger.WarnContext(ctx, "enter match stats failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scoreDTO, 0, len(scores))
	for _, score := range scores {
		items = append(items, scoreToDTO(score))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchStats")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	stats, err := h.matchStatService.GameweekStats(ctx, gameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match stats failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchStatDTO, 0, len(stats))
	for _, stat := range stats {
		items = append(items, matchStatDTO{
			PlayerID:    stat.PlayerID,
			Played:      stat.Played,
			Goals:       stat.Goals,
			Assists:     stat.Assists,
			YellowCards: stat.YellowCards,
			RedCards:    stat.RedCards,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type matchStatsRequest struct {
	Stats []matchStatRow `json:"stats" validate:"required,min=1,dive"`
}

type matchStatRow struct {
	PlayerID    string `json:"player_id" validate:"required"`
	Played      bool   `json:"played"`
	Goals       int    `json:"goals" validate:"gte=0"`
	Assists     int    `json:"assists" validate:"gte=0"`
	YellowCards int    `json:"yellow_cards" validate:"gte=0"`
	RedCards    int    `json:"red_cards" validate:"gte=0"`
}

type matchStatDTO struct {
	PlayerID    string `json:"player_id"`
	Played      bool   `json:"played"`
	Goals       int    `json:"goals"`
	Assists     int    `json:"assists"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
}
