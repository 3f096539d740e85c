package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/matchdayhq/fantasy-companion/internal/domain/scoring"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

// GetLeaderboard serves the gameweek board when gameweek_id is given and
// the season-long board otherwise.
func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	gameweekID := strings.TrimSpace(r.URL.Query().Get("gameweek_id"))

	var (
		entries []usecase.LeaderboardEntry
		err     error
	)
	if gameweekID == "" {
		entries, err = h.scoringService.OverallLeaderboard(ctx)
	} else {
		entries, err = h.scoringService.GameweekLeaderboard(ctx, gameweekID)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "get leaderboard failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, leaderboardEntryDTO{
			Rank:      entry.Rank,
			ProfileID: entry.ProfileID,
			Username:  entry.Username,
			TeamName:  entry.TeamName,
			Points:    entry.Points,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMyScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyScores")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	scores, err := h.scoringService.ProfileScores(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get scores failed", "profile_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scoreDTO, 0, len(scores))
	for _, score := range scores {
		items = append(items, scoreToDTO(score))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) CalculateGameweekPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CalculateGameweekPoints")
	defer span.End()

	gameweekID := strings.TrimSpace(r.PathValue("gameweekID"))
	scores, err := h.scoringService.RecalculateGameweek(ctx, gameweekID)
	if err != nil {
		h.logger.ErrorContext(ctx, "calculate points failed", "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scoreDTO, 0, len(scores))
	for _, score := range scores {
		items = append(items, scoreToDTO(score))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RecalculateAllPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecalculateAllPoints")
	defer span.End()

	recalculated, err := h.scoringService.RecalculateAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "recalculate all failed", "recalculated", recalculated, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"gameweeks_recalculated": recalculated})
}

type leaderboardEntryDTO struct {
	Rank      int    `json:"rank"`
	ProfileID string `json:"profile_id"`
	Username  string `json:"username"`
	TeamName  string `json:"team_name"`
	Points    int    `json:"points"`
}

type scoreDTO struct {
	ProfileID    string `json:"profile_id"`
	GameweekID   string `json:"gameweek_id"`
	SlotPoints   []int  `json:"slot_points"`
	CaptainBonus int    `json:"captain_bonus"`
	TotalPoints  int    `json:"total_points"`
	CalculatedAt string `json:"calculated_at"`
}

func scoreToDTO(v scoring.Score) scoreDTO {
	return scoreDTO{
		ProfileID:    v.ProfileID,
		GameweekID:   v.GameweekID,
		SlotPoints:   v.SlotPoints[:],
		CaptainBonus: v.CaptainBonus,
		TotalPoints:  v.TotalPoints,
		CalculatedAt: v.CalculatedAt.UTC().Format(time.RFC3339),
	}
}
