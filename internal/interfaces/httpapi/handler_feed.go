package httpapi

import (
	"net/http"
	"time"

	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

func (h *Handler) ListFeedMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFeedMatches")
	defer span.End()

	matches, err := h.feedService.Matches(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list feed matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]feedMatchDTO, 0, len(matches))
	for _, match := range matches {
		items = append(items, feedMatchToDTO(match))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type feedMatchDTO struct {
	MatchID   string `json:"match_id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	KickoffAt string `json:"kickoff_at,omitempty"`
	Status    string `json:"status"`
	HomeScore *int   `json:"home_score,omitempty"`
	AwayScore *int   `json:"away_score,omitempty"`
	Venue     string `json:"venue,omitempty"`
	Round     string `json:"round,omitempty"`
}

func feedMatchToDTO(v usecase.FeedMatch) feedMatchDTO {
	out := feedMatchDTO{
		MatchID:   v.MatchID,
		HomeTeam:  v.HomeTeam,
		AwayTeam:  v.AwayTeam,
		Status:    v.Status,
		HomeScore: v.HomeScore,
		AwayScore: v.AwayScore,
		Venue:     v.Venue,
		Round:     v.RoundLabel,
	}
	if !v.KickoffAt.IsZero() {
		out.KickoffAt = v.KickoffAt.UTC().Format(time.RFC3339)
	}
	return out
}
