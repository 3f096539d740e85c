package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/matchdayhq/fantasy-companion/internal/domain/fantasy"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

func (h *Handler) GetMyPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	gameweekID := strings.TrimSpace(r.URL.Query().Get("gameweek_id"))
	pick, err := h.pickService.GetRoster(ctx, principal.UserID, gameweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get pick failed", "profile_id", principal.UserID, "gameweek_id", gameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickToDTO(pick))
}

func (h *Handler) SaveMyPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMyPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	req, err := h.decodePickRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	pick, err := h.pickService.SaveRoster(ctx, principal.UserID, req.GameweekID, req.PlayerIDs, req.CaptainID)
	if err != nil {
		h.logger.WarnContext(ctx, "save pick failed",
			"profile_id", principal.UserID,
			"gameweek_id", req.GameweekID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickToDTO(pick))
}

// ValidateMyPick dry-runs the submission rules. A rule rejection is a
// 200 with accepted=false and the rejection reason, not an error.
func (h *Handler) ValidateMyPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateMyPick")
	defer span.End()

	if _, ok := principalFromContext(ctx); !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	req, err := h.decodePickRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	decision, err := h.pickService.ValidateRoster(ctx, req.GameweekID, req.PlayerIDs, req.CaptainID)
	if err != nil {
		h.logger.WarnContext(ctx, "validate pick failed", "gameweek_id", req.GameweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, decisionToDTO(decision))
}

func (h *Handler) decodePickRequest(r *http.Request) (pickUpsertRequest, error) {
	var req pickUpsertRequest
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

type pickUpsertRequest struct {
	GameweekID string   `json:"gameweek_id" validate:"required"`
	PlayerIDs  []string `json:"player_ids" validate:"required,dive,required"`
	CaptainID  string   `json:"captain_id" validate:"required"`
}

type pickDTO struct {
	ProfileID   string   `json:"profile_id"`
	GameweekID  string   `json:"gameweek_id"`
	PlayerIDs   []string `json:"player_ids"`
	CaptainID   string   `json:"captain_id"`
	CaptainSlot int      `json:"captain_slot"`
	UpdatedAt   string   `json:"updated_at"`
}

type decisionDTO struct {
	Accepted    bool   `json:"accepted"`
	Reason      string `json:"reason,omitempty"`
	CaptainSlot *int   `json:"captain_slot,omitempty"`
}

func pickToDTO(v fantasy.Pick) pickDTO {
	return pickDTO{
		ProfileID:   v.ProfileID,
		GameweekID:  v.GameweekID,
		PlayerIDs:   append([]string(nil), v.PlayerIDs...),
		CaptainID:   v.CaptainID(),
		CaptainSlot: v.CaptainSlot,
		UpdatedAt:   v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func decisionToDTO(v usecase.RosterDecision) decisionDTO {
	out := decisionDTO{
		Accepted: v.Accepted,
		Reason:   v.Reason,
	}
	if v.Accepted {
		slot := v.CaptainSlot
		out.CaptainSlot = &slot
	}
	return out
}
