package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/matchdayhq/fantasy-companion/internal/domain/fantasy"
	"github.com/matchdayhq/fantasy-companion/internal/domain/gameweek"
	"github.com/matchdayhq/fantasy-companion/internal/domain/player"
)

// PickService gates roster submissions and persists accepted picks.
// The gameweek deadline is the only write-gating authority; the
// completed flag never factors in.
type PickService struct {
	pickRepo     fantasy.Repository
	gameweekRepo gameweek.Repository
	playerRepo   player.Repository
	rules        fantasy.Rules
	now          func() time.Time
}

func NewPickService(
	pickRepo fantasy.Repository,
	gameweekRepo gameweek.Repository,
	playerRepo player.Repository,
) *PickService {
	return &PickService{
		pickRepo:     pickRepo,
		gameweekRepo: gameweekRepo,
		playerRepo:   playerRepo,
		rules:        fantasy.DefaultRules(),
		now:          time.Now,
	}
}

// RosterDecision is the outcome of a validation attempt. Reason is set
// only when Accepted is false.
type RosterDecision struct {
	Accepted    bool
	Reason      string
	CaptainSlot int
}

// ValidateRoster dry-runs the submission rules without persisting.
// Rule rejections come back inside the decision; only infrastructure
// problems surface as errors.
func (s *PickService) ValidateRoster(ctx context.Context, gameweekID string, playerIDs []string, captainID string) (RosterDecision, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ValidateRoster")
	defer span.End()

	slot, err := s.runValidation(ctx, gameweekID, playerIDs, captainID)
	if err != nil {
		if reason := fantasy.RejectionReason(err); reason != "" {
			return RosterDecision{Reason: reason}, nil
		}
		return RosterDecision{}, err
	}

	return RosterDecision{Accepted: true, CaptainSlot: slot}, nil
}

// SaveRoster validates and upserts a pick. Rule rejections are returned
// as fantasy sentinel errors so the transport layer can map them onto
// the rejection taxonomy.
func (s *PickService) SaveRoster(ctx context.Context, profileID, gameweekID string, playerIDs []string, captainID string) (fantasy.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SaveRoster")
	defer span.End()

	if profileID == "" {
		return fantasy.Pick{}, fmt.Errorf("%w: profile id is required", ErrInvalidInput)
	}

	slot, err := s.runValidation(ctx, gameweekID, playerIDs, captainID)
	if err != nil {
		return fantasy.Pick{}, err
	}

	pick := fantasy.Pick{
		ProfileID:   profileID,
		GameweekID:  gameweekID,
		PlayerIDs:   append([]string(nil), playerIDs...),
		CaptainSlot: slot,
		UpdatedAt:   s.now().UTC(),
	}
	if err := s.pickRepo.Upsert(ctx, pick); err != nil {
		return fantasy.Pick{}, fmt.Errorf("upsert pick profile=%s gameweek=%s: %w", profileID, gameweekID, err)
	}

	return pick, nil
}

func (s *PickService) GetRoster(ctx context.Context, profileID, gameweekID string) (fantasy.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.GetRoster")
	defer span.End()

	if profileID == "" || gameweekID == "" {
		return fantasy.Pick{}, fmt.Errorf("%w: profile id and gameweek id are required", ErrInvalidInput)
	}

	pick, err := s.pickRepo.GetByProfileAndGameweek(ctx, profileID, gameweekID)
	if err != nil {
		return fantasy.Pick{}, err
	}

	return pick, nil
}

func (s *PickService) runValidation(ctx context.Context, gameweekID string, playerIDs []string, captainID string) (int, error) {
	if gameweekID == "" {
		return 0, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}

	gw, err := s.gameweekRepo.GetByID(ctx, gameweekID)
	if err != nil {
		return 0, fmt.Errorf("get gameweek %s for validation: %w", gameweekID, err)
	}

	prices, err := s.pricedCatalog(ctx, playerIDs)
	if err != nil {
		return 0, err
	}

	return fantasy.ValidateRoster(s.now().UTC(), gw.DeadlineAt, playerIDs, captainID, prices, s.rules)
}

// pricedCatalog resolves the candidates' prices. Unknown IDs are simply
// absent from the map; the validator turns that into a hard failure.
func (s *PickService) pricedCatalog(ctx context.Context, playerIDs []string) (map[string]int64, error) {
	if len(playerIDs) == 0 {
		return map[string]int64{}, nil
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players for validation: %w", err)
	}

	prices := make(map[string]int64, len(players))
	for _, p := range players {
		prices[p.ID] = p.Price
	}

	return prices, nil
}
