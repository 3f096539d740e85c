package usecase

import (
	"context"
	"fmt"

	"github.com/matchdayhq/fantasy-companion/internal/domain/gameweek"
	"github.com/matchdayhq/fantasy-companion/internal/domain/matchstat"
	"github.com/matchdayhq/fantasy-companion/internal/domain/player"
	"github.com/matchdayhq/fantasy-companion/internal/domain/scoring"
	"github.com/matchdayhq/fantasy-companion/internal/platform/logging"
)

// GameweekRecalculator triggers a score recomputation after stats change.
type GameweekRecalculator interface {
	RecalculateGameweek(ctx context.Context, gameweekID string) ([]scoring.Score, error)
}

// MatchStatService replaces a gameweek's stat set and triggers scoring.
// Re-entry is a full overwrite: prior stats for the gameweek are gone
// after a successful call.
type MatchStatService struct {
	statRepo     matchstat.Repository
	gameweekRepo gameweek.Repository
	playerRepo   player.Repository
	recalculator GameweekRecalculator
	logger       *logging.Logger
}

func NewMatchStatService(
	statRepo matchstat.Repository,
	gameweekRepo gameweek.Repository,
	playerRepo player.Repository,
	recalculator GameweekRecalculator,
	logger *logging.Logger,
) *MatchStatService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchStatService{
		statRepo:     statRepo,
		gameweekRepo: gameweekRepo,
		playerRepo:   playerRepo,
		recalculator: recalculator,
		logger:       logger,
	}
}

// EnterStats stores the full stat set for a gameweek and recomputes its
// scores. Card-count range violations are advisory: logged, never
// rejected.
func (s *MatchStatService) EnterStats(ctx context.Context, gameweekID string, stats []matchstat.Stat) ([]scoring.Score, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchStatService.EnterStats")
	defer span.End()

	if gameweekID == "" {
		return nil, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("%w: at least one stat row is required", ErrInvalidInput)
	}

	if _, err := s.gameweekRepo.GetByID(ctx, gameweekID); err != nil {
		return nil, fmt.Errorf("get gameweek %s for stat entry: %w", gameweekID, err)
	}

	seen := make(map[string]struct{}, len(stats))
	normalized := make([]matchstat.Stat, 0, len(stats))
	for _, stat := range stats {
		stat.GameweekID = gameweekID
		if err := stat.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, dup := seen[stat.PlayerID]; dup {
			return nil, fmt.Errorf("%w: duplicate stat row for player %s", ErrInvalidInput, stat.PlayerID)
		}
		seen[stat.PlayerID] = struct{}{}

		for _, note := range stat.Anomalies() {
			s.logger.WarnContext(ctx, "match stat anomaly",
				"gameweek_id", gameweekID,
				"player_id", stat.PlayerID,
				"note", note,
			)
		}
		normalized = append(normalized, stat)
	}

	// Every stat row must name a catalog player before the old set is
	// replaced, so a typo cannot wipe a gameweek's stats.
	playerIDs := make([]string, 0, len(normalized))
	for _, stat := range normalized {
		playerIDs = append(playerIDs, stat.PlayerID)
	}
	known, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("look up players for stat entry: %w", err)
	}
	knownIDs := make(map[string]struct{}, len(known))
	for _, p := range known {
		knownIDs[p.ID] = struct{}{}
	}
	for _, stat := range normalized {
		if _, ok := knownIDs[stat.PlayerID]; !ok {
			return nil, fmt.Errorf("%w: unknown player %s", ErrInvalidInput, stat.PlayerID)
		}
	}

	if err := s.statRepo.ReplaceForGameweek(ctx, gameweekID, normalized); err != nil {
		return nil, fmt.Errorf("replace stats gameweek=%s: %w", gameweekID, err)
	}

	scores, err := s.recalculator.RecalculateGameweek(ctx, gameweekID)
	if err != nil {
		return nil, fmt.Errorf("recalculate after stat entry gameweek=%s: %w", gameweekID, err)
	}

	return scores, nil
}

func (s *MatchStatService) GameweekStats(ctx context.Context, gameweekID string) ([]matchstat.Stat, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchStatService.GameweekStats")
	defer span.End()

	if gameweekID == "" {
		return nil, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}

	return s.statRepo.ListByGameweek(ctx, gameweekID)
}
