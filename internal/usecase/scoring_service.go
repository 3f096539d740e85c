package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/matchdayhq/fantasy-companion/internal/domain/fantasy"
	"github.com/matchdayhq/fantasy-companion/internal/domain/gameweek"
	"github.com/matchdayhq/fantasy-companion/internal/domain/matchstat"
	"github.com/matchdayhq/fantasy-companion/internal/domain/profile"
	"github.com/matchdayhq/fantasy-companion/internal/domain/scoring"
	"github.com/matchdayhq/fantasy-companion/internal/platform/resilience"
)

const defaultRecalcWorkers = 4

// ScoringService recomputes gameweek scores and serves leaderboards.
// Recomputation is idempotent: it replaces the full score set for a
// gameweek keyed on (profile, gameweek).
type ScoringService struct {
	pickRepo     fantasy.Repository
	statRepo     matchstat.Repository
	scoreRepo    scoring.Repository
	profileRepo  profile.Repository
	gameweekRepo gameweek.Repository

	now           func() time.Time
	recalcFlight  resilience.Flight
	recalcWorkers int
}

func NewScoringService(
	pickRepo fantasy.Repository,
	statRepo matchstat.Repository,
	scoreRepo scoring.Repository,
	profileRepo profile.Repository,
	gameweekRepo gameweek.Repository,
) *ScoringService {
	return &ScoringService{
		pickRepo:      pickRepo,
		statRepo:      statRepo,
		scoreRepo:     scoreRepo,
		profileRepo:   profileRepo,
		gameweekRepo:  gameweekRepo,
		now:           time.Now,
		recalcWorkers: defaultRecalcWorkers,
	}
}

// LeaderboardEntry is one ranked row. Equal point totals share a rank;
// ordering is points descending, then profile id ascending.
type LeaderboardEntry struct {
	Rank      int
	ProfileID string
	Username  string
	TeamName  string
	Points    int
}

// RecalculateGameweek recomputes and persists every profile's score for
// one gameweek. Concurrent requests for the same gameweek collapse into
// a single run.
func (s *ScoringService) RecalculateGameweek(ctx context.Context, gameweekID string) ([]scoring.Score, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecalculateGameweek")
	defer span.End()

	if gameweekID == "" {
		return nil, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}

	// The collapsed run is shared with followers, so it must not die
	// with the leading caller's context.
	recalcCtx := context.WithoutCancel(ctx)
	result, err, _ := s.recalcFlight.Do("scoring:recalc:"+gameweekID, func() (any, error) {
		return s.recalculateGameweekOnce(recalcCtx, gameweekID)
	})
	if err != nil {
		return nil, err
	}

	scores, _ := result.([]scoring.Score)
	return scores, nil
}

func (s *ScoringService) recalculateGameweekOnce(ctx context.Context, gameweekID string) ([]scoring.Score, error) {
	if _, err := s.gameweekRepo.GetByID(ctx, gameweekID); err != nil {
		return nil, fmt.Errorf("get gameweek %s for recalculation: %w", gameweekID, err)
	}

	var (
		picks    []fantasy.Pick
		stats    []matchstat.Stat
		profiles []profile.Profile
	)

	fetch := pool.New().WithContext(ctx).WithCancelOnError()
	fetch.Go(func(ctx context.Context) error {
		var err error
		picks, err = s.pickRepo.ListByGameweek(ctx, gameweekID)
		if err != nil {
			return fmt.Errorf("list picks by gameweek: %w", err)
		}
		return nil
	})
	fetch.Go(func(ctx context.Context) error {
		var err error
		stats, err = s.statRepo.ListByGameweek(ctx, gameweekID)
		if err != nil {
			return fmt.Errorf("list stats by gameweek: %w", err)
		}
		return nil
	})
	fetch.Go(func(ctx context.Context) error {
		var err error
		profiles, err = s.profileRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list profiles: %w", err)
		}
		return nil
	})
	if err := fetch.Wait(); err != nil {
		return nil, err
	}

	profileIDs := make([]string, 0, len(profiles))
	for _, p := range profiles {
		profileIDs = append(profileIDs, p.ID)
	}

	scores := scoring.CalculateGameweek(gameweekID, picks, stats, profileIDs)

	calculatedAt := s.now().UTC()
	for i := range scores {
		scores[i].CalculatedAt = calculatedAt
	}

	if err := s.scoreRepo.ReplaceForGameweek(ctx, gameweekID, scores); err != nil {
		return nil, fmt.Errorf("replace scores gameweek=%s: %w", gameweekID, err)
	}

	return scores, nil
}

// RecalculateAll recomputes every gameweek that has stats, fanned out
// over a bounded worker pool. It returns the number of gameweeks
// recalculated and the first error encountered, if any.
func (s *ScoringService) RecalculateAll(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecalculateAll")
	defer span.End()

	gameweekIDs, err := s.statRepo.ListGameweekIDsWithStats(ctx)
	if err != nil {
		return 0, fmt.Errorf("list gameweeks with stats: %w", err)
	}
	if len(gameweekIDs) == 0 {
		return 0, nil
	}

	workers, err := ants.NewPool(s.recalcWorkers)
	if err != nil {
		return 0, fmt.Errorf("create recalculation pool: %w", err)
	}
	defer workers.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		done     int
		firstErr error
	)
	for _, gameweekID := range gameweekIDs {
		gameweekID := gameweekID
		wg.Add(1)
		submitErr := workers.Submit(func() {
			defer wg.Done()
			_, runErr := s.RecalculateGameweek(ctx, gameweekID)
			mu.Lock()
			defer mu.Unlock()
			if runErr != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("recalculate gameweek %s: %w", gameweekID, runErr)
				}
				return
			}
			done++
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("submit recalculation for gameweek %s: %w", gameweekID, submitErr)
			}
			mu.Unlock()
		}
	}
	wg.Wait()

	return done, firstErr
}

func (s *ScoringService) GameweekScores(ctx context.Context, gameweekID string) ([]scoring.Score, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.GameweekScores")
	defer span.End()

	if gameweekID == "" {
		return nil, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}

	return s.scoreRepo.ListByGameweek(ctx, gameweekID)
}

func (s *ScoringService) ProfileScores(ctx context.Context, profileID string) ([]scoring.Score, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ProfileScores")
	defer span.End()

	if profileID == "" {
		return nil, fmt.Errorf("%w: profile id is required", ErrInvalidInput)
	}

	return s.scoreRepo.ListByProfile(ctx, profileID)
}

// GameweekLeaderboard ranks profiles by one gameweek's totals.
func (s *ScoringService) GameweekLeaderboard(ctx context.Context, gameweekID string) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.GameweekLeaderboard")
	defer span.End()

	if gameweekID == "" {
		return nil, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}

	scores, err := s.scoreRepo.ListByGameweek(ctx, gameweekID)
	if err != nil {
		return nil, fmt.Errorf("list scores for leaderboard gameweek=%s: %w", gameweekID, err)
	}

	totals := make([]scoring.ProfileTotal, 0, len(scores))
	for _, score := range scores {
		totals = append(totals, scoring.ProfileTotal{ProfileID: score.ProfileID, Points: score.TotalPoints})
	}

	return s.rankTotals(ctx, totals)
}

// OverallLeaderboard ranks profiles by points summed across every
// calculated gameweek.
func (s *ScoringService) OverallLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.OverallLeaderboard")
	defer span.End()

	totals, err := s.scoreRepo.TotalsAcrossGameweeks(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum totals for overall leaderboard: %w", err)
	}

	return s.rankTotals(ctx, totals)
}

func (s *ScoringService) rankTotals(ctx context.Context, totals []scoring.ProfileTotal) ([]LeaderboardEntry, error) {
	if len(totals) == 0 {
		return []LeaderboardEntry{}, nil
	}

	profileIDs := make([]string, 0, len(totals))
	for _, total := range totals {
		profileIDs = append(profileIDs, total.ProfileID)
	}
	profiles, err := s.profileRepo.GetByIDs(ctx, profileIDs)
	if err != nil {
		return nil, fmt.Errorf("get profiles for leaderboard: %w", err)
	}
	profileByID := make(map[string]profile.Profile, len(profiles))
	for _, p := range profiles {
		profileByID[p.ID] = p
	}

	entries := make([]LeaderboardEntry, 0, len(totals))
	for _, total := range totals {
		entry := LeaderboardEntry{
			ProfileID: total.ProfileID,
			Points:    total.Points,
		}
		if p, ok := profileByID[total.ProfileID]; ok {
			entry.Username = p.Username
			entry.TeamName = p.TeamName
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].ProfileID < entries[j].ProfileID
	})

	lastPoints := 0
	rank := 0
	for idx := range entries {
		if idx == 0 || entries[idx].Points != lastPoints {
			rank++
			lastPoints = entries[idx].Points
		}
		entries[idx].Rank = rank
	}

	return entries, nil
}
