package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/matchdayhq/fantasy-companion/internal/domain/scoring"
)

type scoreKey struct {
	profileID  string
	gameweekID string
}

type ScoreRepository struct {
	mu     sync.RWMutex
	scores map[scoreKey]scoring.Score
}

var _ scoring.Repository = (*ScoreRepository)(nil)

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{scores: map[scoreKey]scoring.Score{}}
}

// ReplaceForGameweek swaps the gameweek's full score set: rows for
// profiles absent from the new set are dropped, not left behind.
func (r *ScoreRepository) ReplaceForGameweek(ctx context.Context, gameweekID string, scores []scoring.Score) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.scores {
		if key.gameweekID == gameweekID {
			delete(r.scores, key)
		}
	}
	for _, score := range scores {
		score.GameweekID = gameweekID
		r.scores[scoreKey{profileID: score.ProfileID, gameweekID: gameweekID}] = score
	}
	return nil
}

func (r *ScoreRepository) ListByGameweek(ctx context.Context, gameweekID string) ([]scoring.Score, error) {
	return r.list(func(key scoreKey) bool { return key.gameweekID == gameweekID }), nil
}

func (r *ScoreRepository) ListByProfile(ctx context.Context, profileID string) ([]scoring.Score, error) {
	return r.list(func(key scoreKey) bool { return key.profileID == profileID }), nil
}

func (r *ScoreRepository) TotalsAcrossGameweeks(ctx context.Context) ([]scoring.ProfileTotal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sums := map[string]int{}
	for key, score := range r.scores {
		sums[key.profileID] += score.TotalPoints
	}

	out := make([]scoring.ProfileTotal, 0, len(sums))
	for profileID, points := range sums {
		out = append(out, scoring.ProfileTotal{ProfileID: profileID, Points: points})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProfileID < out[j].ProfileID })
	return out, nil
}

func (r *ScoreRepository) list(match func(scoreKey) bool) []scoring.Score {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.Score, 0, len(r.scores))
	for key, score := range r.scores {
		if match(key) {
			out = append(out, score)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameweekID != out[j].GameweekID {
			return out[i].GameweekID < out[j].GameweekID
		}
		return out[i].ProfileID < out[j].ProfileID
	})
	return out
}
