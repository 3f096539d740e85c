package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/matchdayhq/fantasy-companion/internal/domain/matchstat"
)

type MatchStatRepository struct {
	mu    sync.RWMutex
	stats map[string][]matchstat.Stat
}

var _ matchstat.Repository = (*MatchStatRepository)(nil)

func NewMatchStatRepository() *MatchStatRepository {
	return &MatchStatRepository{stats: map[string][]matchstat.Stat{}}
}

func (r *MatchStatRepository) ReplaceForGameweek(ctx context.Context, gameweekID string, stats []matchstat.Stat) error {
	stored := make([]matchstat.Stat, len(stats))
	copy(stored, stats)
	sort.Slice(stored, func(i, j int) bool { return stored[i].PlayerID < stored[j].PlayerID })

	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats[gameweekID] = stored
	return nil
}

func (r *MatchStatRepository) ListByGameweek(ctx context.Context, gameweekID string) ([]matchstat.Stat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchstat.Stat, len(r.stats[gameweekID]))
	copy(out, r.stats[gameweekID])
	return out, nil
}

func (r *MatchStatRepository) ListGameweekIDsWithStats(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.stats))
	for gameweekID, stats := range r.stats {
		if len(stats) > 0 {
			ids = append(ids, gameweekID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
