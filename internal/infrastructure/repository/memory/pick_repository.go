package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/matchdayhq/fantasy-companion/internal/domain/fantasy"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

type pickKey struct {
	profileID  string
	gameweekID string
}

type PickRepository struct {
	mu    sync.RWMutex
	picks map[pickKey]fantasy.Pick
}

var _ fantasy.Repository = (*PickRepository)(nil)

func NewPickRepository() *PickRepository {
	return &PickRepository{picks: map[pickKey]fantasy.Pick{}}
}

func (r *PickRepository) Upsert(ctx context.Context, pick fantasy.Pick) error {
	if err := pick.ValidateBasic(); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := pick
	stored.PlayerIDs = append([]string(nil), pick.PlayerIDs...)
	r.picks[pickKey{profileID: pick.ProfileID, gameweekID: pick.GameweekID}] = stored
	return nil
}

func (r *PickRepository) GetByProfileAndGameweek(ctx context.Context, profileID, gameweekID string) (fantasy.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pick, ok := r.picks[pickKey{profileID: profileID, gameweekID: gameweekID}]
	if !ok {
		return fantasy.Pick{}, fmt.Errorf("%w: pick profile=%s gameweek=%s", usecase.ErrNotFound, profileID, gameweekID)
	}
	return clonePick(pick), nil
}

func (r *PickRepository) ListByGameweek(ctx context.Context, gameweekID string) ([]fantasy.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fantasy.Pick, 0, len(r.picks))
	for key, pick := range r.picks {
		if key.gameweekID == gameweekID {
			out = append(out, clonePick(pick))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProfileID < out[j].ProfileID })
	return out, nil
}

func clonePick(pick fantasy.Pick) fantasy.Pick {
	out := pick
	out.PlayerIDs = append([]string(nil), pick.PlayerIDs...)
	return out
}
