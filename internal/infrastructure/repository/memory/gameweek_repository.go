package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/matchdayhq/fantasy-companion/internal/domain/gameweek"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

type GameweekRepository struct {
	mu        sync.RWMutex
	gameweeks map[string]gameweek.Gameweek
}

var _ gameweek.Repository = (*GameweekRepository)(nil)

func NewGameweekRepository() *GameweekRepository {
	return &GameweekRepository{gameweeks: map[string]gameweek.Gameweek{}}
}

func (r *GameweekRepository) List(ctx context.Context) ([]gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gameweek.Gameweek, 0, len(r.gameweeks))
	for _, gw := range r.gameweeks {
		out = append(out, gw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoundNumber < out[j].RoundNumber })
	return out, nil
}

func (r *GameweekRepository) GetByID(ctx context.Context, gameweekID string) (gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gw, ok := r.gameweeks[gameweekID]
	if !ok {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek %s", usecase.ErrNotFound, gameweekID)
	}
	return gw, nil
}

func (r *GameweekRepository) NextUpcoming(ctx context.Context, now time.Time) (gameweek.Gameweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		best  gameweek.Gameweek
		found bool
	)
	for _, gw := range r.gameweeks {
		if gw.IsCompleted || !gw.DeadlineAt.After(now) {
			continue
		}
		if !found || gw.DeadlineAt.Before(best.DeadlineAt) {
			best = gw
			found = true
		}
	}
	if !found {
		return gameweek.Gameweek{}, fmt.Errorf("%w: no upcoming gameweek", usecase.ErrNotFound)
	}
	return best, nil
}

func (r *GameweekRepository) Create(ctx context.Context, gw gameweek.Gameweek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.gameweeks[gw.ID]; exists {
		return fmt.Errorf("%w: gameweek %s already exists", usecase.ErrInvalidInput, gw.ID)
	}
	r.gameweeks[gw.ID] = gw
	return nil
}

func (r *GameweekRepository) Update(ctx context.Context, gw gameweek.Gameweek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.gameweeks[gw.ID]; !exists {
		return fmt.Errorf("%w: gameweek %s", usecase.ErrNotFound, gw.ID)
	}
	r.gameweeks[gw.ID] = gw
	return nil
}

func (r *GameweekRepository) SetCompleted(ctx context.Context, gameweekID string, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gw, exists := r.gameweeks[gameweekID]
	if !exists {
		return fmt.Errorf("%w: gameweek %s", usecase.ErrNotFound, gameweekID)
	}
	gw.IsCompleted = completed
	r.gameweeks[gameweekID] = gw
	return nil
}
