// Package memory holds map-backed repositories used by local development
// and tests where a Postgres instance is not available.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/matchdayhq/fantasy-companion/internal/domain/player"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

var _ player.Repository = (*PlayerRepository)(nil)

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{players: map[string]player.Player{}}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player %s", usecase.ErrNotFound, playerID)
	}
	return p, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		if p, ok := r.players[playerID]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[p.ID]; exists {
		return fmt.Errorf("%w: player %s already exists", usecase.ErrInvalidInput, p.ID)
	}
	r.players[p.ID] = p
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[p.ID]; !exists {
		return fmt.Errorf("%w: player %s", usecase.ErrNotFound, p.ID)
	}
	r.players[p.ID] = p
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.players[playerID]; !exists {
		return fmt.Errorf("%w: player %s", usecase.ErrNotFound, playerID)
	}
	delete(r.players, playerID)
	return nil
}
