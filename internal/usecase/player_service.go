package usecase

import (
	"context"
	"fmt"

	"github.com/matchdayhq/fantasy-companion/internal/domain/player"
	"github.com/matchdayhq/fantasy-companion/internal/platform/cache"
	"github.com/matchdayhq/fantasy-companion/internal/platform/id"
)

const playerCatalogCacheKey = "players:list"

// PlayerService serves the priced catalog and the admin player CRUD.
// The list is cached; admin writes invalidate it so validation always
// sees current prices after the TTL at the latest.
type PlayerService struct {
	repo  player.Repository
	idGen id.Generator
	cache *cache.Store
}

func NewPlayerService(repo player.Repository, idGen id.Generator, store *cache.Store) *PlayerService {
	return &PlayerService{
		repo:  repo,
		idGen: idGen,
		cache: store,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayers")
	defer span.End()

	if s.cache == nil {
		return s.repo.List(ctx)
	}

	value, err := s.cache.GetOrLoad(ctx, playerCatalogCacheKey, func(ctx context.Context) (any, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, err
	}

	players, _ := value.([]player.Player)
	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	return s.repo.GetByID(ctx, playerID)
}

func (s *PlayerService) CreatePlayer(ctx context.Context, p player.Player) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.CreatePlayer")
	defer span.End()

	newID, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}
	p.ID = newID

	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	s.invalidateCatalog(ctx)

	return p, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, p player.Player) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.UpdatePlayer")
	defer span.End()

	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("update player %s: %w", p.ID, err)
	}
	s.invalidateCatalog(ctx)

	return p, nil
}

func (s *PlayerService) DeletePlayer(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.DeletePlayer")
	defer span.End()

	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, playerID); err != nil {
		return fmt.Errorf("delete player %s: %w", playerID, err)
	}
	s.invalidateCatalog(ctx)

	return nil
}

func (s *PlayerService) invalidateCatalog(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, playerCatalogCacheKey)
	}
}
