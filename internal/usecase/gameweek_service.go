package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/matchdayhq/fantasy-companion/internal/domain/gameweek"
	"github.com/matchdayhq/fantasy-companion/internal/platform/cache"
	"github.com/matchdayhq/fantasy-companion/internal/platform/id"
)

const gameweekListCacheKey = "gameweeks:list"

// GameweekService manages scoring periods. The completed flag is a
// workflow marker for admins and the current-gameweek picker; it never
// gates submissions.
type GameweekService struct {
	repo  gameweek.Repository
	idGen id.Generator
	cache *cache.Store
	now   func() time.Time
}

func NewGameweekService(repo gameweek.Repository, idGen id.Generator, store *cache.Store) *GameweekService {
	return &GameweekService{
		repo:  repo,
		idGen: idGen,
		cache: store,
		now:   time.Now,
	}
}

func (s *GameweekService) ListGameweeks(ctx context.Context) ([]gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.ListGameweeks")
	defer span.End()

	if s.cache == nil {
		return s.repo.List(ctx)
	}

	value, err := s.cache.GetOrLoad(ctx, gameweekListCacheKey, func(ctx context.Context) (any, error) {
		return s.repo.List(ctx)
	})
	if err != nil {
		return nil, err
	}

	gameweeks, _ := value.([]gameweek.Gameweek)
	return gameweeks, nil
}

func (s *GameweekService) GetGameweek(ctx context.Context, gameweekID string) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.GetGameweek")
	defer span.End()

	if gameweekID == "" {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}

	return s.repo.GetByID(ctx, gameweekID)
}

// CurrentGameweek returns the next open gameweek: earliest deadline
// still in the future among gameweeks not yet completed.
func (s *GameweekService) CurrentGameweek(ctx context.Context) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.CurrentGameweek")
	defer span.End()

	return s.repo.NextUpcoming(ctx, s.now().UTC())
}

func (s *GameweekService) CreateGameweek(ctx context.Context, gw gameweek.Gameweek) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.CreateGameweek")
	defer span.End()

	newID, err := s.idGen.NewID()
	if err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("generate gameweek id: %w", err)
	}
	gw.ID = newID
	gw.IsCompleted = false

	if err := gw.Validate(); err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Create(ctx, gw); err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("create gameweek: %w", err)
	}
	s.invalidateList(ctx)

	return gw, nil
}

func (s *GameweekService) UpdateGameweek(ctx context.Context, gw gameweek.Gameweek) (gameweek.Gameweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.UpdateGameweek")
	defer span.End()

	if err := gw.Validate(); err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.Update(ctx, gw); err != nil {
		return gameweek.Gameweek{}, fmt.Errorf("update gameweek %s: %w", gw.ID, err)
	}
	s.invalidateList(ctx)

	return gw, nil
}

func (s *GameweekService) SetCompleted(ctx context.Context, gameweekID string, completed bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameweekService.SetCompleted")
	defer span.End()

	if gameweekID == "" {
		return fmt.Errorf("%w: gameweek id is required", ErrInvalidInput)
	}
	if err := s.repo.SetCompleted(ctx, gameweekID, completed); err != nil {
		return fmt.Errorf("set gameweek %s completed=%t: %w", gameweekID, completed, err)
	}
	s.invalidateList(ctx)

	return nil
}

func (s *GameweekService) invalidateList(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, gameweekListCacheKey)
	}
}
