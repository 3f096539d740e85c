package memory

import (
	"context"
	"time"

	"github.com/matchdayhq/fantasy-companion/internal/domain/gameweek"
	"github.com/matchdayhq/fantasy-companion/internal/domain/player"
	"github.com/matchdayhq/fantasy-companion/internal/domain/profile"
)

// Stores bundles every in-memory repository so local development can run
// against one seeded set.
type Stores struct {
	Players   *PlayerRepository
	Gameweeks *GameweekRepository
	Picks     *PickRepository
	Stats     *MatchStatRepository
	Scores    *ScoreRepository
	Profiles  *ProfileRepository
}

func NewStores() *Stores {
	return &Stores{
		Players:   NewPlayerRepository(),
		Gameweeks: NewGameweekRepository(),
		Picks:     NewPickRepository(),
		Stats:     NewMatchStatRepository(),
		Scores:    NewScoreRepository(),
		Profiles:  NewProfileRepository(),
	}
}

// Seed loads a small fixture set: enough players to fill a roster under
// the 20M cap, two gameweeks, and a couple of participants.
func (s *Stores) Seed(ctx context.Context, now time.Time) error {
	players := []player.Player{
		{ID: "p-001", Name: "Arif Putra", Position: "Forward", Price: 850},
		{ID: "p-002", Name: "Bima Santoso", Position: "Midfielder", Price: 620},
		{ID: "p-003", Name: "Cahyo Nugroho", Position: "Midfielder", Price: 540},
		{ID: "p-004", Name: "Dani Wirawan", Position: "Defender", Price: 430},
		{ID: "p-005", Name: "Eko Prasetyo", Position: "Defender", Price: 390},
		{ID: "p-006", Name: "Fajar Hidayat", Position: "Goalkeeper", Price: 310},
	}
	for _, p := range players {
		if err := s.Players.Create(ctx, p); err != nil {
			return err
		}
	}

	gameweeks := []gameweek.Gameweek{
		{
			ID:          "gw-001",
			RoundNumber: 1,
			RoundName:   "Matchday 1",
			MatchDate:   now.Add(72 * time.Hour),
			DeadlineAt:  now.Add(48 * time.Hour),
		},
		{
			ID:          "gw-002",
			RoundNumber: 2,
			RoundName:   "Matchday 2",
			MatchDate:   now.Add(10 * 24 * time.Hour),
			DeadlineAt:  now.Add(9 * 24 * time.Hour),
		},
	}
	for _, gw := range gameweeks {
		if err := s.Gameweeks.Create(ctx, gw); err != nil {
			return err
		}
	}

	s.Profiles.Put(profile.Profile{ID: "u-001", Username: "demo", TeamName: "Demo United"})
	s.Profiles.Put(profile.Profile{ID: "u-900", Username: "admin", TeamName: "Ops", IsAdmin: true})

	return nil
}
