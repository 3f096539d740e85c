package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/matchdayhq/fantasy-companion/internal/domain/fantasy"
	"github.com/matchdayhq/fantasy-companion/internal/domain/gameweek"
	"github.com/matchdayhq/fantasy-companion/internal/domain/matchstat"
	"github.com/matchdayhq/fantasy-companion/internal/domain/player"
	"github.com/matchdayhq/fantasy-companion/internal/domain/profile"
	"github.com/matchdayhq/fantasy-companion/internal/domain/scoring"
)

func pickKey(profileID, gameweekID string) string {
	return profileID + "|" + gameweekID
}

type stubPickRepo struct {
	picks   map[string]fantasy.Pick
	upserts int
	err     error
}

var _ fantasy.Repository = (*stubPickRepo)(nil)

func newStubPickRepo() *stubPickRepo {
	return &stubPickRepo{picks: make(map[string]fantasy.Pick)}
}

func (r *stubPickRepo) Upsert(_ context.Context, pick fantasy.Pick) error {
	if r.err != nil {
		return r.err
	}
	r.upserts++
	r.picks[pickKey(pick.ProfileID, pick.GameweekID)] = pick
	return nil
}

func (r *stubPickRepo) GetByProfileAndGameweek(_ context.Context, profileID, gameweekID string) (fantasy.Pick, error) {
	if r.err != nil {
		return fantasy.Pick{}, r.err
	}
	pick, ok := r.picks[pickKey(profileID, gameweekID)]
	if !ok {
		return fantasy.Pick{}, fmt.Errorf("%w: pick", ErrNotFound)
	}
	return pick, nil
}

func (r *stubPickRepo) ListByGameweek(_ context.Context, gameweekID string) ([]fantasy.Pick, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]fantasy.Pick, 0)
	for _, pick := range r.picks {
		if pick.GameweekID == gameweekID {
			out = append(out, pick)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProfileID < out[j].ProfileID })
	return out, nil
}

type stubGameweekRepo struct {
	gameweeks map[string]gameweek.Gameweek
	err       error
}

var _ gameweek.Repository = (*stubGameweekRepo)(nil)

func newStubGameweekRepo(gameweeks ...gameweek.Gameweek) *stubGameweekRepo {
	repo := &stubGameweekRepo{gameweeks: make(map[string]gameweek.Gameweek)}
	for _, gw := range gameweeks {
		repo.gameweeks[gw.ID] = gw
	}
	return repo
}

func (r *stubGameweekRepo) List(_ context.Context) ([]gameweek.Gameweek, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]gameweek.Gameweek, 0, len(r.gameweeks))
	for _, gw := range r.gameweeks {
		out = append(out, gw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoundNumber < out[j].RoundNumber })
	return out, nil
}

func (r *stubGameweekRepo) GetByID(_ context.Context, gameweekID string) (gameweek.Gameweek, error) {
	if r.err != nil {
		return gameweek.Gameweek{}, r.err
	}
	gw, ok := r.gameweeks[gameweekID]
	if !ok {
		return gameweek.Gameweek{}, fmt.Errorf("%w: gameweek %s", ErrNotFound, gameweekID)
	}
	return gw, nil
}

func (r *stubGameweekRepo) NextUpcoming(_ context.Context, now time.Time) (gameweek.Gameweek, error) {
	var best gameweek.Gameweek
	found := false
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
		return gameweek.Gameweek{}, fmt.Errorf("%w: no upcoming gameweek", ErrNotFound)
	}
	return best, nil
}

func (r *stubGameweekRepo) Create(_ context.Context, gw gameweek.Gameweek) error {
	r.gameweeks[gw.ID] = gw
	return nil
}

func (r *stubGameweekRepo) Update(_ context.Context, gw gameweek.Gameweek) error {
	if _, ok := r.gameweeks[gw.ID]; !ok {
		return fmt.Errorf("%w: gameweek %s", ErrNotFound, gw.ID)
	}
	r.gameweeks[gw.ID] = gw
	return nil
}

func (r *stubGameweekRepo) SetCompleted(_ context.Context, gameweekID string, completed bool) error {
	gw, ok := r.gameweeks[gameweekID]
	if !ok {
		return fmt.Errorf("%w: gameweek %s", ErrNotFound, gameweekID)
	}
	gw.IsCompleted = completed
	r.gameweeks[gameweekID] = gw
	return nil
}

type stubPlayerRepo struct {
	players map[string]player.Player
	err     error
}

var _ player.Repository = (*stubPlayerRepo)(nil)

func newStubPlayerRepo(players ...player.Player) *stubPlayerRepo {
	repo := &stubPlayerRepo{players: make(map[string]player.Player)}
	for _, p := range players {
		repo.players[p.ID] = p
	}
	return repo
}

func (r *stubPlayerRepo) List(_ context.Context) ([]player.Player, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]player.Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPlayerRepo) GetByID(_ context.Context, playerID string) (player.Player, error) {
	p, ok := r.players[playerID]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	return p, nil
}

func (r *stubPlayerRepo) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]player.Player, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		if p, ok := r.players[playerID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPlayerRepo) Create(_ context.Context, p player.Player) error {
	r.players[p.ID] = p
	return nil
}

func (r *stubPlayerRepo) Update(_ context.Context, p player.Player) error {
	if _, ok := r.players[p.ID]; !ok {
		return fmt.Errorf("%w: player %s", ErrNotFound, p.ID)
	}
	r.players[p.ID] = p
	return nil
}

func (r *stubPlayerRepo) Delete(_ context.Context, playerID string) error {
	delete(r.players, playerID)
	return nil
}

type stubStatRepo struct {
	statsByGameweek map[string][]matchstat.Stat
	replaceCalls    int
	err             error
}

var _ matchstat.Repository = (*stubStatRepo)(nil)

func newStubStatRepo() *stubStatRepo {
	return &stubStatRepo{statsByGameweek: make(map[string][]matchstat.Stat)}
}

func (r *stubStatRepo) ReplaceForGameweek(_ context.Context, gameweekID string, stats []matchstat.Stat) error {
	if r.err != nil {
		return r.err
	}
	r.replaceCalls++
	r.statsByGameweek[gameweekID] = append([]matchstat.Stat(nil), stats...)
	return nil
}

func (r *stubStatRepo) ListByGameweek(_ context.Context, gameweekID string) ([]matchstat.Stat, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]matchstat.Stat(nil), r.statsByGameweek[gameweekID]...), nil
}

func (r *stubStatRepo) ListGameweekIDsWithStats(_ context.Context) ([]string, error) {
	if r.err != nil {
		return nil, r.err
	}
	ids := make([]string, 0, len(r.statsByGameweek))
	for gameweekID := range r.statsByGameweek {
		ids = append(ids, gameweekID)
	}
	sort.Strings(ids)
	return ids, nil
}

type stubScoreRepo struct {
	scoresByGameweek map[string][]scoring.Score
	totals           []scoring.ProfileTotal
	replaceCalls     int
	err              error
}

var _ scoring.Repository = (*stubScoreRepo)(nil)

func newStubScoreRepo() *stubScoreRepo {
	return &stubScoreRepo{scoresByGameweek: make(map[string][]scoring.Score)}
}

func (r *stubScoreRepo) ReplaceForGameweek(_ context.Context, gameweekID string, scores []scoring.Score) error {
	if r.err != nil {
		return r.err
	}
	r.replaceCalls++
	r.scoresByGameweek[gameweekID] = append([]scoring.Score(nil), scores...)
	return nil
}

func (r *stubScoreRepo) ListByGameweek(_ context.Context, gameweekID string) ([]scoring.Score, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]scoring.Score(nil), r.scoresByGameweek[gameweekID]...), nil
}

func (r *stubScoreRepo) ListByProfile(_ context.Context, profileID string) ([]scoring.Score, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]scoring.Score, 0)
	for _, scores := range r.scoresByGameweek {
		for _, score := range scores {
			if score.ProfileID == profileID {
				out = append(out, score)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameweekID < out[j].GameweekID })
	return out, nil
}

func (r *stubScoreRepo) TotalsAcrossGameweeks(_ context.Context) ([]scoring.ProfileTotal, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.totals != nil {
		return append([]scoring.ProfileTotal(nil), r.totals...), nil
	}
	sums := make(map[string]int)
	for _, scores := range r.scoresByGameweek {
		for _, score := range scores {
			sums[score.ProfileID] += score.TotalPoints
		}
	}
	out := make([]scoring.ProfileTotal, 0, len(sums))
	for profileID, points := range sums {
		out = append(out, scoring.ProfileTotal{ProfileID: profileID, Points: points})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProfileID < out[j].ProfileID })
	return out, nil
}

type stubProfileRepo struct {
	profiles []profile.Profile
	err      error
}

var _ profile.Repository = (*stubProfileRepo)(nil)

func newStubProfileRepo(profiles ...profile.Profile) *stubProfileRepo {
	return &stubProfileRepo{profiles: profiles}
}

func (r *stubProfileRepo) List(_ context.Context) ([]profile.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	return append([]profile.Profile(nil), r.profiles...), nil
}

func (r *stubProfileRepo) GetByID(_ context.Context, profileID string) (profile.Profile, error) {
	for _, p := range r.profiles {
		if p.ID == profileID {
			return p, nil
		}
	}
	return profile.Profile{}, fmt.Errorf("%w: profile %s", ErrNotFound, profileID)
}

func (r *stubProfileRepo) GetByIDs(_ context.Context, profileIDs []string) ([]profile.Profile, error) {
	if r.err != nil {
		return nil, r.err
	}
	wanted := make(map[string]struct{}, len(profileIDs))
	for _, profileID := range profileIDs {
		wanted[profileID] = struct{}{}
	}
	out := make([]profile.Profile, 0, len(profileIDs))
	for _, p := range r.profiles {
		if _, ok := wanted[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
