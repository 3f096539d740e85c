package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/matchdayhq/fantasy-companion/internal/domain/fantasy"
	"github.com/matchdayhq/fantasy-companion/internal/domain/gameweek"
	"github.com/matchdayhq/fantasy-companion/internal/domain/matchstat"
	"github.com/matchdayhq/fantasy-companion/internal/domain/profile"
	"github.com/matchdayhq/fantasy-companion/internal/domain/scoring"
)

type scoringFixture struct {
	svc          *ScoringService
	pickRepo     *stubPickRepo
	statRepo     *stubStatRepo
	scoreRepo    *stubScoreRepo
	profileRepo  *stubProfileRepo
	gameweekRepo *stubGameweekRepo
}

func newScoringFixture(now time.Time) scoringFixture {
	f := scoringFixture{
		pickRepo:  newStubPickRepo(),
		statRepo:  newStubStatRepo(),
		scoreRepo: newStubScoreRepo(),
		profileRepo: newStubProfileRepo(
			profile.Profile{ID: "u1", Username: "alice", TeamName: "Alice FC"},
			profile.Profile{ID: "u2", Username: "bob", TeamName: "Bob United"},
			profile.Profile{ID: "u3", Username: "cara", TeamName: "Cara City"},
		),
		gameweekRepo: newStubGameweekRepo(
			gameweek.Gameweek{ID: "gw1", RoundNumber: 1, DeadlineAt: now.Add(-time.Hour)},
			gameweek.Gameweek{ID: "gw2", RoundNumber: 2, DeadlineAt: now.Add(time.Hour)},
		),
	}
	f.svc = NewScoringService(f.pickRepo, f.statRepo, f.scoreRepo, f.profileRepo, f.gameweekRepo)
	f.svc.now = func() time.Time { return now }
	return f
}

func TestRecalculateGameweekWritesRowForEveryProfile(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 14, 0, 0, 0, time.UTC)
	f := newScoringFixture(now)
	ctx := context.Background()

	f.pickRepo.picks[pickKey("u1", "gw1")] = fantasy.Pick{
		ProfileID:   "u1",
		GameweekID:  "gw1",
		PlayerIDs:   []string{"p1", "p2", "p3", "p4"},
		CaptainSlot: 0,
	}
	f.statRepo.statsByGameweek["gw1"] = []matchstat.Stat{
		{GameweekID: "gw1", PlayerID: "p1", Played: true, Goals: 1},
	}

	scores, err := f.svc.RecalculateGameweek(ctx, "gw1")
	if err != nil {
		t.Fatalf("RecalculateGameweek() error = %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("len(scores) = %d, want one per profile", len(scores))
	}
	for _, score := range scores {
		if !score.CalculatedAt.Equal(now) {
			t.Fatalf("CalculatedAt = %v, want %v", score.CalculatedAt, now)
		}
	}

	persisted := f.scoreRepo.scoresByGameweek["gw1"]
	if !reflect.DeepEqual(persisted, scores) {
		t.Fatal("persisted scores differ from returned scores")
	}
	if f.scoreRepo.replaceCalls != 1 {
		t.Fatalf("replaceCalls = %d, want 1", f.scoreRepo.replaceCalls)
	}

	byProfile := make(map[string]scoring.Score)
	for _, score := range scores {
		byProfile[score.ProfileID] = score
	}
	if byProfile["u1"].TotalPoints != 10 {
		t.Fatalf("u1 total = %d, want 10 (captain doubling)", byProfile["u1"].TotalPoints)
	}
	if byProfile["u2"].TotalPoints != 0 || byProfile["u3"].TotalPoints != 0 {
		t.Fatal("profiles without picks must get zero rows")
	}
}

func TestRecalculateGameweekRequiresKnownGameweek(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(time.Now())

	if _, err := f.svc.RecalculateGameweek(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("RecalculateGameweek() error = %v, want ErrNotFound", err)
	}
}

func TestRecalculateGameweekReplacesPriorScores(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 14, 0, 0, 0, time.UTC)
	f := newScoringFixture(now)
	ctx := context.Background()

	f.pickRepo.picks[pickKey("u1", "gw1")] = fantasy.Pick{
		ProfileID:   "u1",
		GameweekID:  "gw1",
		PlayerIDs:   []string{"p1", "p2", "p3", "p4"},
		CaptainSlot: 0,
	}
	f.statRepo.statsByGameweek["gw1"] = []matchstat.Stat{
		{GameweekID: "gw1", PlayerID: "p1", Played: true, Goals: 1},
	}
	if _, err := f.svc.RecalculateGameweek(ctx, "gw1"); err != nil {
		t.Fatalf("first RecalculateGameweek() error = %v", err)
	}

	// Corrected stat entry: the goal was actually an assist.
	f.statRepo.statsByGameweek["gw1"] = []matchstat.Stat{
		{GameweekID: "gw1", PlayerID: "p1", Played: true, Assists: 1},
	}
	scores, err := f.svc.RecalculateGameweek(ctx, "gw1")
	if err != nil {
		t.Fatalf("second RecalculateGameweek() error = %v", err)
	}

	for _, score := range scores {
		if score.ProfileID == "u1" && score.TotalPoints != 6 {
			t.Fatalf("u1 total after correction = %d, want 6", score.TotalPoints)
		}
	}
	if len(f.scoreRepo.scoresByGameweek["gw1"]) != 3 {
		t.Fatalf("persisted rows = %d, want 3 (replaced, not appended)", len(f.scoreRepo.scoresByGameweek["gw1"]))
	}
}

type cancelAwareScoreRepo struct {
	*stubScoreRepo
}

func (r *cancelAwareScoreRepo) ReplaceForGameweek(ctx context.Context, gameweekID string, scores []scoring.Score) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.stubScoreRepo.ReplaceForGameweek(ctx, gameweekID, scores)
}

func TestRecalculateGameweekOutlivesCallerCancellation(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 14, 0, 0, 0, time.UTC)
	f := newScoringFixture(now)
	f.svc.scoreRepo = &cancelAwareScoreRepo{stubScoreRepo: f.scoreRepo}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scores, err := f.svc.RecalculateGameweek(ctx, "gw1")
	if err != nil {
		t.Fatalf("RecalculateGameweek() after caller cancel = %v, want shared run to finish", err)
	}
	if len(scores) != 3 {
		t.Fatalf("len(scores) = %d, want one per profile", len(scores))
	}
	if f.scoreRepo.replaceCalls != 1 {
		t.Fatalf("replaceCalls = %d, want 1", f.scoreRepo.replaceCalls)
	}
}

func TestRecalculateAllCoversEveryGameweekWithStats(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 7, 14, 0, 0, 0, time.UTC)
	f := newScoringFixture(now)

	f.statRepo.statsByGameweek["gw1"] = []matchstat.Stat{{GameweekID: "gw1", PlayerID: "p1", Played: true}}
	f.statRepo.statsByGameweek["gw2"] = []matchstat.Stat{{GameweekID: "gw2", PlayerID: "p1", Played: true}}

	done, err := f.svc.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("RecalculateAll() error = %v", err)
	}
	if done != 2 {
		t.Fatalf("recalculated = %d, want 2", done)
	}
	if f.scoreRepo.replaceCalls != 2 {
		t.Fatalf("replaceCalls = %d, want 2", f.scoreRepo.replaceCalls)
	}
}

func TestRecalculateAllNoStatsIsNoop(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(time.Now())

	done, err := f.svc.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("RecalculateAll() error = %v", err)
	}
	if done != 0 {
		t.Fatalf("recalculated = %d, want 0", done)
	}
}

func TestGameweekLeaderboardDenseRanksWithStableTieBreak(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(time.Now())
	f.scoreRepo.scoresByGameweek["gw1"] = []scoring.Score{
		{ProfileID: "u3", GameweekID: "gw1", TotalPoints: 8},
		{ProfileID: "u1", GameweekID: "gw1", TotalPoints: 12},
		{ProfileID: "u2", GameweekID: "gw1", TotalPoints: 8},
	}

	entries, err := f.svc.GameweekLeaderboard(context.Background(), "gw1")
	if err != nil {
		t.Fatalf("GameweekLeaderboard() error = %v", err)
	}

	want := []LeaderboardEntry{
		{Rank: 1, ProfileID: "u1", Username: "alice", TeamName: "Alice FC", Points: 12},
		{Rank: 2, ProfileID: "u2", Username: "bob", TeamName: "Bob United", Points: 8},
		{Rank: 2, ProfileID: "u3", Username: "cara", TeamName: "Cara City", Points: 8},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("entries = %+v\nwant %+v", entries, want)
	}
}

func TestOverallLeaderboardSumsAcrossGameweeks(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(time.Now())
	f.scoreRepo.totals = []scoring.ProfileTotal{
		{ProfileID: "u1", Points: 20},
		{ProfileID: "u2", Points: 31},
	}

	entries, err := f.svc.OverallLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("OverallLeaderboard() error = %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].ProfileID != "u2" || entries[0].Rank != 1 {
		t.Fatalf("entries[0] = %+v, want u2 at rank 1", entries[0])
	}
	if entries[1].ProfileID != "u1" || entries[1].Rank != 2 {
		t.Fatalf("entries[1] = %+v, want u1 at rank 2", entries[1])
	}
}

func TestLeaderboardEmptyWithoutScores(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(time.Now())

	entries, err := f.svc.GameweekLeaderboard(context.Background(), "gw1")
	if err != nil {
		t.Fatalf("GameweekLeaderboard() error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries = %+v, want empty", entries)
	}
}
