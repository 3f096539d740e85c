package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/matchdayhq/fantasy-companion/internal/domain/fantasy"
	"github.com/matchdayhq/fantasy-companion/internal/domain/gameweek"
	"github.com/matchdayhq/fantasy-companion/internal/domain/player"
)

var testDeadline = time.Date(2026, time.March, 7, 11, 0, 0, 0, time.UTC)

func newTestPickService(now time.Time) (*PickService, *stubPickRepo) {
	pickRepo := newStubPickRepo()
	gameweekRepo := newStubGameweekRepo(gameweek.Gameweek{
		ID:          "gw1",
		RoundNumber: 1,
		RoundName:   "Round 1",
		DeadlineAt:  testDeadline,
	})
	playerRepo := newStubPlayerRepo(
		player.Player{ID: "p1", Name: "One", Price: 500},
		player.Player{ID: "p2", Name: "Two", Price: 500},
		player.Player{ID: "p3", Name: "Three", Price: 500},
		player.Player{ID: "p4", Name: "Four", Price: 500},
	)

	svc := NewPickService(pickRepo, gameweekRepo, playerRepo)
	svc.now = func() time.Time { return now }
	return svc, pickRepo
}

func TestSaveRosterPersistsAcceptedPick(t *testing.T) {
	t.Parallel()

	now := testDeadline.Add(-time.Hour)
	svc, pickRepo := newTestPickService(now)

	pick, err := svc.SaveRoster(context.Background(), "u1", "gw1", []string{"p1", "p2", "p3", "p4"}, "p2")
	if err != nil {
		t.Fatalf("SaveRoster() error = %v", err)
	}

	if pick.CaptainSlot != 1 {
		t.Fatalf("CaptainSlot = %d, want 1", pick.CaptainSlot)
	}
	if !pick.UpdatedAt.Equal(now) {
		t.Fatalf("UpdatedAt = %v, want %v", pick.UpdatedAt, now)
	}
	if pickRepo.upserts != 1 {
		t.Fatalf("upserts = %d, want 1", pickRepo.upserts)
	}

	stored := pickRepo.picks[pickKey("u1", "gw1")]
	if !reflect.DeepEqual(stored.PlayerIDs, []string{"p1", "p2", "p3", "p4"}) {
		t.Fatalf("stored PlayerIDs = %v", stored.PlayerIDs)
	}
}

func TestSaveRosterResubmissionReplaces(t *testing.T) {
	t.Parallel()

	svc, pickRepo := newTestPickService(testDeadline.Add(-time.Hour))
	ctx := context.Background()

	if _, err := svc.SaveRoster(ctx, "u1", "gw1", []string{"p1", "p2", "p3", "p4"}, "p1"); err != nil {
		t.Fatalf("first SaveRoster() error = %v", err)
	}
	if _, err := svc.SaveRoster(ctx, "u1", "gw1", []string{"p1", "p2", "p3", "p4"}, "p4"); err != nil {
		t.Fatalf("second SaveRoster() error = %v", err)
	}

	if len(pickRepo.picks) != 1 {
		t.Fatalf("stored picks = %d, want 1 after resubmission", len(pickRepo.picks))
	}
	if got := pickRepo.picks[pickKey("u1", "gw1")].CaptainSlot; got != 3 {
		t.Fatalf("CaptainSlot after resubmission = %d, want 3", got)
	}
}

func TestSaveRosterDeadlineBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{name: "exactly at deadline accepted", now: testDeadline},
		{name: "one microsecond late rejected", now: testDeadline.Add(time.Microsecond), wantErr: fantasy.ErrDeadlinePassed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newTestPickService(tt.now)
			_, err := svc.SaveRoster(context.Background(), "u1", "gw1", []string{"p1", "p2", "p3", "p4"}, "p1")
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("SaveRoster() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SaveRoster() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRosterBudgetBoundary(t *testing.T) {
	t.Parallel()

	svc, _ := newTestPickService(testDeadline.Add(-time.Hour))
	ctx := context.Background()

	// Four players at 5.00M each sit exactly on the 20M cap.
	if _, err := svc.SaveRoster(ctx, "u1", "gw1", []string{"p1", "p2", "p3", "p4"}, "p1"); err != nil {
		t.Fatalf("SaveRoster() at cap error = %v, want nil", err)
	}

	svc2, _ := newTestPickService(testDeadline.Add(-time.Hour))
	svc2.playerRepo = newStubPlayerRepo(
		player.Player{ID: "p1", Name: "One", Price: 500},
		player.Player{ID: "p2", Name: "Two", Price: 500},
		player.Player{ID: "p3", Name: "Three", Price: 500},
		player.Player{ID: "p4", Name: "Four", Price: 501},
	)
	_, err := svc2.SaveRoster(ctx, "u1", "gw1", []string{"p1", "p2", "p3", "p4"}, "p1")
	if !errors.Is(err, fantasy.ErrBudgetExceeded) {
		t.Fatalf("SaveRoster() over cap error = %v, want ErrBudgetExceeded", err)
	}
}

func TestSaveRosterUnknownPlayerIsHardFailure(t *testing.T) {
	t.Parallel()

	svc, pickRepo := newTestPickService(testDeadline.Add(-time.Hour))

	_, err := svc.SaveRoster(context.Background(), "u1", "gw1", []string{"p1", "p2", "p3", "ghost"}, "p1")
	if !errors.Is(err, fantasy.ErrUnknownPlayer) {
		t.Fatalf("SaveRoster() error = %v, want ErrUnknownPlayer", err)
	}
	if pickRepo.upserts != 0 {
		t.Fatalf("upserts = %d, want 0 on rejection", pickRepo.upserts)
	}
}

func TestSaveRosterUnknownGameweek(t *testing.T) {
	t.Parallel()

	svc, _ := newTestPickService(testDeadline.Add(-time.Hour))

	_, err := svc.SaveRoster(context.Background(), "u1", "missing", []string{"p1", "p2", "p3", "p4"}, "p1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("SaveRoster() error = %v, want ErrNotFound", err)
	}
}

func TestValidateRosterReportsReasonWithoutError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		playerIDs  []string
		captainID  string
		wantReason string
	}{
		{
			name:       "duplicate selection",
			playerIDs:  []string{"p1", "p1", "p2", "p3"},
			captainID:  "p1",
			wantReason: fantasy.ReasonDuplicateSelection,
		},
		{
			name:       "captain not selected",
			playerIDs:  []string{"p1", "p2", "p3", "p4"},
			captainID:  "p9",
			wantReason: fantasy.ReasonCaptainNotSelected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, _ := newTestPickService(testDeadline.Add(-time.Hour))
			decision, err := svc.ValidateRoster(context.Background(), "gw1", tt.playerIDs, tt.captainID)
			if err != nil {
				t.Fatalf("ValidateRoster() error = %v, want nil", err)
			}
			if decision.Accepted {
				t.Fatal("decision.Accepted = true, want false")
			}
			if decision.Reason != tt.wantReason {
				t.Fatalf("decision.Reason = %q, want %q", decision.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidateRosterAccepted(t *testing.T) {
	t.Parallel()

	svc, pickRepo := newTestPickService(testDeadline.Add(-time.Hour))

	decision, err := svc.ValidateRoster(context.Background(), "gw1", []string{"p1", "p2", "p3", "p4"}, "p3")
	if err != nil {
		t.Fatalf("ValidateRoster() error = %v", err)
	}
	if !decision.Accepted {
		t.Fatalf("decision = %+v, want accepted", decision)
	}
	if decision.CaptainSlot != 2 {
		t.Fatalf("CaptainSlot = %d, want 2", decision.CaptainSlot)
	}
	if pickRepo.upserts != 0 {
		t.Fatal("dry-run validation persisted a pick")
	}
}

func TestGetRosterNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestPickService(testDeadline.Add(-time.Hour))

	_, err := svc.GetRoster(context.Background(), "u1", "gw1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetRoster() error = %v, want ErrNotFound", err)
	}
}
