package fantasy

import (
	"errors"
	"testing"
	"time"
)

type rosterInput struct {
	now       time.Time
	deadline  time.Time
	playerIDs []string
	captainID string
	prices    map[string]int64
}

func validRosterInput() rosterInput {
	deadline := time.Date(2026, time.March, 7, 11, 0, 0, 0, time.UTC)
	return rosterInput{
		now:       deadline.Add(-time.Hour),
		deadline:  deadline,
		playerIDs: []string{"p1", "p2", "p3", "p4"},
		captainID: "p1",
		prices: map[string]int64{
			"p1": 500,
			"p2": 500,
			"p3": 500,
			"p4": 500,
		},
	}
}

func TestValidateRoster(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(in *rosterInput)
		wantSlot int
		wantErr  error
	}{
		{
			name:     "valid roster under cap",
			mutate:   func(in *rosterInput) {},
			wantSlot: 0,
		},
		{
			name: "captain in later slot",
			mutate: func(in *rosterInput) {
				in.captainID = "p3"
			},
			wantSlot: 2,
		},
		{
			name: "submission exactly at deadline accepted",
			mutate: func(in *rosterInput) {
				in.now = in.deadline
			},
			wantSlot: 0,
		},
		{
			name: "submission one microsecond late rejected",
			mutate: func(in *rosterInput) {
				in.now = in.deadline.Add(time.Microsecond)
			},
			wantErr: ErrDeadlinePassed,
		},
		{
			name: "deadline outranks duplicate",
			mutate: func(in *rosterInput) {
				in.now = in.deadline.Add(time.Second)
				in.playerIDs = []string{"p1", "p1", "p2", "p3"}
			},
			wantErr: ErrDeadlinePassed,
		},
		{
			name: "three players rejected",
			mutate: func(in *rosterInput) {
				in.playerIDs = in.playerIDs[:3]
			},
			wantErr: ErrInvalidRosterSize,
		},
		{
			name: "duplicate selection rejected",
			mutate: func(in *rosterInput) {
				in.playerIDs = []string{"p1", "p1", "p2", "p3"}
			},
			wantErr: ErrDuplicatePlayer,
		},
		{
			name: "duplicate outranks captain and budget",
			mutate: func(in *rosterInput) {
				in.playerIDs = []string{"p1", "p1", "p2", "p3"}
				in.captainID = "p9"
				in.prices["p1"] = 10000
			},
			wantErr: ErrDuplicatePlayer,
		},
		{
			name: "captain outside roster rejected",
			mutate: func(in *rosterInput) {
				in.captainID = "p9"
			},
			wantErr: ErrCaptainNotInRoster,
		},
		{
			name: "total exactly at cap accepted",
			mutate: func(in *rosterInput) {
				in.prices = map[string]int64{"p1": 500, "p2": 500, "p3": 500, "p4": 500}
			},
			wantSlot: 0,
		},
		{
			name: "total one hundredth over cap rejected",
			mutate: func(in *rosterInput) {
				in.prices["p4"] = 501
			},
			wantErr: ErrBudgetExceeded,
		},
		{
			name: "unpriced player is a hard failure",
			mutate: func(in *rosterInput) {
				delete(in.prices, "p3")
			},
			wantErr: ErrUnknownPlayer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := validRosterInput()
			tt.mutate(&in)

			slot, err := ValidateRoster(in.now, in.deadline, in.playerIDs, in.captainID, in.prices, DefaultRules())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ValidateRoster() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateRoster() error = %v, want nil", err)
			}
			if slot != tt.wantSlot {
				t.Fatalf("captain slot = %d, want %d", slot, tt.wantSlot)
			}
		})
	}
}

func TestRejectionReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrDeadlinePassed, ReasonDeadlinePassed},
		{ErrInvalidRosterSize, ReasonInvalidRosterSize},
		{ErrDuplicatePlayer, ReasonDuplicateSelection},
		{ErrCaptainNotInRoster, ReasonCaptainNotSelected},
		{ErrBudgetExceeded, ReasonBudgetExceeded},
		{ErrUnknownPlayer, ReasonUnknownPlayer},
		{errors.New("database on fire"), ""},
	}

	for _, tt := range tests {
		if got := RejectionReason(tt.err); got != tt.want {
			t.Fatalf("RejectionReason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestPickCaptainID(t *testing.T) {
	t.Parallel()

	pick := Pick{PlayerIDs: []string{"p1", "p2", "p3", "p4"}, CaptainSlot: 2}
	if got := pick.CaptainID(); got != "p3" {
		t.Fatalf("CaptainID() = %q, want p3", got)
	}

	pick.CaptainSlot = 7
	if got := pick.CaptainID(); got != "" {
		t.Fatalf("CaptainID() with stale slot = %q, want empty", got)
	}
}
