package fantasy

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrDeadlinePassed     = errors.New("gameweek deadline passed")
	ErrInvalidRosterSize  = errors.New("invalid roster size")
	ErrDuplicatePlayer    = errors.New("duplicate player in roster")
	ErrCaptainNotInRoster = errors.New("captain not in roster")
	ErrBudgetExceeded     = errors.New("budget cap exceeded")
	ErrUnknownPlayer      = errors.New("unknown player")
)

// Rejection reasons reported to clients.
const (
	ReasonDeadlinePassed     = "DEADLINE_PASSED"
	ReasonInvalidRosterSize  = "INVALID_ROSTER_SIZE"
	ReasonDuplicateSelection = "DUPLICATE_SELECTION"
	ReasonCaptainNotSelected = "CAPTAIN_NOT_SELECTED"
	ReasonBudgetExceeded     = "BUDGET_EXCEEDED"
	ReasonUnknownPlayer      = "UNKNOWN_PLAYER"
)

// Rules holds roster validation parameters. BudgetCap is in hundredths
// of a million, matching player prices.
type Rules struct {
	BudgetCap int64
}

func DefaultRules() Rules {
	return Rules{BudgetCap: 2000}
}

// ValidateRoster applies the submission rules in a fixed order so the
// first failing rule determines the reported reason: deadline, roster
// size, uniqueness, captain membership, budget. A submission exactly at
// the deadline is still accepted; a total exactly at the cap is still
// accepted. A candidate missing from prices aborts the budget check with
// ErrUnknownPlayer rather than pricing it at zero.
//
// On success it returns the captain's slot index within playerIDs.
func ValidateRoster(now, deadline time.Time, playerIDs []string, captainID string, prices map[string]int64, rules Rules) (int, error) {
	if now.After(deadline) {
		return 0, fmt.Errorf("%w: deadline=%s", ErrDeadlinePassed, deadline.UTC().Format(time.RFC3339))
	}

	if len(playerIDs) != RosterSize {
		return 0, fmt.Errorf("%w: expected %d, got %d", ErrInvalidRosterSize, RosterSize, len(playerIDs))
	}

	seen := make(map[string]struct{}, RosterSize)
	for _, playerID := range playerIDs {
		if playerID == "" {
			return 0, fmt.Errorf("%w: empty player id", ErrInvalidRosterSize)
		}
		if _, dup := seen[playerID]; dup {
			return 0, fmt.Errorf("%w: %s", ErrDuplicatePlayer, playerID)
		}
		seen[playerID] = struct{}{}
	}

	captainSlot := -1
	for slot, playerID := range playerIDs {
		if playerID == captainID {
			captainSlot = slot
			break
		}
	}
	if captainSlot < 0 {
		return 0, fmt.Errorf("%w: %s", ErrCaptainNotInRoster, captainID)
	}

	var totalCost int64
	for _, playerID := range playerIDs {
		price, ok := prices[playerID]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
		}
		totalCost += price
	}
	if totalCost > rules.BudgetCap {
		return 0, fmt.Errorf("%w: cap=%d used=%d", ErrBudgetExceeded, rules.BudgetCap, totalCost)
	}

	return captainSlot, nil
}

// RejectionReason maps a validation error onto the wire taxonomy.
// It returns "" for errors outside the taxonomy.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrDeadlinePassed):
		return ReasonDeadlinePassed
	case errors.Is(err, ErrInvalidRosterSize):
		return ReasonInvalidRosterSize
	case errors.Is(err, ErrDuplicatePlayer):
		return ReasonDuplicateSelection
	case errors.Is(err, ErrCaptainNotInRoster):
		return ReasonCaptainNotSelected
	case errors.Is(err, ErrBudgetExceeded):
		return ReasonBudgetExceeded
	case errors.Is(err, ErrUnknownPlayer):
		return ReasonUnknownPlayer
	default:
		return ""
	}
}
