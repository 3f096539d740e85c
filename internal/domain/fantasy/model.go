package fantasy

import (
	"fmt"
	"time"
)

// RosterSize is the fixed number of players in a gameweek roster.
const RosterSize = 4

// Pick is one participant's roster for one gameweek. At most one pick
// exists per (profile, gameweek) pair; resubmission replaces it.
type Pick struct {
	ProfileID  string
	GameweekID string
	PlayerIDs  []string
	// CaptainSlot indexes PlayerIDs. It is fixed when the roster is
	// accepted; out-of-range values mean no captain bonus.
	CaptainSlot int
	UpdatedAt   time.Time
}

// CaptainID returns the captain's player id, or "" when the stored slot
// no longer points inside the roster.
func (p Pick) CaptainID() string {
	if p.CaptainSlot < 0 || p.CaptainSlot >= len(p.PlayerIDs) {
		return ""
	}
	return p.PlayerIDs[p.CaptainSlot]
}

func (p Pick) ValidateBasic() error {
	if p.ProfileID == "" {
		return fmt.Errorf("profile id is required")
	}
	if p.GameweekID == "" {
		return fmt.Errorf("gameweek id is required")
	}
	if len(p.PlayerIDs) != RosterSize {
		return fmt.Errorf("roster must have %d players, got %d", RosterSize, len(p.PlayerIDs))
	}

	return nil
}
