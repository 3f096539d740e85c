package scoring

import (
	"time"

	"github.com/matchdayhq/fantasy-companion/internal/domain/fantasy"
)

// Score is the computed result for one (profile, gameweek) pair. It is
// derived data: recomputable at any time from picks and stats, persisted
// via upsert keyed on the pair.
type Score struct {
	ProfileID    string
	GameweekID   string
	SlotPoints   [fantasy.RosterSize]int
	CaptainBonus int
	TotalPoints  int
	CalculatedAt time.Time
}

// ProfileTotal is one leaderboard aggregation input: a profile's summed
// points over some set of gameweeks.
type ProfileTotal struct {
	ProfileID string
	Points    int
}
