package matchstat

import "fmt"

// Stat is one player's recorded performance in one gameweek. Absent
// counts default to zero; scoring tolerates out-of-range values.
type Stat struct {
	GameweekID  string
	PlayerID    string
	Played      bool
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
}

func (s Stat) Validate() error {
	if s.GameweekID == "" {
		return fmt.Errorf("gameweek id is required")
	}
	if s.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}
	if s.Goals < 0 || s.Assists < 0 || s.YellowCards < 0 || s.RedCards < 0 {
		return fmt.Errorf("stat counts must not be negative")
	}

	return nil
}

// Anomalies reports advisory range violations. Entry stays accepted;
// callers log these instead of rejecting.
func (s Stat) Anomalies() []string {
	var notes []string
	if s.YellowCards > 2 {
		notes = append(notes, fmt.Sprintf("yellow_cards=%d above expected max 2", s.YellowCards))
	}
	if s.RedCards > 1 {
		notes = append(notes, fmt.Sprintf("red_cards=%d above expected max 1", s.RedCards))
	}
	if !s.Played && (s.Goals > 0 || s.Assists > 0 || s.YellowCards > 0 || s.RedCards > 0) {
		notes = append(notes, "counts recorded for a player marked as not played")
	}

	return notes
}
