package gameweek

import (
	"fmt"
	"time"
)

// Gameweek is one scoring period tied to a real-world round of matches.
// DeadlineAt gates roster submissions; IsCompleted is a workflow marker
// for the admin surface and never feeds validation.
type Gameweek struct {
	ID          string
	RoundNumber int
	RoundName   string
	MatchDate   time.Time
	DeadlineAt  time.Time
	IsCompleted bool
}

func (g Gameweek) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("gameweek id is required")
	}
	if g.RoundNumber <= 0 {
		return fmt.Errorf("round number must be greater than zero")
	}
	if g.DeadlineAt.IsZero() {
		return fmt.Errorf("deadline is required")
	}

	return nil
}
