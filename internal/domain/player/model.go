package player

import (
	"fmt"
	"math"
)

// Player is a draftable athlete in the companion's catalog. Position is
// a free-form display tag; prices are stored in hundredths of a million
// so budget arithmetic stays integral.
type Player struct {
	ID       string
	Name     string
	Position string
	Price    int64
	ImageURL string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("player price must not be negative")
	}

	return nil
}

// PriceFromMillions converts a display price (e.g. 5.5) to hundredths.
func PriceFromMillions(millions float64) int64 {
	return int64(math.Round(millions * 100))
}

// PriceToMillions converts a stored price back to display units.
func PriceToMillions(price int64) float64 {
	return float64(price) / 100
}
