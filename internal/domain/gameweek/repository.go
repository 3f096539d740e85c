package gameweek

import (
	"context"
	"time"
)

// Repository describes gameweek persistence needs from use cases.
// NextUpcoming returns the not-yet-completed gameweek with the earliest
// deadline strictly after now.
type Repository interface {
	List(ctx context.Context) ([]Gameweek, error)
	GetByID(ctx context.Context, gameweekID string) (Gameweek, error)
	NextUpcoming(ctx context.Context, now time.Time) (Gameweek, error)
	Create(ctx context.Context, gw Gameweek) error
	Update(ctx context.Context, gw Gameweek) error
	SetCompleted(ctx context.Context, gameweekID string, completed bool) error
}
