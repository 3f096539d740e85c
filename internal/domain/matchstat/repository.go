package matchstat

import "context"

// Repository describes stat persistence needs from use cases.
// ReplaceForGameweek swaps the full stat set for a gameweek in one
// transaction: prior rows are removed, not merged.
type Repository interface {
	ReplaceForGameweek(ctx context.Context, gameweekID string, stats []Stat) error
	ListByGameweek(ctx context.Context, gameweekID string) ([]Stat, error)
	ListGameweekIDsWithStats(ctx context.Context) ([]string, error)
}
