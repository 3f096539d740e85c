package scoring

import "context"

// Repository describes score persistence needs from use cases.
// ReplaceForGameweek upserts every row keyed on (profile, gameweek) so
// a recalculation fully supersedes prior results.
type Repository interface {
	ReplaceForGameweek(ctx context.Context, gameweekID string, scores []Score) error
	ListByGameweek(ctx context.Context, gameweekID string) ([]Score, error)
	ListByProfile(ctx context.Context, profileID string) ([]Score, error)
	TotalsAcrossGameweeks(ctx context.Context) ([]ProfileTotal, error)
}
