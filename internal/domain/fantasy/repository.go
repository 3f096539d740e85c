package fantasy

import "context"

// Repository describes pick persistence needs from use cases.
// Upsert replaces any existing pick for the same (profile, gameweek).
type Repository interface {
	Upsert(ctx context.Context, pick Pick) error
	GetByProfileAndGameweek(ctx context.Context, profileID, gameweekID string) (Pick, error)
	ListByGameweek(ctx context.Context, gameweekID string) ([]Pick, error)
}
