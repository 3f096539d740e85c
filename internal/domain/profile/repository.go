package profile

import "context"

// Repository describes participant directory reads from use cases.
type Repository interface {
	List(ctx context.Context) ([]Profile, error)
	GetByID(ctx context.Context, profileID string) (Profile, error)
	GetByIDs(ctx context.Context, profileIDs []string) ([]Profile, error)
}
