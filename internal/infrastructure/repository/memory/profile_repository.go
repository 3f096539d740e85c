package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/matchdayhq/fantasy-companion/internal/domain/profile"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]profile.Profile
}

var _ profile.Repository = (*ProfileRepository)(nil)

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: map[string]profile.Profile{}}
}

// Put registers or replaces a profile. The directory is normally synced
// from the identity provider, so there is no create/update split here.
func (r *ProfileRepository) Put(p profile.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
}

func (r *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profile.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, profileID string) (profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[profileID]
	if !ok {
		return profile.Profile{}, fmt.Errorf("%w: profile %s", usecase.ErrNotFound, profileID)
	}
	return p, nil
}

func (r *ProfileRepository) GetByIDs(ctx context.Context, profileIDs []string) ([]profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profile.Profile, 0, len(profileIDs))
	for _, profileID := range profileIDs {
		if p, ok := r.profiles[profileID]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
