package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/matchdayhq/fantasy-companion/internal/platform/cache"
)

const feedMatchesCacheKey = "feed:matches"

// FeedMatch is one upstream tournament fixture as shown in the app's
// match feed. Scores are nil until the upstream provider reports them.
type FeedMatch struct {
	MatchID    string
	HomeTeam   string
	AwayTeam   string
	KickoffAt  time.Time
	Status     string
	HomeScore  *int
	AwayScore  *int
	Venue      string
	RoundLabel string
}

// MatchFetcher pulls the current match list from the upstream provider.
type MatchFetcher interface {
	FetchMatches(ctx context.Context) ([]FeedMatch, error)
}

// FeedService fronts the upstream provider with a short-lived cache so a
// timeline refresh storm costs one upstream call.
type FeedService struct {
	fetcher MatchFetcher
	cache   *cache.Store
}

func NewFeedService(fetcher MatchFetcher, store *cache.Store) *FeedService {
	return &FeedService{fetcher: fetcher, cache: store}
}

func (s *FeedService) Matches(ctx context.Context) ([]FeedMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "FeedService.Matches")
	defer span.End()

	out, err := s.cache.GetOrLoad(ctx, feedMatchesCacheKey, func(ctx context.Context) (any, error) {
		matches, err := s.fetcher.FetchMatches(ctx)
		if err != nil {
			return nil, err
		}
		return matches, nil
	})
	if err != nil {
		return nil, err
	}

	matches, ok := out.([]FeedMatch)
	if !ok {
		return nil, fmt.Errorf("unexpected cached feed type %T", out)
	}
	return matches, nil
}
