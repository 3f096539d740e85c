// Package feed pulls the public tournament match list from the upstream
// provider that the mobile app's timeline is built on.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/matchdayhq/fantasy-companion/internal/platform/logging"
	"github.com/matchdayhq/fantasy-companion/internal/platform/resilience"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

const defaultMatchesPath = "/v1/tournament/matches"

var errFeedTransient = crerr.New("feed transient failure")

type ClientConfig struct {
	HTTPClient  *http.Client
	BaseURL     string
	MatchesPath string
	Timeout     time.Duration
	MaxRetries  int
	Logger      *logging.Logger
	Breaker     resilience.BreakerConfig
}

type Client struct {
	httpClient     *http.Client
	matchesURL     string
	maxRetries     int
	logger         *logging.Logger
	flight         resilience.Flight
	breaker        *resilience.Breaker
	breakerEnabled bool
}

var _ usecase.MatchFetcher = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	path := strings.TrimSpace(cfg.MatchesPath)
	if path == "" {
		path = defaultMatchesPath
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	breakerCfg := resilience.NormalizeBreakerConfig(cfg.Breaker)

	return &Client{
		httpClient:     httpClient,
		matchesURL:     strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/") + path,
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewBreaker(breakerCfg.MaxFailures, breakerCfg.Cooldown, breakerCfg.ProbeLimit),
		breakerEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchMatches(ctx context.Context) ([]usecase.FeedMatch, error) {
	if c.breakerEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "feed breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: match feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do("feed:fetch-matches", func() (any, error) {
		matches, fetchErr := c.fetchOnce(ctx)
		if c.breakerEnabled {
			if fetchErr != nil && crerr.Is(fetchErr, errFeedTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return matches, fetchErr
	})
	if err != nil {
		return nil, err
	}

	matches, ok := out.([]usecase.FeedMatch)
	if !ok {
		return nil, fmt.Errorf("unexpected feed payload type %T", out)
	}
	return matches, nil
}

func (c *Client) fetchOnce(ctx context.Context) ([]usecase.FeedMatch, error) {
	raw, err := c.execute(ctx)
	if err != nil {
		return nil, err
	}

	var envelope matchesEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode feed payload: %w", err)
	}

	out := make([]usecase.FeedMatch, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		match := usecase.FeedMatch{
			MatchID:    strings.TrimSpace(item.ID),
			HomeTeam:   strings.TrimSpace(item.HomeTeam),
			AwayTeam:   strings.TrimSpace(item.AwayTeam),
			Status:     normalizeStatus(item.Status),
			HomeScore:  item.HomeScore,
			AwayScore:  item.AwayScore,
			Venue:      strings.TrimSpace(item.Venue),
			RoundLabel: strings.TrimSpace(item.Round),
		}
		if parsed := parseKickoff(item.KickoffAt); parsed != nil {
			match.KickoffAt = *parsed
		}
		if match.MatchID == "" || match.HomeTeam == "" || match.AwayTeam == "" {
			continue
		}
		out = append(out, match)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].MatchID < out[j].MatchID
	})
	return out, nil
}

func (c *Client) execute(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.matchesURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build feed request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		raw, err := c.readResponse(req)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !crerr.Is(err, errFeedTransient) {
			return nil, err
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "feed request failed", "url", c.matchesURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) readResponse(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send feed request: %v", errFeedTransient, err)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := io.Copy(buf, io.LimitReader(resp.Body, 4<<20)); err != nil {
		return nil, fmt.Errorf("%w: read feed response: %v", errFeedTransient, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if isRetryableStatus(resp.StatusCode) {
			return nil, fmt.Errorf("%w: feed status=%d", errFeedTransient, resp.StatusCode)
		}
		return nil, fmt.Errorf("feed status=%d", resp.StatusCode)
	}

	// The pooled buffer is recycled on return, so hand back a copy.
	raw := make([]byte, buf.Len())
	copy(raw, buf.Bytes())
	return raw, nil
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

type matchesEnvelope struct {
	Data []matchItem `json:"data"`
}

type matchItem struct {
	ID        string `json:"id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	KickoffAt string `json:"kickoff_at"`
	Status    string `json:"status"`
	HomeScore *int   `json:"home_score"`
	AwayScore *int   `json:"away_score"`
	Venue     string `json:"venue"`
	Round     string `json:"round"`
}

func normalizeStatus(raw string) string {
	value := strings.ToUpper(strings.TrimSpace(raw))
	switch value {
	case "SCHEDULED", "LIVE", "FINISHED", "POSTPONED", "CANCELLED":
		return value
	case "":
		return "SCHEDULED"
	default:
		return value
	}
}

func parseKickoff(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	layouts := []string{time.RFC3339, "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}
