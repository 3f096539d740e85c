// Package gatekeeper verifies access tokens against the identity service
// that fronts the mobile app. Verified principals are cached briefly so a
// burst of requests from one session does not hammer the introspection
// endpoint.
package gatekeeper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/matchdayhq/fantasy-companion/internal/domain/user"
	"github.com/matchdayhq/fantasy-companion/internal/platform/logging"
	"github.com/matchdayhq/fantasy-companion/internal/platform/resilience"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

var errGatekeeperTransient = crerr.New("gatekeeper transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	IntrospectPath string
	Timeout        time.Duration
	CacheTTL       time.Duration
	CacheMax       int
	Logger         *logging.Logger
	Breaker        resilience.BreakerConfig
}

type Client struct {
	httpClient     *http.Client
	introspectURL  string
	logger         *logging.Logger
	cache          *principalCache
	flight         resilience.Flight
	breaker        *resilience.Breaker
	breakerEnabled bool
}

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
		httpClient.Timeout = 10 * time.Second
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	cacheMax := cfg.CacheMax
	if cacheMax <= 0 {
		cacheMax = 4096
	}
	breakerCfg := resilience.NormalizeBreakerConfig(cfg.Breaker)

	return &Client{
		httpClient:     httpClient,
		introspectURL:  joinURL(cfg.BaseURL, cfg.IntrospectPath),
		logger:         logger,
		cache:          newPrincipalCache(cacheTTL, cacheMax),
		breaker:        resilience.NewBreaker(breakerCfg.MaxFailures, breakerCfg.Cooldown, breakerCfg.ProbeLimit),
		breakerEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	cacheKey := hashToken(token)
	if principal, ok := c.cache.Get(cacheKey); ok {
		return principal, nil
	}

	out, err, _ := c.flight.Do("gatekeeper:introspect:"+cacheKey, func() (any, error) {
		return c.introspect(ctx, token)
	})
	if err != nil {
		return user.Principal{}, err
	}

	principal, ok := out.(user.Principal)
	if !ok {
		return user.Principal{}, fmt.Errorf("unexpected introspection result type %T", out)
	}
	c.cache.Set(cacheKey, principal)
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	if c.breakerEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "gatekeeper breaker rejected introspection", "state", c.breaker.State())
			return user.Principal{}, fmt.Errorf("%w: identity service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	principal, err := c.doIntrospect(ctx, token)
	if c.breakerEnabled {
		if err != nil && crerr.Is(err, errGatekeeperTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return principal, err
}

func (c *Client) doIntrospect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, fmt.Errorf("create introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: request introspection: %v", errGatekeeperTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return user.Principal{}, fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: read introspect response: %v", errGatekeeperTransient, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "gatekeeper introspection non-200", "status_code", resp.StatusCode)
		if resp.StatusCode >= http.StatusInternalServerError {
			return user.Principal{}, fmt.Errorf("%w: introspection status %d", errGatekeeperTransient, resp.StatusCode)
		}
		return user.Principal{}, fmt.Errorf("introspection failed with status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("unmarshal introspect response: %w", err)
	}

	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("invalid introspect response: user_id is empty")
	}

	return user.Principal{
		UserID:  decoded.UserID,
		Email:   decoded.Email,
		IsAdmin: decoded.IsAdmin,
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active  bool   `json:"active"`
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

func joinURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseURL + path
}
