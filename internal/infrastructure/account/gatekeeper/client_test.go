package gatekeeper

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matchdayhq/fantasy-companion/internal/platform/logging"
	"github.com/matchdayhq/fantasy-companion/internal/platform/resilience"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

func newIntrospectServer(t *testing.T, hits *atomic.Int64, handler func(w http.ResponseWriter, token string)) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodPost || r.URL.Path != "/v1/auth/introspect" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req introspectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode introspect request: %v", err)
		}
		handler(w, req.Token)
	}))
}

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:        baseURL,
		IntrospectPath: "/v1/auth/introspect",
		Timeout:        time.Second,
		CacheTTL:       time.Minute,
		CacheMax:       16,
		Logger:         logging.Nop(),
		Breaker:        resilience.BreakerConfig{Enabled: false},
	})
}

func TestVerifyAccessToken_CachesActivePrincipal(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := newIntrospectServer(t, &hits, func(w http.ResponseWriter, token string) {
		if token != "good-token" {
			t.Errorf("unexpected token: %s", token)
		}
		_ = json.NewEncoder(w).Encode(introspectResponse{
			Active:  true,
			UserID:  "u-001",
			Email:   "member@example.com",
			IsAdmin: true,
		})
	})
	defer srv.Close()

	client := newTestClient(srv.URL)

	for i := 0; i < 3; i++ {
		principal, err := client.VerifyAccessToken(context.Background(), "good-token")
		if err != nil {
			t.Fatalf("verify call %d: %v", i, err)
		}
		if principal.UserID != "u-001" || !principal.IsAdmin {
			t.Fatalf("unexpected principal on call %d: %+v", i, principal)
		}
	}

	if got := hits.Load(); got != 1 {
		t.Fatalf("introspection hits: got=%d want=1", got)
	}
}

func TestVerifyAccessToken_InactiveTokenIsUnauthorized(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := newIntrospectServer(t, &hits, func(w http.ResponseWriter, _ string) {
		_ = json.NewEncoder(w).Encode(introspectResponse{Active: false})
	})
	defer srv.Close()

	client := newTestClient(srv.URL)

	if _, err := client.VerifyAccessToken(context.Background(), "stale-token"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// Denials are not cached; each attempt re-asks the identity service.
	if _, err := client.VerifyAccessToken(context.Background(), "stale-token"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized on retry, got %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("introspection hits: got=%d want=2", got)
	}
}

func TestVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := newTestClient("http://localhost:0")

	if _, err := client.VerifyAccessToken(context.Background(), "   "); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestVerifyAccessToken_BreakerOpensAfterOutage(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := newIntrospectServer(t, &hits, func(w http.ResponseWriter, _ string) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:        srv.URL,
		IntrospectPath: "/v1/auth/introspect",
		Timeout:        time.Second,
		Logger:         logging.Nop(),
		Breaker: resilience.BreakerConfig{
			Enabled:     true,
			MaxFailures: 2,
			Cooldown:    time.Minute,
			ProbeLimit:  1,
		},
	})

	for i := 0; i < 2; i++ {
		if _, err := client.VerifyAccessToken(context.Background(), "any-token"); err == nil {
			t.Fatalf("expected failure on call %d", i)
		}
	}

	_, err := client.VerifyAccessToken(context.Background(), "any-token")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable once open, got %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("introspection hits after breaker opened: got=%d want=2", got)
	}
}

func TestJoinURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		base string
		path string
		want string
	}{
		{name: "slash joined", base: "http://auth.local/", path: "v1/auth/introspect", want: "http://auth.local/v1/auth/introspect"},
		{name: "absolute path wins", base: "http://auth.local", path: "https://other.local/introspect", want: "https://other.local/introspect"},
		{name: "empty path", base: "http://auth.local/", path: "", want: "http://auth.local"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := joinURL(tc.base, tc.path); got != tc.want {
				t.Fatalf("got=%q want=%q", got, tc.want)
			}
		})
	}
}
