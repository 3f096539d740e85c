package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/matchdayhq/fantasy-companion/internal/config"
	"github.com/matchdayhq/fantasy-companion/internal/domain/fantasy"
	"github.com/matchdayhq/fantasy-companion/internal/domain/gameweek"
	"github.com/matchdayhq/fantasy-companion/internal/domain/matchstat"
	"github.com/matchdayhq/fantasy-companion/internal/domain/player"
	"github.com/matchdayhq/fantasy-companion/internal/domain/profile"
	"github.com/matchdayhq/fantasy-companion/internal/domain/scoring"
	"github.com/matchdayhq/fantasy-companion/internal/infrastructure/account/gatekeeper"
	"github.com/matchdayhq/fantasy-companion/internal/infrastructure/feed"
	"github.com/matchdayhq/fantasy-companion/internal/infrastructure/repository/memory"
	"github.com/matchdayhq/fantasy-companion/internal/infrastructure/repository/postgres"
	"github.com/matchdayhq/fantasy-companion/internal/interfaces/httpapi"
	"github.com/matchdayhq/fantasy-companion/internal/platform/cache"
	"github.com/matchdayhq/fantasy-companion/internal/platform/id"
	"github.com/matchdayhq/fantasy-companion/internal/platform/logging"
	"github.com/matchdayhq/fantasy-companion/internal/platform/resilience"
	"github.com/matchdayhq/fantasy-companion/internal/usecase"
)

// App owns the HTTP server and the resources behind it.
type App struct {
	Server *http.Server

	db     *sqlx.DB
	logger *logging.Logger
}

type repositories struct {
	players   player.Repository
	gameweeks gameweek.Repository
	picks     fantasy.Repository
	stats     matchstat.Repository
	scores    scoring.Repository
	profiles  profile.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		repos repositories
		db    *sqlx.DB
		err   error
	)
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		stores := memory.NewStores()
		if err := stores.Seed(ctx, time.Now().UTC()); err != nil {
			return nil, fmt.Errorf("seed memory stores: %w", err)
		}
		repos = repositories{
			players:   stores.Players,
			gameweeks: stores.Gameweeks,
			picks:     stores.Picks,
			stats:     stores.Stats,
			scores:    stores.Scores,
			profiles:  stores.Profiles,
		}
		logger.Info("using in-memory stores", "reason", "STORE_DRIVER=memory")
	case config.StoreDriverPostgres:
		db, err = openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		repos = repositories{
			players:   postgres.NewPlayerRepository(db),
			gameweeks: postgres.NewGameweekRepository(db),
			picks:     postgres.NewPickRepository(db),
			stats:     postgres.NewMatchStatRepository(db),
			scores:    postgres.NewScoreRepository(db),
			profiles:  postgres.NewProfileRepository(db),
		}
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	newCache := func() *cache.Store {
		if !cfg.CacheEnabled {
			return cache.Disabled()
		}
		return cache.NewStore(cfg.CacheTTL)
	}

	scoringSvc := usecase.NewScoringService(repos.picks, repos.stats, repos.scores, repos.profiles, repos.gameweeks)
	handler := httpapi.NewHandler(
		usecase.NewPickService(repos.picks, repos.gameweeks, repos.players),
		scoringSvc,
		usecase.NewMatchStatService(repos.stats, repos.gameweeks, repos.players, scoringSvc, logger),
		usecase.NewPlayerService(repos.players, id.NewHexGenerator(), newCache()),
		usecase.NewGameweekService(repos.gameweeks, id.NewHexGenerator(), newCache()),
		usecase.NewFeedService(newMatchFetcher(cfg, logger), newCache()),
		logger,
	)

	verifier := gatekeeper.NewClient(gatekeeper.ClientConfig{
		BaseURL:        cfg.GatekeeperBaseURL,
		IntrospectPath: cfg.GatekeeperIntrospectPath,
		Timeout:        cfg.GatekeeperTimeout,
		CacheTTL:       cfg.GatekeeperCacheTTL,
		CacheMax:       cfg.GatekeeperCacheMax,
		Logger:         logger,
		Breaker: resilience.BreakerConfig{
			Enabled:     cfg.GatekeeperCircuitEnabled,
			MaxFailures: cfg.GatekeeperCircuitFailureCount,
			Cooldown:    cfg.GatekeeperCircuitOpenTimeout,
			ProbeLimit:  cfg.GatekeeperCircuitHalfOpenMaxReq,
		},
	})

	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, db: db, logger: logger}, nil
}

func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func newMatchFetcher(cfg config.Config, logger *logging.Logger) usecase.MatchFetcher {
	if !cfg.FeedEnabled {
		logger.Info("match feed disabled", "reason", "FEED_ENABLED=false")
		return disabledFetcher{}
	}

	return feed.NewClient(feed.ClientConfig{
		BaseURL:     cfg.FeedBaseURL,
		MatchesPath: cfg.FeedMatchesPath,
		Timeout:     cfg.FeedTimeout,
		MaxRetries:  cfg.FeedMaxRetries,
		Logger:      logger,
		Breaker: resilience.BreakerConfig{
			Enabled:     cfg.FeedCircuitEnabled,
			MaxFailures: cfg.FeedCircuitFailureCount,
			Cooldown:    cfg.FeedCircuitOpenTimeout,
			ProbeLimit:  cfg.FeedCircuitHalfOpenMaxReq,
		},
	})
}

type disabledFetcher struct{}

func (disabledFetcher) FetchMatches(context.Context) ([]usecase.FeedMatch, error) {
	return nil, fmt.Errorf("%w: match feed is not configured", usecase.ErrDependencyUnavailable)
}
