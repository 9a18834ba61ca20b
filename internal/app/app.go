// Package app wires configuration, storage, use cases and the HTTP
// transport into a runnable server.
package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"

	"github.com/Porizovatel/kulda/external/notify"
	"github.com/Porizovatel/kulda/internal/config"
	"github.com/Porizovatel/kulda/internal/domain/match"
	"github.com/Porizovatel/kulda/internal/domain/membership"
	"github.com/Porizovatel/kulda/internal/domain/performance"
	"github.com/Porizovatel/kulda/internal/domain/player"
	"github.com/Porizovatel/kulda/internal/domain/season"
	"github.com/Porizovatel/kulda/internal/domain/team"
	"github.com/Porizovatel/kulda/internal/infrastructure/account/localauth"
	cacherepo "github.com/Porizovatel/kulda/internal/infrastructure/repository/cache"
	"github.com/Porizovatel/kulda/internal/infrastructure/repository/memory"
	"github.com/Porizovatel/kulda/internal/infrastructure/repository/postgres"
	"github.com/Porizovatel/kulda/internal/interfaces/httpapi"
	basecache "github.com/Porizovatel/kulda/internal/platform/cache"
	idgen "github.com/Porizovatel/kulda/internal/platform/id"
	"github.com/Porizovatel/kulda/internal/platform/logging"
	"github.com/Porizovatel/kulda/internal/platform/resilience"
	"github.com/Porizovatel/kulda/internal/usecase"
)

type repositories struct {
	teams       team.Repository
	players     player.Repository
	seasons     season.Repository
	matches     match.Repository
	stints      membership.Repository
	performance performance.Repository
}

// NewHTTPServer builds the full dependency graph from cfg and returns a
// server ready for ListenAndServe. The returned cleanup closes the database
// pool when the postgres driver is active.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	repos, cleanup, err := buildRepositories(cfg)
	if err != nil {
		return nil, nil, err
	}

	var store *basecache.Store
	if cfg.CacheEnabled {
		store = basecache.NewStore(cfg.CacheTTL)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.matches = cacherepo.NewMatchRepository(repos.matches, store)
	}

	var publisher usecase.ResultPublisher
	if cfg.NotifyEnabled {
		webhook, pubErr := notify.NewWebhookPublisher(notify.WebhookPublisherConfig{
			BaseURL: cfg.NotifyBaseURL,
			Path:    cfg.NotifyPath,
			Token:   cfg.NotifyToken,
			Timeout: cfg.NotifyTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.NotifyCircuitEnabled,
				FailureThreshold: cfg.NotifyCircuitFailureCount,
				OpenTimeout:      cfg.NotifyCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.NotifyCircuitHalfOpenMax,
			},
		}, logger)
		if pubErr != nil {
			cleanup()
			return nil, nil, pubErr
		}
		publisher = webhook
	}

	idGen := idgen.NewRandomGenerator()

	eligibilitySvc := usecase.NewEligibilityService(repos.stints, repos.players)
	teamSvc := usecase.NewTeamService(repos.teams, idGen)
	playerSvc := usecase.NewPlayerService(repos.players, repos.stints, eligibilitySvc, idGen)
	seasonSvc := usecase.NewSeasonService(repos.seasons, idGen)
	matchSvc := usecase.NewMatchService(repos.matches, repos.teams, repos.performance, idGen, store)
	scoringSvc := usecase.NewScoringService(repos.matches, repos.performance, eligibilitySvc, idGen, store, publisher, logger)
	standingsSvc := usecase.NewStandingsService(repos.seasons, repos.teams, repos.matches, repos.performance, store)
	scheduleSvc := usecase.NewScheduleService(repos.seasons, repos.teams, repos.matches, idGen, logger)
	statsSvc := usecase.NewStatsService(repos.seasons, repos.matches, repos.performance, repos.players)
	rescoreSvc := usecase.NewRescoreService(repos.matches, repos.performance, scoringSvc)

	verifier := buildTokenVerifier(cfg, logger)

	handler := httpapi.NewHandler(
		teamSvc,
		playerSvc,
		seasonSvc,
		matchSvc,
		scoringSvc,
		standingsSvc,
		scheduleSvc,
		statsSvc,
		rescoreSvc,
		eligibilitySvc,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config) (repositories, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		db, err := openDatabase(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		return repositories{
			teams:       postgres.NewTeamRepository(db),
			players:     postgres.NewPlayerRepository(db),
			seasons:     postgres.NewSeasonRepository(db),
			matches:     postgres.NewMatchRepository(db),
			stints:      postgres.NewMembershipRepository(db),
			performance: postgres.NewPerformanceRepository(db),
		}, func() { _ = db.Close() }, nil
	case config.StorageDriverMemory:
		return repositories{
			teams:       memory.NewTeamRepository(memory.SeedTeams()),
			players:     memory.NewPlayerRepository(memory.SeedPlayers()),
			seasons:     memory.NewSeasonRepository(memory.SeedSeasons()),
			matches:     memory.NewMatchRepository(nil),
			stints:      memory.NewMembershipRepository(memory.SeedStints()),
			performance: memory.NewPerformanceRepository(),
		}, func() {}, nil
	default:
		return repositories{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	opts := []otelsql.Option{
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(dbURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Connect("postgres", dbURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return db, nil
}

func buildTokenVerifier(cfg config.Config, logger *logging.Logger) httpapi.TokenVerifier {
	client := localauth.NewClient(
		&http.Client{Timeout: cfg.AuthTimeout},
		cfg.AuthBaseURL,
		cfg.AuthIntrospectPath,
		logger,
	)
	if cfg.AuthCacheTTL > 0 {
		return localauth.NewCachingVerifier(client, cfg.AuthCacheTTL, cfg.AuthCacheMaxEntries)
	}
	return client
}
