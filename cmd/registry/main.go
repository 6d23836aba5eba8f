// Command registry is the campus registry CLI. It wires configuration,
// logging, the selected persistence backend, and the optional Redis
// cache, then dispatches to the cobra command tree.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/campus-hub/campus-registry/config"
	"github.com/campus-hub/campus-registry/internal/domain/roster"
	"github.com/campus-hub/campus-registry/internal/infrastructure/persistence/jsonfile"
	"github.com/campus-hub/campus-registry/internal/infrastructure/persistence/postgres"
	"github.com/campus-hub/campus-registry/internal/infrastructure/persistence/redis"
	"github.com/campus-hub/campus-registry/internal/interface/cli"
	"github.com/campus-hub/campus-registry/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(logger.Options{
		Output:    os.Stderr,
		Level:     logger.ParseLevel(cfg.Observability.LogLevel),
		AddCaller: cfg.App.Debug,
	}).With(logger.Component("registry"))

	repos, conn, cleanup, err := buildRepositories(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	rosterCache, err := buildCache(ctx, cfg, log)
	if err != nil {
		return err
	}

	app := cli.NewApp(log, repos, rosterCache, conn)
	return cli.NewRootCommand(app).ExecuteContext(ctx)
}

// buildRepositories selects the persistence backend. The returned
// cleanup is always safe to call.
func buildRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (roster.Repositories, *postgres.Connection, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
		if err != nil {
			return roster.Repositories{}, nil, func() {}, fmt.Errorf("failed to connect to postgres: %w", err)
		}

		log.Debug("postgres backend ready", logger.Backend(config.BackendPostgres))
		repos := roster.Repositories{
			Students:    postgres.NewStudentRepository(conn),
			Instructors: postgres.NewInstructorRepository(conn),
			Courses:     postgres.NewCourseRepository(conn),
			Enrollments: postgres.NewEnrollmentRepository(conn),
		}
		return repos, conn, conn.Close, nil

	case config.BackendJSONFile:
		store, err := jsonfile.Open(cfg.Storage.StatePath)
		if err != nil {
			return roster.Repositories{}, nil, func() {}, fmt.Errorf("failed to open state file: %w", err)
		}

		log.Debug("jsonfile backend ready",
			logger.Backend(config.BackendJSONFile),
			logger.String("state_path", cfg.Storage.StatePath))
		return store.Repositories(), nil, func() {}, nil

	default:
		return roster.Repositories{}, nil, func() {}, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// buildCache connects the roster cache, or returns nil when Redis is
// disabled. A connection failure is fatal only when Redis is enabled
// explicitly.
func buildCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (*redis.RosterCache, error) {
	if cfg.Redis.Disabled {
		return nil, nil
	}

	cache, err := redis.NewCache(redis.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	if err := cache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}

	log.Debug("roster cache ready")
	return redis.NewRosterCache(cache), nil
}
