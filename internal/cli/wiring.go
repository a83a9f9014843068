package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"
	"quiz-admin-service/internal/app"
	"quiz-admin-service/internal/config"
	"quiz-admin-service/internal/export"
	"quiz-admin-service/internal/infra/filestore"
	firestorestore "quiz-admin-service/internal/infra/firestore"
	"quiz-admin-service/internal/infra/memory"
	pgstore "quiz-admin-service/internal/infra/postgres"
	redisstore "quiz-admin-service/internal/infra/redis"
	"quiz-admin-service/internal/infra/sqlite"
)

// components holds the wired application graph shared by the subcommands.
type components struct {
	cfg       config.Config
	logger    *slog.Logger
	files     *filestore.Store
	feed      *app.ResultFeed
	auth      *app.AuthService
	questions *app.QuestionService
	results   *app.ResultService
	settings  *app.SettingsService
	redis     *redis.Client
	closers   []func()
}

func (c *components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: lvl, TimeFormat: time.DateTime}))
	slog.SetDefault(logger)
	return logger
}

func loadComponents(ctx context.Context, configPath string) (*components, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return buildComponents(ctx, cfg, newLogger(cfg.Log.Level))
}

func buildComponents(ctx context.Context, cfg config.Config, logger *slog.Logger) (*components, error) {
	c := &components{cfg: cfg, logger: logger, feed: app.NewResultFeed()}

	files, err := filestore.Open(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}
	c.files = files

	if cfg.Redis.Addr != "" {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		c.closers = append(c.closers, func() { _ = c.redis.Close() })
	}

	rosterRepo, err := c.rosterRepository()
	if err != nil {
		c.Close()
		return nil, err
	}

	store, err := c.resultStore(ctx)
	if err != nil {
		c.Close()
		return nil, err
	}

	opts := app.ResultOptions{YearFallback: cfg.Results.YearFallback}
	if cfg.Export.ArchiveDir != "" {
		opts.Archiver = export.NewDirArchiver(cfg.Export.ArchiveDir)
	}

	c.auth = app.NewAuthService(rosterRepo, store)
	c.questions = app.NewQuestionService(files)
	c.results = app.NewResultService(store, c.feed, opts)
	c.settings = app.NewSettingsService(files)
	return c, nil
}

func (c *components) rosterRepository() (app.RosterRepository, error) {
	ttl := config.TTLDuration(c.cfg.Roster.TTL, 0)
	switch strings.ToLower(c.cfg.Roster.Cache) {
	case "", "memory":
		return memory.NewRosterRepository(c.files, ttl), nil
	case "redis":
		if c.redis == nil {
			return nil, fmt.Errorf("roster cache redis requires redis.addr")
		}
		return redisstore.NewRosterRepository(c.redis, c.files, ttl), nil
	default:
		return nil, fmt.Errorf("unknown roster cache %q", c.cfg.Roster.Cache)
	}
}

func (c *components) resultStore(ctx context.Context) (app.ResultStore, error) {
	cfg := c.cfg
	backend := strings.ToLower(cfg.Results.Backend)
	c.logger.Info("using result backend", "backend", backend)
	if cfg.Results.MirrorByYear && backend != "firestore" {
		c.logger.Warn("results.mirrorByYear is only supported by the firestore backend, ignoring", "backend", backend)
	}

	switch backend {
	case "memory":
		return memory.NewResultStore(), nil
	case "", "sqlite":
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() { _ = store.Close() })
		return store, nil
	case "postgres":
		if cfg.Postgres.URL == "" {
			return nil, fmt.Errorf("postgres url not configured")
		}
		if err := runMigrationsWithConfig(ctx, cfg, c.logger); err != nil {
			return nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, pool.Close)
		return pgstore.NewResultStore(pool), nil
	case "redis":
		if c.redis == nil {
			return nil, fmt.Errorf("results backend redis requires redis.addr")
		}
		return redisstore.NewResultStore(c.redis, cfg.Results.RedisPrefix), nil
	case "firestore":
		client, err := firestorestore.Connect(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() { _ = client.Close() })
		return firestorestore.NewResultStore(client, firestorestore.Options{
			Root:         cfg.Results.Root,
			Partition:    cfg.Results.Partition,
			MirrorByYear: cfg.Results.MirrorByYear,
		}), nil
	default:
		return nil, fmt.Errorf("unknown results backend %q", cfg.Results.Backend)
	}
}
