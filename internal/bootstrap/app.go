package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"turbine-repair/internal/evaluations"
	"turbine-repair/internal/health"
	"turbine-repair/internal/repair"
	"turbine-repair/internal/shared/config"
	"turbine-repair/internal/shared/server"
	"turbine-repair/internal/shared/server/middleware"
	"turbine-repair/internal/shared/storage/db"
	"turbine-repair/internal/shared/telemetry"
)

const (
	historyPostgres = "postgres"
	historyMemory   = "memory"

	memoryHistorySize = 500
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	HistoryBackend string
	HistoryRepo    evaluations.Repo
	RepairService  *repair.Service
	RepairHandler  *repair.Handler
	HistoryHandler *evaluations.Handler
	HealthHandler  *health.Handler
}

// Build wires storage, services and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		RepairHandler:  app.RepairHandler,
		HistoryHandler: app.HistoryHandler,
		HealthHandler:  app.HealthHandler,
		RateLimiter:    middleware.NewRateLimiter(nil),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":                  cfg.Env,
		"history":              app.HistoryBackend,
		"allow_query_override": cfg.AllowQueryOverride,
		"function_keys":        len(cfg.FunctionKeys),
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, nil
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db_unavailable", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.migrations_failed", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildServices(app *App) {
	switch {
	case app.DB != nil:
		app.HistoryBackend = historyPostgres
		app.HistoryRepo = &evaluations.PGRepo{DB: app.DB}
	case app.Config.HistoryBackend == historyMemory:
		app.HistoryBackend = historyMemory
		app.HistoryRepo = evaluations.NewMemoryRepo(memoryHistorySize)
	}

	var recorder repair.Recorder
	if app.HistoryRepo != nil {
		recorder = evaluations.NewRecorder(app.HistoryRepo)
		app.HistoryHandler = evaluations.NewHandler(app.HistoryRepo)
	}

	app.RepairService = repair.NewService(recorder)
	app.RepairHandler = repair.NewHandler(
		app.RepairService,
		repair.InputOptions{AllowQueryOverride: app.Config.AllowQueryOverride},
		app.Config.MaxBodyBytes,
	)
	app.HealthHandler = health.NewHandler(health.NewService(app.DB, app.HistoryBackend))
}
