package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jonboulle/clockwork"
	"github.com/pressly/goose/v3"

	"github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres"
	activityrepo "github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres/activity"
	commentrepo "github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres/comment"
	memberrepo "github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres/member"
	notificationrepo "github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres/notification"
	projectrepo "github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres/project"
	taskrepo "github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres/task"
	userrepo "github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres/user"
	workspacerepo "github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres/workspace"
	"github.com/teamhub-dev/teamhub-backend/internal/adapter/push"
	"github.com/teamhub-dev/teamhub-backend/internal/config"
	"github.com/teamhub-dev/teamhub-backend/internal/service/access"
	"github.com/teamhub-dev/teamhub-backend/internal/service/activity"
	"github.com/teamhub-dev/teamhub-backend/internal/service/notification"
	"github.com/teamhub-dev/teamhub-backend/internal/service/project"
	"github.com/teamhub-dev/teamhub-backend/internal/service/sweeper"
	"github.com/teamhub-dev/teamhub-backend/internal/service/task"
	"github.com/teamhub-dev/teamhub-backend/internal/service/trash"
	"github.com/teamhub-dev/teamhub-backend/internal/service/workspace"
)

// App bundles the wired service layer. The transport layer mounts these;
// nothing here knows about HTTP.
type App struct {
	Workspaces    *workspace.Service
	Projects      *project.Service
	Tasks         *task.Service
	Trash         *trash.Service
	Activities    *activity.Service
	Notifications *notification.Service
	Sweeper       *sweeper.Sweeper
	Hub           *push.Hub

	pool *pgxpool.Pool
}

// Build connects to the database and wires every repository and service.
// The caller owns the returned App and must Close it.
func Build(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	tx := postgres.NewTxManager(pool)
	clock := clockwork.NewRealClock()

	workspaces := workspacerepo.New(pool)
	members := memberrepo.New(pool)
	users := userrepo.New(pool)
	projects := projectrepo.New(pool)
	tasks := taskrepo.New(pool)
	comments := commentrepo.New(pool)
	activities := activityrepo.New(pool)
	notifications := notificationrepo.New(pool)

	guard := access.NewGuard(log, members)
	recorder := activity.NewService(log, activities, guard)

	hub := push.NewHub(cfg.Push, log)
	notifier := notification.NewService(log, notifications, hub)

	return &App{
		Workspaces:    workspace.NewService(log, workspaces, members, users, guard, recorder, notifier, tx),
		Projects:      project.NewService(log, projects, guard, recorder, tx),
		Tasks:         task.NewService(log, tasks, projects, comments, guard, recorder, notifier, tx),
		Trash:         trash.NewService(log, cfg.Lifecycle, tasks, projects, guard, recorder, tx, clock),
		Activities:    recorder,
		Notifications: notifier,
		Sweeper:       sweeper.New(log, cfg.Sweeper, tasks, notifier, clock),
		Hub:           hub,
		pool:          pool,
	}, nil
}

// Close releases the database pool.
func (a *App) Close() {
	a.pool.Close()
}

// Migrate applies the goose migrations from cfg.MigrationsDir.
func Migrate(ctx context.Context, cfg config.Database) error {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, os.DirFS(cfg.MigrationsDir))
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	slog.InfoContext(ctx, "migrations applied", slog.Int("count", len(results)))
	return nil
}

// Run is the application entry point. It loads configuration, initializes
// the logger, applies migrations, wires the services and runs the due-date
// sweeper until the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := Migrate(ctx, cfg.Database); err != nil {
		return err
	}

	a, err := Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	err = a.Sweeper.Run(ctx)
	if err != nil && ctx.Err() == nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}
