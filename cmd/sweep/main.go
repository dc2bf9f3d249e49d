// Command sweep performs a single due-date reminder sweep and exits. It is
// intended to be invoked by an external cron job as an alternative to the
// in-process sweeper loop.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres"
	notificationrepo "github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres/notification"
	taskrepo "github.com/teamhub-dev/teamhub-backend/internal/adapter/postgres/task"
	"github.com/teamhub-dev/teamhub-backend/internal/adapter/push"
	"github.com/teamhub-dev/teamhub-backend/internal/app"
	"github.com/teamhub-dev/teamhub-backend/internal/config"
	"github.com/teamhub-dev/teamhub-backend/internal/service/notification"
	"github.com/teamhub-dev/teamhub-backend/internal/service/sweeper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// A fresh hub has no sockets, so every push degrades to the stored
	// notification. That is the point of a cron-driven sweep.
	notifier := notification.NewService(logger, notificationrepo.New(pool), push.NewHub(cfg.Push, logger))

	s := sweeper.New(logger, cfg.Sweeper, taskrepo.New(pool), notifier, clockwork.NewRealClock())

	sent, err := s.RunOnce(ctx)
	if err != nil {
		logger.Error("sweep failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("sweep complete", slog.Int("reminders_sent", sent))
}
