// Command cleanup-sessions marks chat sessions that stayed active longer than
// session.stale_after as abandoned. Such records are left behind when the
// process stops before a conversation is finalized. It is intended to be
// invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/mindcure-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mindcure-backend/internal/adapter/postgres/chatsession"
	"github.com/heartmarshall/mindcure-backend/internal/app"
	"github.com/heartmarshall/mindcure-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	sessionRepo := chatsession.New(pool)

	cutoff := time.Now().Add(-cfg.Session.StaleAfter)

	abandoned, err := sessionRepo.AbandonStale(ctx, cutoff)
	if err != nil {
		logger.Error("abandon stale sessions failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", cutoff),
		)
		os.Exit(1)
	}

	logger.Info("stale sessions abandoned",
		slog.Int64("abandoned", abandoned),
		slog.Time("cutoff", cutoff),
	)
}
