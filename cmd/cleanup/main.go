// Command cleanup applies the retention policy: it deletes behavior events
// older than retention.event_days and posts not seen for retention.post_days.
// It is intended to be invoked by an external cron job, not as an in-process
// goroutine. Both deletes run in one transaction.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/feedsense-backend/internal/adapter/postgres"
	"github.com/heartmarshall/feedsense-backend/internal/adapter/postgres/event"
	"github.com/heartmarshall/feedsense-backend/internal/adapter/postgres/post"
	"github.com/heartmarshall/feedsense-backend/internal/app"
	"github.com/heartmarshall/feedsense-backend/internal/config"
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

	eventRepo := event.New(pool)
	postRepo := post.New(pool)
	txm := postgres.NewTxManager(pool)

	now := time.Now()
	eventThreshold := now.AddDate(0, 0, -cfg.Retention.EventDays)
	postThreshold := now.AddDate(0, 0, -cfg.Retention.PostDays)

	var events, posts int64
	err = txm.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		if events, err = eventRepo.DeleteOlderThan(ctx, eventThreshold); err != nil {
			return fmt.Errorf("delete events: %w", err)
		}
		if posts, err = postRepo.DeleteNotSeenSince(ctx, postThreshold); err != nil {
			return fmt.Errorf("delete posts: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("retention cleanup failed",
			slog.String("error", err.Error()),
			slog.Time("event_threshold", eventThreshold),
			slog.Time("post_threshold", postThreshold),
		)
		os.Exit(1)
	}

	logger.Info("retention cleanup completed",
		slog.Int64("events_deleted", events),
		slog.Int64("posts_deleted", posts),
		slog.Time("event_threshold", eventThreshold),
		slog.Time("post_threshold", postThreshold),
	)
}
