package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"aoe4scout/internal/aoe4world"
	"aoe4scout/internal/config"
	"aoe4scout/internal/database"
	"aoe4scout/internal/metrics"
	"aoe4scout/internal/notifier"
	"aoe4scout/internal/notifier/slack"
	"aoe4scout/internal/playerbook"
)

// app holds the wired-up services shared by all commands.
type app struct {
	cfg      config.Config
	book     playerbook.PlayerBook
	metrics  *metrics.Service
	api      aoe4world.Client
	notifier notifier.Notifier

	teardown func()
}

// newApp loads configuration and wires up the database, player book, API
// client, metrics and the optional Slack notifier. Callers must invoke
// teardown when done.
func newApp() (*app, error) {
	startTime := time.Now()
	cfg := config.Load()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	metricsSvc := metrics.NewService()
	a := &app{
		cfg:     cfg,
		book:    playerbook.New(db),
		metrics: metricsSvc,
		api:     aoe4world.NewClient(cfg.APIBaseURL, metricsSvc),
		teardown: func() {
			log.Debug("Closing database connection")
			dbTeardown()
		},
	}

	if cfg.Slack.Token != "" {
		a.notifier = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	}

	addr := metricsAddr
	if addr == "" {
		addr = cfg.MetricsAddr
	}
	if addr != "" {
		go func() {
			log.Info("Serving metrics", "addr", addr)
			if err := http.ListenAndServe(addr, metrics.NewMetricsHandler()); err != nil {
				log.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	metricsSvc.SetStartupTime(time.Since(startTime).Seconds())
	return a, nil
}

// resolveUser turns a command-line player reference into a profile. A
// numeric id is looked up directly; a username goes through the player book
// first and falls back to an API search. Resolved profiles are remembered
// in the book.
func (a *app) resolveUser(ctx context.Context, username string, id int64) (*aoe4world.User, error) {
	if id != 0 {
		user, err := a.api.GetUserByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch profile %d: %w", id, err)
		}
		if err := a.book.Upsert(user); err != nil {
			log.Warn("Failed to update player book", "playerID", user.ID, "error", err)
		}
		return &user, nil
	}

	if entry, err := a.book.FindByName(username); err != nil {
		log.Warn("Player book lookup failed", "name", username, "error", err)
	} else if entry != nil {
		log.Debug("Player book hit", "name", username, "playerID", entry.ID)
		user, err := a.api.GetUserByID(ctx, entry.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch profile %d: %w", entry.ID, err)
		}
		return &user, nil
	}

	user, err := a.api.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to search for %q: %w", username, err)
	}
	if user == nil {
		return nil, nil
	}
	if err := a.book.Upsert(*user); err != nil {
		log.Warn("Failed to update player book", "playerID", user.ID, "error", err)
	}
	return user, nil
}
