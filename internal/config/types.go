package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	APIBaseURL    string
	DBName        string
	MigrationsDir string
	MetricsAddr   string
	Search        SearchConfig
	Turso         TursoConfig
	Slack         SlackConfig
}

// SearchConfig holds the tunables of the live-game search.
type SearchConfig struct {
	// RecencyWindow is how far in the past a game may have started and
	// still count as the live game being searched for.
	RecencyWindow time.Duration
	// Deadline is how long the search polls before giving up.
	Deadline time.Duration
	// RetryInterval is the pause between poll attempts.
	RetryInterval time.Duration
	// HistoryLimit caps each per-opponent history fetch; zero fetches
	// the entire shared history.
	HistoryLimit int
}

// SlackConfig holds the optional Slack notification settings. Leaving the
// token empty disables Slack notifications.
type SlackConfig struct {
	Token     string
	ChannelID string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
