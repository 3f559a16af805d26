package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Debug("No .env file found, reading from environment variables")
	}

	getEnv := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		return fallback
	}

	getDuration := func(key string, fallback time.Duration) time.Duration {
		value, ok := os.LookupEnv(key)
		if !ok {
			return fallback
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			log.Fatalf("Error: environment variable %s is not a valid duration: %s", key, value)
		}
		return d
	}

	getInt := func(key string, fallback int) int {
		value, ok := os.LookupEnv(key)
		if !ok {
			return fallback
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			log.Fatalf("Error: environment variable %s is not a valid integer: %s", key, value)
		}
		return n
	}

	cfg := Config{
		APIBaseURL:    getEnv("AOE4WORLD_API_URL", "https://aoe4world.com/api/v0"),
		DBName:        getEnv("DB_NAME", "aoe4scout.db"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),
		MetricsAddr:   getEnv("METRICS_ADDR", ""),
		Search: SearchConfig{
			RecencyWindow: getDuration("RECENCY_WINDOW", 3*time.Second),
			Deadline:      getDuration("SEARCH_DEADLINE", 10*time.Second),
			RetryInterval: getDuration("RETRY_INTERVAL", 3*time.Second),
			HistoryLimit:  getInt("HISTORY_LIMIT", 0),
		},
		Turso: TursoConfig{
			PrimaryURL: getEnv("TURSO_PRIMARY_URL", ""),
			AuthToken:  getEnv("TURSO_AUTH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:     getEnv("SLACK_BOT_TOKEN", ""),
			ChannelID: getEnv("SLACK_CHANNEL_ID", ""),
		},
	}
	return cfg
}
