package matchup

import (
	"time"

	"aoe4scout/internal/aoe4world"
)

// Status defines the lifecycle of a live-game search.
type Status string

const (
	StatusInit      Status = "init"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "finished_successfully"
	StatusFailed    Status = "failed_could_not_find_game"
)

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// MatchUps maps an opponent's profile id to the primary player's shared
// game history with that opponent, most recent first.
type MatchUps map[int64][]aoe4world.Game

// Result is the terminal outcome of a live-game search. User, Game and
// MatchUps are only set when Status is StatusSucceeded.
type Result struct {
	Status   Status
	User     *aoe4world.User
	Game     *aoe4world.Game
	MatchUps MatchUps
	Attempts int
}

// Defaults for Config.
const (
	DefaultRecencyWindow = 3 * time.Second
	DefaultDeadline      = 10 * time.Second
	DefaultRetryInterval = 3 * time.Second
)

// Config holds the tunables of a live-game search.
type Config struct {
	// RecencyWindow is how far before construction time a game may have
	// started and still qualify as live.
	RecencyWindow time.Duration
	// Deadline is how long the search keeps polling before giving up.
	Deadline time.Duration
	// RetryInterval is the pause between poll attempts.
	RetryInterval time.Duration
	// HistoryLimit caps the per-opponent history fetch during
	// aggregation. Zero fetches the entire shared history.
	HistoryLimit int
	// Clock drives timing; nil picks the system clock. Tests inject a
	// fake to simulate time.
	Clock Clock
}

func (c Config) withDefaults() Config {
	if c.RecencyWindow == 0 {
		c.RecencyWindow = DefaultRecencyWindow
	}
	if c.Deadline == 0 {
		c.Deadline = DefaultDeadline
	}
	if c.RetryInterval == 0 {
		c.RetryInterval = DefaultRetryInterval
	}
	if c.Clock == nil {
		c.Clock = systemClock{}
	}
	return c
}

// Clock abstracts time for the search loop so tests can run without real
// delays.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
