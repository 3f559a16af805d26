package matchup

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"aoe4scout/internal/aoe4world"
	"aoe4scout/internal/metrics"
)

// Checker polls for the target player's currently live game and, once one
// is found, aggregates the player's head-to-head history against every
// opponent in it.
//
// The search runs on a single flow of control: attempts are strictly
// sequential, and the internal fields are only touched by that flow, so
// the status mutex exists solely for outside observers of Status().
type Checker struct {
	api     aoe4world.Client
	agg     *Aggregator
	metrics metrics.Metrics
	clock   Clock

	userID        int64
	findGameAfter time.Time
	failAt        time.Time
	retryInterval time.Duration

	// The cached user and attempt counter are mutated only by the run
	// loop.
	user     *aoe4world.User
	attempts int

	mu     sync.Mutex
	status Status

	once   sync.Once
	result Result
}

// NewChecker creates a Checker for the given player. The recency window
// and deadline are anchored at construction time: a qualifying game must
// have started no earlier than RecencyWindow before now, and the search
// gives up Deadline after now.
func NewChecker(userID int64, api aoe4world.Client, agg *Aggregator, m metrics.Metrics, cfg Config) *Checker {
	cfg = cfg.withDefaults()
	now := cfg.Clock.Now()
	return &Checker{
		api:           api,
		agg:           agg,
		metrics:       m,
		clock:         cfg.Clock,
		userID:        userID,
		findGameAfter: now.Add(-cfg.RecencyWindow),
		failAt:        now.Add(cfg.Deadline),
		retryInterval: cfg.RetryInterval,
		status:        StatusInit,
	}
}

// Status returns the current search status.
func (c *Checker) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Checker) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// Start runs the search to one of its terminal states and returns the
// outcome. It is idempotent: the first caller drives the search, and any
// concurrent or later caller observes the identical Result without
// duplicate work being issued.
func (c *Checker) Start(ctx context.Context) Result {
	c.once.Do(func() {
		c.setStatus(StatusRunning)
		c.result = c.run(ctx)
		c.setStatus(c.result.Status)
	})
	return c.result
}

func (c *Checker) run(ctx context.Context) Result {
	log.Info("Searching for a live game", "userID", c.userID, "findGameAfter", c.findGameAfter, "failAt", c.failAt)
	for {
		if result, ok := c.attempt(ctx); ok {
			c.metrics.IncSearchesSucceeded()
			log.Info("Live game found", "userID", c.userID, "gameID", result.Game.ID, "attempts", result.Attempts)
			return result
		}
		c.attempts++
		c.metrics.IncCheckerAttempts()

		// Give up once the deadline has passed, or when the next retry
		// would only fire after it.
		now := c.clock.Now()
		if !now.Before(c.failAt) || now.Add(c.retryInterval).After(c.failAt) {
			c.metrics.IncSearchesFailed()
			log.Info("No live game found before the deadline", "userID", c.userID, "attempts", c.attempts)
			return Result{Status: StatusFailed, User: c.user, Attempts: c.attempts}
		}
		log.Debug("No qualifying game yet, retrying", "userID", c.userID, "attempt", c.attempts, "retryIn", c.retryInterval)
		<-c.clock.After(c.retryInterval)
	}
}

// attempt runs one poll cycle. Transport and decode failures are treated
// like a non-qualifying attempt and retried until the deadline; only a
// fully aggregated result ends the search early.
func (c *Checker) attempt(ctx context.Context) (Result, bool) {
	if c.user == nil {
		user, err := c.api.GetUserByID(ctx, c.userID)
		if err != nil {
			log.Warn("Failed to fetch user, will retry", "userID", c.userID, "error", err)
			return Result{}, false
		}
		c.user = &user
	}

	recent, err := c.api.GetGames(ctx, c.userID, aoe4world.GamesParams{Limit: 1})
	if err != nil {
		log.Warn("Failed to fetch recent games, will retry", "userID", c.userID, "error", err)
		return Result{}, false
	}
	if len(recent) == 0 {
		log.Debug("Player has no games yet", "userID", c.userID)
		return Result{}, false
	}

	game := recent[0]
	if game.StartedAt.Before(c.findGameAfter) || game.Status != aoe4world.GameStatusPlaying {
		log.Debug("Most recent game does not qualify", "gameID", game.ID, "status", game.Status, "startedAt", game.StartedAt)
		return Result{}, false
	}

	matchUps, err := c.agg.MatchUps(ctx, c.userID, game)
	if err != nil {
		log.Warn("Failed to aggregate matchups, will retry", "userID", c.userID, "gameID", game.ID, "error", err)
		return Result{}, false
	}

	return Result{
		Status:   StatusSucceeded,
		User:     c.user,
		Game:     &game,
		MatchUps: matchUps,
		Attempts: c.attempts,
	}, true
}
