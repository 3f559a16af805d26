package notifier

import (
	"aoe4scout/internal/aoe4world"
	"aoe4scout/internal/matchup"
)

// Notifier defines a high-level interface for announcing search outcomes.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// SendLiveGameNotification announces a found live game together with
	// the head-to-head record against every opponent in it. Returns the
	// provider's message timestamp.
	SendLiveGameNotification(user aoe4world.User, game aoe4world.Game, matchUps matchup.MatchUps, dryRun bool) (string, error)
	// SendNoGameNotification announces that the search gave up without
	// finding a live game.
	SendNoGameNotification(user aoe4world.User, attempts int, dryRun bool) (string, error)
}
