package matchup

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"aoe4scout/internal/aoe4world"
	"aoe4scout/internal/metrics"
)

// Aggregator computes the primary player's head-to-head history against
// every opponent of a game.
type Aggregator struct {
	api          aoe4world.Client
	metrics      metrics.Metrics
	historyLimit int
}

// NewAggregator creates a new Aggregator. historyLimit caps each
// per-opponent history fetch; zero fetches the entire shared history.
func NewAggregator(api aoe4world.Client, m metrics.Metrics, historyLimit int) *Aggregator {
	return &Aggregator{
		api:          api,
		metrics:      m,
		historyLimit: historyLimit,
	}
}

// MatchUps issues one history fetch per opponent of playerID in game, all
// concurrently, and assembles the results keyed by opponent id. Teammates
// and the player itself are never part of the result. Every opponent gets
// exactly one entry, even when the shared history is empty. If any single
// fetch fails the whole aggregation fails; no partial result is returned.
func (a *Aggregator) MatchUps(ctx context.Context, playerID int64, game aoe4world.Game) (MatchUps, error) {
	primary, ok := game.PlayerByID(playerID)
	if !ok {
		return nil, &aoe4world.PlayerNotFoundError{PlayerID: playerID, GameID: game.ID}
	}

	var opponents []aoe4world.Player
	for _, p := range game.Players {
		if p.TeamID == primary.TeamID || p.ID == playerID {
			continue
		}
		opponents = append(opponents, p)
	}

	log.Debug("Aggregating matchups", "playerID", playerID, "gameID", game.ID, "opponents", len(opponents))
	start := time.Now()

	histories := make([][]aoe4world.Game, len(opponents))
	g, gctx := errgroup.WithContext(ctx)
	for i, opponent := range opponents {
		i, opponent := i, opponent
		g.Go(func() error {
			games, err := a.api.GetGames(gctx, playerID, aoe4world.GamesParams{
				OpponentID: opponent.ID,
				Limit:      a.historyLimit,
			})
			if err != nil {
				return fmt.Errorf("fetching history against opponent %d: %w", opponent.ID, err)
			}
			histories[i] = games
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	a.metrics.ObserveAggregationDuration(time.Since(start).Seconds())

	matchUps := make(MatchUps, len(opponents))
	for i, opponent := range opponents {
		matchUps[opponent.ID] = histories[i]
	}
	log.Debug("Aggregated matchups", "playerID", playerID, "gameID", game.ID, "opponents", len(matchUps))
	return matchUps, nil
}
