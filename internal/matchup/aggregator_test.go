package matchup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aoe4scout/internal/aoe4world"
	"aoe4scout/internal/metrics"
)

// twoVsTwo builds a game where player 1 and 3 face players 2 and 4.
func twoVsTwo() aoe4world.Game {
	return aoe4world.Game{
		ID:     90210,
		Status: aoe4world.GameStatusPlaying,
		Players: []aoe4world.Player{
			{ID: 1, Username: "krtko", TeamID: 0},
			{ID: 3, Username: "teammate", TeamID: 0},
			{ID: 2, Username: "walrus", TeamID: 1},
			{ID: 4, Username: "goblinGoo", TeamID: 1},
		},
		StartedAt: time.Date(2025, 8, 30, 18, 0, 0, 0, time.UTC),
	}
}

func TestMatchUps_OneEntryPerOpponent(t *testing.T) {
	api := aoe4world.NewMockClient()
	sharedGame := aoe4world.Game{ID: 77, Status: aoe4world.GameStatusFinished}
	api.GetGamesFunc = func(ctx context.Context, playerID int64, params aoe4world.GamesParams) ([]aoe4world.Game, error) {
		if params.OpponentID == 2 {
			return []aoe4world.Game{sharedGame}, nil
		}
		return []aoe4world.Game{}, nil
	}
	agg := NewAggregator(api, metrics.NewMock(), 0)

	matchUps, err := agg.MatchUps(context.Background(), 1, twoVsTwo())
	require.NoError(t, err)

	require.Len(t, matchUps, 2)
	require.Contains(t, matchUps, int64(2))
	require.Contains(t, matchUps, int64(4))
	assert.NotContains(t, matchUps, int64(1), "the primary player is never a key")
	assert.NotContains(t, matchUps, int64(3), "teammates are never keys")
	assert.Len(t, matchUps[2], 1)
	assert.Empty(t, matchUps[4], "an opponent with no shared history still gets an entry")
}

func TestMatchUps_RequestsAreFullyFannedOutBeforeAnyCompletes(t *testing.T) {
	api := aoe4world.NewMockClient()
	var issued sync.WaitGroup
	issued.Add(2)
	api.GetGamesFunc = func(ctx context.Context, playerID int64, params aoe4world.GamesParams) ([]aoe4world.Game, error) {
		// Each call blocks until every opponent request has been
		// issued; a sequential aggregator would deadlock here.
		issued.Done()
		issued.Wait()
		return []aoe4world.Game{}, nil
	}
	agg := NewAggregator(api, metrics.NewMock(), 0)

	done := make(chan struct{})
	var matchUps MatchUps
	var err error
	go func() {
		matchUps, err = agg.MatchUps(context.Background(), 1, twoVsTwo())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("aggregation did not overlap its opponent requests")
	}
	require.NoError(t, err)
	assert.Len(t, matchUps, 2)
}

func TestMatchUps_UnboundedHistoryByDefault(t *testing.T) {
	api := aoe4world.NewMockClient()
	agg := NewAggregator(api, metrics.NewMock(), 0)

	_, err := agg.MatchUps(context.Background(), 1, twoVsTwo())
	require.NoError(t, err)

	require.Len(t, api.GetGamesCalls, 2)
	for _, call := range api.GetGamesCalls {
		assert.Equal(t, int64(1), call.PlayerID)
		assert.Zero(t, call.Params.Limit, "no cap is applied unless configured")
		assert.Contains(t, []int64{2, 4}, call.Params.OpponentID)
	}
}

func TestMatchUps_HistoryLimitIsForwarded(t *testing.T) {
	api := aoe4world.NewMockClient()
	agg := NewAggregator(api, metrics.NewMock(), 25)

	_, err := agg.MatchUps(context.Background(), 1, twoVsTwo())
	require.NoError(t, err)

	require.Len(t, api.GetGamesCalls, 2)
	for _, call := range api.GetGamesCalls {
		assert.Equal(t, 25, call.Params.Limit)
	}
}

func TestMatchUps_SingleFailureFailsTheWholeAggregation(t *testing.T) {
	api := aoe4world.NewMockClient()
	api.GetGamesFunc = func(ctx context.Context, playerID int64, params aoe4world.GamesParams) ([]aoe4world.Game, error) {
		if params.OpponentID == 4 {
			return nil, &aoe4world.TransportError{URL: "games", StatusCode: 503}
		}
		return []aoe4world.Game{}, nil
	}
	agg := NewAggregator(api, metrics.NewMock(), 0)

	matchUps, err := agg.MatchUps(context.Background(), 1, twoVsTwo())
	require.Error(t, err)
	assert.Nil(t, matchUps, "no partial result is returned")

	var transportErr *aoe4world.TransportError
	assert.True(t, errors.As(err, &transportErr))
}

func TestMatchUps_PrimaryPlayerMustBeInGame(t *testing.T) {
	api := aoe4world.NewMockClient()
	agg := NewAggregator(api, metrics.NewMock(), 0)

	_, err := agg.MatchUps(context.Background(), 99, twoVsTwo())
	var notFound *aoe4world.PlayerNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(99), notFound.PlayerID)
	assert.Empty(t, api.GetGamesCalls, "no fetch is issued for an unknown player")
}
