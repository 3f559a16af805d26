package aoe4world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(teams [][]playerRecord) gameRecord {
	wire := make([][]teamMember, len(teams))
	for i, team := range teams {
		for _, p := range team {
			wire[i] = append(wire[i], teamMember{Player: p})
		}
	}
	return gameRecord{
		GameID:        90210,
		Duration:      1250,
		AverageRating: 1400,
		Kind:          "rm_1v1",
		Leaderboard:   "rm_solo",
		Patch:         101,
		Season:        7,
		Server:        "Europe",
		Map:           "Dry Arabia",
		StartedAt:     "2025-08-30T18:00:00Z",
		UpdatedAt:     "2025-08-30T18:20:50Z",
		Teams:         wire,
	}
}

func TestGameFromRecord_StillPlaying(t *testing.T) {
	rec := testRecord([][]playerRecord{
		{{ProfileID: 1, Name: "krtko", Rating: 1500}},
		{{ProfileID: 2, Name: "walrus", Rating: 1450}},
	})

	game, err := gameFromRecord(rec)
	require.NoError(t, err)

	assert.Equal(t, GameStatusPlaying, game.Status)
	assert.Equal(t, TeamIDStillPlaying, game.TeamIDWon)
	require.Len(t, game.Players, 2)
	assert.Equal(t, TeamID(0), game.Players[0].TeamID)
	assert.Equal(t, TeamID(1), game.Players[1].TeamID)
	assert.Equal(t, "Dry Arabia", game.MapName)
	assert.False(t, game.StartedAt.IsZero())
}

func TestGameFromRecord_WinnerFromFirstWinResult(t *testing.T) {
	loss := -12
	rec := testRecord([][]playerRecord{
		{{ProfileID: 1, Name: "krtko", Result: "loss", RatingDiff: &loss}},
		{{ProfileID: 2, Name: "walrus", Result: "win"}},
	})

	game, err := gameFromRecord(rec)
	require.NoError(t, err)

	assert.Equal(t, GameStatusFinished, game.Status)
	assert.Equal(t, TeamID(1), game.TeamIDWon)
	require.NotNil(t, game.Players[0].RatingChange)
	assert.Equal(t, -12, *game.Players[0].RatingChange)
	assert.Nil(t, game.Players[1].RatingChange)
}

// The scan stops at the first result it finds in team order, so an earlier
// "noresult" fixes the outcome even when a later player claims a win.
func TestGameFromRecord_FirstMatchWinsOverLaterResult(t *testing.T) {
	rec := testRecord([][]playerRecord{
		{{ProfileID: 1, Name: "krtko", Result: "noresult"}},
		{{ProfileID: 2, Name: "walrus", Result: "win"}},
	})

	game, err := gameFromRecord(rec)
	require.NoError(t, err)

	assert.Equal(t, GameStatusFinished, game.Status)
	assert.Equal(t, TeamIDNoResult, game.TeamIDWon)
}

func TestGameFromRecord_Deterministic(t *testing.T) {
	rec := testRecord([][]playerRecord{
		{{ProfileID: 1, Name: "krtko", Result: "win", Civilization: "mongols", CivilizationRandomized: true}},
		{{ProfileID: 2, Name: "walrus", Result: "loss"}},
	})

	first, err := gameFromRecord(rec)
	require.NoError(t, err)
	second, err := gameFromRecord(rec)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGameFromRecord_BadTimestamp(t *testing.T) {
	rec := testRecord(nil)
	rec.StartedAt = "not-a-timestamp"

	_, err := gameFromRecord(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "started_at")
}

func TestPlayerByID(t *testing.T) {
	game, err := gameFromRecord(testRecord([][]playerRecord{
		{{ProfileID: 1, Name: "krtko"}},
		{{ProfileID: 2, Name: "walrus"}},
	}))
	require.NoError(t, err)

	player, ok := game.PlayerByID(2)
	require.True(t, ok)
	assert.Equal(t, "walrus", player.Username)
	assert.Equal(t, TeamID(1), player.TeamID)

	_, ok = game.PlayerByID(404)
	assert.False(t, ok)
}

func TestDidPlayerWin(t *testing.T) {
	game, err := gameFromRecord(testRecord([][]playerRecord{
		{{ProfileID: 1, Name: "krtko", Result: "win"}},
		{{ProfileID: 2, Name: "walrus", Result: "loss"}},
	}))
	require.NoError(t, err)

	t.Run("assigned team id is used directly", func(t *testing.T) {
		won, err := game.DidPlayerWin(game.Players[0])
		require.NoError(t, err)
		assert.True(t, won)

		won, err = game.DidPlayerWin(game.Players[1])
		require.NoError(t, err)
		assert.False(t, won)
	})

	t.Run("unassigned team id is resolved by identity", func(t *testing.T) {
		// Reference built in another game context: identity is stable,
		// team numbering is not.
		won, err := game.DidPlayerWin(Player{ID: 1, TeamID: TeamIDUnassigned})
		require.NoError(t, err)
		assert.True(t, won)

		won, err = game.DidPlayerWin(Player{ID: 2, TeamID: TeamIDUnassigned})
		require.NoError(t, err)
		assert.False(t, won)
	})

	t.Run("unknown player is a hard error", func(t *testing.T) {
		_, err := game.DidPlayerWin(Player{ID: 404, TeamID: TeamIDUnassigned})
		var notFound *PlayerNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, int64(404), notFound.PlayerID)
		assert.Equal(t, game.ID, notFound.GameID)
	})
}
