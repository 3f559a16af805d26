package aoe4world

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aoe4scout/internal/metrics"
)

const gamesJSONResponse = `{
	"games": [{
		"game_id": 90210,
		"duration": 1250,
		"average_rating": 1400,
		"kind": "rm_1v1",
		"leaderboard": "rm_solo",
		"patch": 101,
		"season": 7,
		"server": "Europe",
		"map": "Dry Arabia",
		"started_at": "2025-08-30T18:00:00Z",
		"updated_at": "2025-08-30T18:20:50Z",
		"teams": [
			[{ "player": { "profile_id": 1, "name": "krtko", "result": "win", "rating": 1500, "rating_diff": 11 } }],
			[{ "player": { "profile_id": 2, "name": "walrus", "result": "loss", "rating": 1450 } }]
		]
	}]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*APIClient, *metrics.Mock) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	m := metrics.NewMock()
	client := NewClient(server.URL, m)
	client.httpClient = server.Client()
	return client, m
}

func TestGetGames(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/1/games", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "", r.URL.Query().Get("opponent_profile_id"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, gamesJSONResponse)
	})

	games, err := client.GetGames(context.Background(), 1, GamesParams{Limit: 1})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, int64(90210), games[0].ID)
	assert.Equal(t, GameStatusFinished, games[0].Status)
	assert.Equal(t, TeamID(0), games[0].TeamIDWon)
	require.Len(t, games[0].Players, 2)
	assert.Equal(t, "walrus", games[0].Players[1].Username)
	assert.Equal(t, 1, m.APIRequests("games"))
	assert.Equal(t, 0, m.APIErrors("games"))
}

func TestGetGames_OpponentFilter(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7287677", r.URL.Query().Get("opponent_profile_id"))
		assert.Equal(t, "", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"games": []}`)
	})

	games, err := client.GetGames(context.Background(), 1, GamesParams{OpponentID: 7287677})
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestGetGames_TransportError(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.GetGames(context.Background(), 1, GamesParams{})
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)
	assert.Equal(t, 1, m.APIErrors("games"))
}

func TestGetGames_DecodeError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"games": [not json`)
	})

	_, err := client.GetGames(context.Background(), 1, GamesParams{})
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestGetUserByID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players/5414457", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{
			"profile_id": 5414457,
			"steam_id": "76561198000000000",
			"name": "krtko",
			"avatars": { "small": "s.png", "medium": "m.png", "full": "f.png" }
		}`)
	})

	user, err := client.GetUserByID(context.Background(), 5414457)
	require.NoError(t, err)
	assert.Equal(t, int64(5414457), user.ID)
	assert.Equal(t, "krtko", user.Username)
	assert.Equal(t, "m.png", user.AvatarURL)
	assert.Equal(t, "76561198000000000", user.SteamID)
}

func TestFindUserByUsername_ExactHitSkipsFuzzy(t *testing.T) {
	var calls []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Query().Get("exact"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"players": [{ "profile_id": 1, "name": "krtko", "avatars": {} }]}`)
	})

	user, err := client.FindUserByUsername(context.Background(), "krtko")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	require.Len(t, calls, 1, "fuzzy fallback should not run after an exact hit")
	assert.Equal(t, "true", calls[0])
}

func TestFindUserByUsername_FuzzyFallback(t *testing.T) {
	var calls []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		exact := r.URL.Query().Get("exact")
		calls = append(calls, exact)
		w.Header().Set("Content-Type", "application/json")
		if exact == "true" {
			fmt.Fprintln(w, `{"players": []}`)
			return
		}
		fmt.Fprintln(w, `{"players": [{ "profile_id": 2, "name": "walrus", "avatars": {} }]}`)
	})

	user, err := client.FindUserByUsername(context.Background(), "walrus")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(2), user.ID)
	assert.Equal(t, []string{"true", ""}, calls)
}

func TestFindUserByUsername_NoMatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, `{"players": []}`)
	})

	user, err := client.FindUserByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}
