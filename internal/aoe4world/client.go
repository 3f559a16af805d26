package aoe4world

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"aoe4scout/internal/metrics"
)

const defaultBaseURL = "https://aoe4world.com/api/v0"

// APIClient is the AOE4 World API client that implements the Client interface.
type APIClient struct {
	httpClient *http.Client
	metrics    metrics.Metrics
	BaseURL    string
}

// NewClient creates a new AOE4 World client.
func NewClient(baseURL string, m metrics.Metrics) *APIClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		metrics:    m,
		BaseURL:    baseURL,
	}
}

// Ensure APIClient implements the Client interface.
var _ Client = (*APIClient)(nil)

// GetGames fetches games involving playerID, most recent first.
func (c *APIClient) GetGames(ctx context.Context, playerID int64, params GamesParams) ([]Game, error) {
	apiURL := fmt.Sprintf("%s/players/%d/games", c.BaseURL, playerID)
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.OpponentID > 0 {
		query.Set("opponent_profile_id", strconv.FormatInt(params.OpponentID, 10))
	}
	if len(query) > 0 {
		apiURL += "?" + query.Encode()
	}

	log.Debug("Fetching games from AOE4 World API", "url", apiURL, "playerID", playerID, "opponentID", params.OpponentID, "limit", params.Limit)
	var response gamesResponse
	if err := c.getJSON(ctx, "games", apiURL, &response); err != nil {
		return nil, err
	}

	games := make([]Game, 0, len(response.Games))
	for _, rec := range response.Games {
		game, err := gameFromRecord(rec)
		if err != nil {
			return nil, &DecodeError{URL: apiURL, Err: err}
		}
		games = append(games, game)
	}
	log.Debug("Fetched games", "playerID", playerID, "count", len(games))
	return games, nil
}

// SearchUsers runs a free-text profile search.
func (c *APIClient) SearchUsers(ctx context.Context, query string, params SearchParams) ([]User, error) {
	values := url.Values{}
	values.Set("query", query)
	if params.Exact {
		values.Set("exact", "true")
	}
	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}
	apiURL := fmt.Sprintf("%s/players/search?%s", c.BaseURL, values.Encode())

	log.Debug("Searching users on AOE4 World API", "query", query, "exact", params.Exact)
	var response searchResponse
	if err := c.getJSON(ctx, "search", apiURL, &response); err != nil {
		return nil, err
	}

	users := make([]User, 0, len(response.Players))
	for _, rec := range response.Players {
		users = append(users, userFromRecord(rec))
	}
	return users, nil
}

// GetUserByID fetches a single profile by id.
func (c *APIClient) GetUserByID(ctx context.Context, id int64) (User, error) {
	apiURL := fmt.Sprintf("%s/players/%d", c.BaseURL, id)

	log.Debug("Fetching user from AOE4 World API", "userID", id)
	var rec profileRecord
	if err := c.getJSON(ctx, "user", apiURL, &rec); err != nil {
		return User{}, err
	}
	return userFromRecord(rec), nil
}

// FindUserByUsername resolves a username to a profile, trying an exact
// match before falling back to a fuzzy search. Returns nil when neither
// search yields a hit.
func (c *APIClient) FindUserByUsername(ctx context.Context, name string) (*User, error) {
	users, err := c.SearchUsers(ctx, name, SearchParams{Exact: true, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(users) > 0 {
		return &users[0], nil
	}

	log.Debug("Exact search returned nothing, falling back to fuzzy search", "name", name)
	users, err = c.SearchUsers(ctx, name, SearchParams{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(users) > 0 {
		return &users[0], nil
	}
	return nil, nil
}

// getJSON issues a GET request and decodes the response body into out.
func (c *APIClient) getJSON(ctx context.Context, endpoint, apiURL string, out any) error {
	c.metrics.IncAPIRequests(endpoint)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		c.metrics.IncAPIErrors(endpoint)
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "aoe4scout/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncAPIErrors(endpoint)
		return &TransportError{URL: apiURL, Err: err}
	}
	defer resp.Body.Close()
	c.metrics.ObserveAPIRequestDuration(endpoint, time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		c.metrics.IncAPIErrors(endpoint)
		log.Error("Received non-OK HTTP status from AOE4 World API", "status", resp.StatusCode, "url", apiURL)
		return &TransportError{URL: apiURL, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.metrics.IncAPIErrors(endpoint)
		return &DecodeError{URL: apiURL, Err: err}
	}
	return nil
}
