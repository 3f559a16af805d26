package aoe4world

import "context"

// Client defines the interface for talking to the AOE4 World API.
// This allows for mock implementations to be used in tests.
type Client interface {
	// GetGames returns games involving playerID, most recent first,
	// optionally filtered to games also involving params.OpponentID and
	// capped at params.Limit.
	GetGames(ctx context.Context, playerID int64, params GamesParams) ([]Game, error)
	// SearchUsers runs a free-text profile search.
	SearchUsers(ctx context.Context, query string, params SearchParams) ([]User, error)
	// GetUserByID fetches a single profile. The id is assumed valid, so
	// any failure is a hard error.
	GetUserByID(ctx context.Context, id int64) (User, error)
	// FindUserByUsername tries an exact-match search first and falls back
	// to a fuzzy search, returning the first hit of either. A nil user
	// with a nil error means no profile matched.
	FindUserByUsername(ctx context.Context, name string) (*User, error)
}
