package playerbook

import "aoe4scout/internal/aoe4world"

// PlayerBook defines the interface for the local book of known players.
// Profiles resolved through the API get remembered here so later searches
// can go straight to an id instead of a username lookup.
type PlayerBook interface {
	Upsert(user aoe4world.User) error
	// Get returns the entry for the given profile id, or nil when the
	// player is unknown.
	Get(id int64) (*Entry, error)
	// FindByName returns the entry with the given name (case
	// insensitive), or nil when no entry matches.
	FindByName(name string) (*Entry, error)
	All() ([]Entry, error)
	// Touch records that the player's live game was checked just now.
	Touch(id int64) error
	Remove(id int64) error
}
