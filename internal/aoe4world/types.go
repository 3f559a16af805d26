package aoe4world

import "time"

// GameStatus defines the lifecycle status of a game.
type GameStatus string

const (
	GameStatusPlaying  GameStatus = "playing"
	GameStatusFinished GameStatus = "finished"
)

// TeamID identifies a team within a single game. Team numbering is only
// meaningful inside one game; the same player can be team 0 in one game and
// team 1 in the next.
type TeamID int

const (
	// TeamIDStillPlaying is the winner sentinel for a game that has no
	// result yet because it is still in progress.
	TeamIDStillPlaying TeamID = -1
	// TeamIDNoResult is the winner sentinel for a finished game that
	// produced no result (draw, drop without rating, etc).
	TeamIDNoResult TeamID = -2
	// TeamIDUnassigned marks a Player reference whose team is unknown,
	// typically because the reference was built in a different game
	// context. Comparisons must re-resolve the team via Game.PlayerByID.
	TeamIDUnassigned TeamID = -1
)

// Assigned reports whether the id refers to a real team index.
func (t TeamID) Assigned() bool {
	return t >= 0
}

// Player is one participant of a Game. Immutable once decoded.
type Player struct {
	ID                 int64
	Username           string
	TeamID             TeamID
	Rating             int
	RatingChange       *int
	Civilization       string
	CivilizationRandom bool
}

// Game is a single match as reported by AOE4 World. Immutable once decoded.
// Team membership is encoded per player rather than as separate team
// objects; Players is ordered by team index, then by position within the
// team.
type Game struct {
	ID            int64
	Status        GameStatus
	Duration      int
	AverageRating int
	Kind          string
	Leaderboard   string
	PatchID       int
	Season        int
	Server        string
	TeamIDWon     TeamID
	MapName       string
	Players       []Player
	StartedAt     time.Time
	UpdatedAt     time.Time
}

// User is an AOE4 World profile. Immutable once decoded.
type User struct {
	ID        int64
	SteamID   string
	Username  string
	AvatarURL string
}

// GamesParams are the optional filters for Client.GetGames. Zero values
// mean "no filter" / "no cap".
type GamesParams struct {
	OpponentID int64
	Limit      int
}

// SearchParams are the optional filters for Client.SearchUsers.
type SearchParams struct {
	Exact bool
	Limit int
}

// Wire structs for the AOE4 World API. These are decoded once and mapped to
// the domain types above; they never leave this package.

type gamesResponse struct {
	Games []gameRecord `json:"games"`
}

type gameRecord struct {
	GameID        int64          `json:"game_id"`
	Duration      int            `json:"duration"`
	AverageRating int            `json:"average_rating"`
	Kind          string         `json:"kind"`
	Leaderboard   string         `json:"leaderboard"`
	Patch         int            `json:"patch"`
	Season        int            `json:"season"`
	Server        string         `json:"server"`
	Map           string         `json:"map"`
	StartedAt     string         `json:"started_at"`
	UpdatedAt     string         `json:"updated_at"`
	Teams         [][]teamMember `json:"teams"`
}

type teamMember struct {
	Player playerRecord `json:"player"`
}

type playerRecord struct {
	ProfileID              int64  `json:"profile_id"`
	Name                   string `json:"name"`
	Result                 string `json:"result"`
	Rating                 int    `json:"rating"`
	RatingDiff             *int   `json:"rating_diff"`
	Civilization           string `json:"civilization"`
	CivilizationRandomized bool   `json:"civilization_randomized"`
}

type searchResponse struct {
	Players []profileRecord `json:"players"`
}

type profileRecord struct {
	ProfileID int64  `json:"profile_id"`
	SteamID   string `json:"steam_id"`
	Name      string `json:"name"`
	Avatars   struct {
		Small  string `json:"small"`
		Medium string `json:"medium"`
		Full   string `json:"full"`
	} `json:"avatars"`
}
