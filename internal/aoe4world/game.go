package aoe4world

import (
	"fmt"
	"time"
)

// PlayerByID returns the player with the given profile id, or false when no
// such player takes part in this game.
func (g *Game) PlayerByID(id int64) (*Player, bool) {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i], true
		}
	}
	return nil, false
}

// DidPlayerWin reports whether the given player won this game. The player
// reference may come from a different game context, in which case its
// TeamID carries the unassigned sentinel and the effective team is
// re-resolved by identity inside this game. Returns *PlayerNotFoundError
// when the player does not take part in this game.
func (g *Game) DidPlayerWin(p Player) (bool, error) {
	teamID := p.TeamID
	if !teamID.Assigned() {
		found, ok := g.PlayerByID(p.ID)
		if !ok {
			return false, &PlayerNotFoundError{PlayerID: p.ID, GameID: g.ID}
		}
		teamID = found.TeamID
	}
	return g.TeamIDWon == teamID, nil
}

// gameFromRecord maps a wire record to a Game and derives Status and
// TeamIDWon from the per-player result fields. Players are scanned in team
// order, then within-team order; the first player carrying a result fixes
// the outcome. "win" makes that player's team the winner, "noresult" makes
// the outcome the no-result sentinel. A later result never overrides an
// earlier one, so inconsistent upstream data yields whichever result is
// found first.
func gameFromRecord(rec gameRecord) (Game, error) {
	status := GameStatusPlaying
	teamIDWon := TeamIDStillPlaying
	foundResult := false

	var players []Player
	for teamIndex, team := range rec.Teams {
		for _, member := range team {
			pr := member.Player
			players = append(players, Player{
				ID:                 pr.ProfileID,
				Username:           pr.Name,
				TeamID:             TeamID(teamIndex),
				Rating:             pr.Rating,
				RatingChange:       pr.RatingDiff,
				Civilization:       pr.Civilization,
				CivilizationRandom: pr.CivilizationRandomized,
			})

			if foundResult {
				continue
			}
			switch pr.Result {
			case "win":
				foundResult = true
				status = GameStatusFinished
				teamIDWon = TeamID(teamIndex)
			case "noresult":
				foundResult = true
				status = GameStatusFinished
				teamIDWon = TeamIDNoResult
			}
		}
	}

	startedAt, err := time.Parse(time.RFC3339, rec.StartedAt)
	if err != nil {
		return Game{}, fmt.Errorf("parsing started_at of game %d: %w", rec.GameID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, rec.UpdatedAt)
	if err != nil {
		return Game{}, fmt.Errorf("parsing updated_at of game %d: %w", rec.GameID, err)
	}

	return Game{
		ID:            rec.GameID,
		Status:        status,
		Duration:      rec.Duration,
		AverageRating: rec.AverageRating,
		Kind:          rec.Kind,
		Leaderboard:   rec.Leaderboard,
		PatchID:       rec.Patch,
		Season:        rec.Season,
		Server:        rec.Server,
		TeamIDWon:     teamIDWon,
		MapName:       rec.Map,
		Players:       players,
		StartedAt:     startedAt,
		UpdatedAt:     updatedAt,
	}, nil
}

// userFromRecord maps a wire profile record to a User.
func userFromRecord(rec profileRecord) User {
	return User{
		ID:        rec.ProfileID,
		SteamID:   rec.SteamID,
		Username:  rec.Name,
		AvatarURL: rec.Avatars.Medium,
	}
}
