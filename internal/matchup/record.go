package matchup

import (
	"aoe4scout/internal/aoe4world"
)

// Record is a win/loss tally of one head-to-head history from the primary
// player's point of view.
type Record struct {
	Wins     int
	Losses   int
	NoResult int
}

// Games returns the total number of games in the tally.
func (r Record) Games() int {
	return r.Wins + r.Losses + r.NoResult
}

// HeadToHead tallies the given shared history for playerID. Games the
// player does not appear in, and games that are still running, are not
// counted. Team numbering differs between games, so each game resolves the
// player's team by identity.
func HeadToHead(playerID int64, games []aoe4world.Game) Record {
	var record Record
	for _, game := range games {
		if game.Status != aoe4world.GameStatusFinished {
			continue
		}
		if game.TeamIDWon == aoe4world.TeamIDNoResult {
			record.NoResult++
			continue
		}
		won, err := game.DidPlayerWin(aoe4world.Player{ID: playerID, TeamID: aoe4world.TeamIDUnassigned})
		if err != nil {
			continue
		}
		if won {
			record.Wins++
		} else {
			record.Losses++
		}
	}
	return record
}
