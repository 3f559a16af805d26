// Package report renders search results as plain-text tables for the CLI.
package report

import (
	"fmt"
	"io"
	"sort"

	"aoe4scout/internal/aoe4world"
	"aoe4scout/internal/matchup"
	"aoe4scout/internal/playerbook"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// WriteGameSummary prints a one-paragraph description of a game from the
// primary player's point of view.
func WriteGameSummary(w io.Writer, user aoe4world.User, game aoe4world.Game) {
	status := "finished"
	if game.Status == aoe4world.GameStatusPlaying {
		status = "in progress"
	}
	fmt.Fprintf(w, "Game #%d (%s)\n", game.ID, status)
	fmt.Fprintf(w, "  Player : %s (#%d)\n", user.Username, user.ID)
	fmt.Fprintf(w, "  Map    : %s\n", game.MapName)
	fmt.Fprintf(w, "  Mode   : %s\n", game.Kind)
	fmt.Fprintf(w, "  Server : %s\n", game.Server)
	fmt.Fprintf(w, "  Started: %s\n", game.StartedAt.Format("Jan 2, 2006 at 15:04 MST"))
}

// WriteMatchUpTable prints one row per opponent in the game with the
// head-to-head record from the primary player's side. Opponents are ordered
// by name so repeated runs produce identical output.
func WriteMatchUpTable(w io.Writer, user aoe4world.User, game aoe4world.Game, matchUps matchup.MatchUps) {
	opponents := make([]aoe4world.Player, 0, len(matchUps))
	for _, player := range game.Players {
		if _, ok := matchUps[player.ID]; ok {
			opponents = append(opponents, player)
		}
	}
	sort.Slice(opponents, func(i, j int) bool { return opponents[i].Username < opponents[j].Username })

	table := newTable(w)
	table.Header("OPPONENT", "RATING", "CIV", "GAMES", "W", "L", "NR")
	for _, opponent := range opponents {
		record := matchup.HeadToHead(user.ID, matchUps[opponent.ID])
		civ := opponent.Civilization
		if opponent.CivilizationRandom {
			civ += " (random)"
		}
		table.Append(
			opponent.Username,
			fmt.Sprintf("%d", opponent.Rating),
			civ,
			fmt.Sprintf("%d", record.Games()),
			fmt.Sprintf("%d", record.Wins),
			fmt.Sprintf("%d", record.Losses),
			fmt.Sprintf("%d", record.NoResult),
		)
	}
	table.Render()
}

// WritePlayers prints the tracked player book.
func WritePlayers(w io.Writer, entries []playerbook.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "(no tracked players)")
		return
	}

	table := newTable(w)
	table.Header("ID", "NAME", "STEAM ID", "ADDED", "LAST CHECKED")
	for _, entry := range entries {
		lastChecked := "never"
		if entry.LastCheckedAt != nil {
			lastChecked = entry.LastCheckedAt.Format("2006-01-02 15:04")
		}
		table.Append(
			fmt.Sprintf("%d", entry.ID),
			entry.Name,
			entry.SteamID,
			entry.AddedAt.Format("2006-01-02"),
			lastChecked,
		)
	}
	table.Render()
}
