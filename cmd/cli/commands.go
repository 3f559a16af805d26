package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"aoe4scout/internal/aoe4world"
	"aoe4scout/internal/matchup"
	"aoe4scout/internal/report"
)

var (
	watchPlayerID int64
	dryRun        bool
)

func init() {
	watchCmd.Flags().Int64Var(&watchPlayerID, "id", 0, "AOE4 World profile id (skips the username lookup)")
	watchCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the Slack notification instead of sending it")
	recentCmd.Flags().Int64Var(&watchPlayerID, "id", 0, "AOE4 World profile id (skips the username lookup)")

	playersCmd.AddCommand(playersRemoveCmd)

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(playersCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [username]",
	Short: "Poll for the player's live game and scout the opponents",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, a, err := resolveFromArgs(cmd, args)
		if err != nil || user == nil {
			return err
		}
		defer a.teardown()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		searchID := uuid.NewString()
		log.Info("Starting live game search", "searchID", searchID, "player", user.Username, "playerID", user.ID)

		agg := matchup.NewAggregator(a.api, a.metrics, a.cfg.Search.HistoryLimit)
		checker := matchup.NewChecker(user.ID, a.api, agg, a.metrics, matchup.Config{
			RecencyWindow: a.cfg.Search.RecencyWindow,
			Deadline:      a.cfg.Search.Deadline,
			RetryInterval: a.cfg.Search.RetryInterval,
			HistoryLimit:  a.cfg.Search.HistoryLimit,
		})
		result := checker.Start(ctx)

		if err := a.book.Touch(user.ID); err != nil {
			log.Warn("Failed to update player book", "playerID", user.ID, "error", err)
		}

		if result.Status != matchup.StatusSucceeded {
			fmt.Printf("No live game found for %s (gave up after %d retries).\n", user.Username, result.Attempts)
			if a.notifier != nil {
				if _, err := a.notifier.SendNoGameNotification(*user, result.Attempts, dryRun); err != nil {
					log.Error("Failed to send notification", "searchID", searchID, "error", err)
				}
			}
			return nil
		}

		report.WriteGameSummary(os.Stdout, *user, *result.Game)
		fmt.Println()
		report.WriteMatchUpTable(os.Stdout, *user, *result.Game, result.MatchUps)

		if a.notifier != nil {
			if _, err := a.notifier.SendLiveGameNotification(*user, *result.Game, result.MatchUps, dryRun); err != nil {
				log.Error("Failed to send notification", "searchID", searchID, "error", err)
			}
		}
		return nil
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent [username]",
	Short: "Scout the opponents of the player's most recent game, live or not",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, a, err := resolveFromArgs(cmd, args)
		if err != nil || user == nil {
			return err
		}
		defer a.teardown()

		games, err := a.api.GetGames(cmd.Context(), user.ID, aoe4world.GamesParams{Limit: 1})
		if err != nil {
			return fmt.Errorf("failed to fetch recent games: %w", err)
		}
		if len(games) == 0 {
			fmt.Printf("%s has no games on record.\n", user.Username)
			return nil
		}

		game := games[0]
		agg := matchup.NewAggregator(a.api, a.metrics, a.cfg.Search.HistoryLimit)
		matchUps, err := agg.MatchUps(cmd.Context(), user.ID, game)
		if err != nil {
			return fmt.Errorf("failed to aggregate matchups: %w", err)
		}

		report.WriteGameSummary(os.Stdout, *user, game)
		fmt.Println()
		report.WriteMatchUpTable(os.Stdout, *user, game, matchUps)
		return nil
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <username>",
	Short: "Find a player on AOE4 World and add them to the player book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.teardown()

		user, err := a.resolveUser(cmd.Context(), args[0], 0)
		if err != nil {
			return err
		}
		if user == nil {
			fmt.Printf("No player matching %q found.\n", args[0])
			return nil
		}

		fmt.Printf("Found %s (#%d)\n", user.Username, user.ID)
		if user.SteamID != "" {
			fmt.Printf("  Steam : %s\n", user.SteamID)
		}
		fmt.Printf("  https://aoe4world.com/players/%d\n", user.ID)
		return nil
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the tracked players in the player book",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.teardown()

		entries, err := a.book.All()
		if err != nil {
			return fmt.Errorf("failed to list players: %w", err)
		}
		report.WritePlayers(os.Stdout, entries)
		return nil
	},
}

var playersRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a player from the player book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid player id %q: %w", args[0], err)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.teardown()

		if err := a.book.Remove(id); err != nil {
			return fmt.Errorf("failed to remove player %d: %w", id, err)
		}
		fmt.Printf("Removed player %d.\n", id)
		return nil
	},
}

// resolveFromArgs wires up the app and resolves the player named on the
// command line. A nil user with a nil error means no match was found; the
// message is already printed.
func resolveFromArgs(cmd *cobra.Command, args []string) (*aoe4world.User, *app, error) {
	if watchPlayerID == 0 && len(args) == 0 {
		return nil, nil, fmt.Errorf("either a username argument or --id is required")
	}

	a, err := newApp()
	if err != nil {
		return nil, nil, err
	}

	var username string
	if len(args) > 0 {
		username = args[0]
	}
	user, err := a.resolveUser(cmd.Context(), username, watchPlayerID)
	if err != nil {
		a.teardown()
		return nil, nil, err
	}
	if user == nil {
		a.teardown()
		fmt.Printf("No player matching %q found.\n", username)
		return nil, nil, nil
	}
	return user, a, nil
}
