package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"aoe4scout/internal/aoe4world"
	"aoe4scout/internal/matchup"
	"aoe4scout/internal/metrics"
	"aoe4scout/internal/notifier"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return timestamp, nil
}

// SendLiveGameNotification announces a live game together with the
// head-to-head records against every opponent in it.
func (s *Notifier) SendLiveGameNotification(user aoe4world.User, game aoe4world.Game, matchUps matchup.MatchUps, dryRun bool) (string, error) {
	msg := s.formatLiveGameNotification(user, game, matchUps)
	return s.sendMessage(msg, dryRun)
}

// SendNoGameNotification announces that no live game was found before the
// search deadline.
func (s *Notifier) SendNoGameNotification(user aoe4world.User, attempts int, dryRun bool) (string, error) {
	msg := s.formatNoGameNotification(user, attempts)
	return s.sendMessage(msg, dryRun)
}

// formatLiveGameNotification creates the Slack message for a found live game using Block Kit.
func (s *Notifier) formatLiveGameNotification(user aoe4world.User, game aoe4world.Game, matchUps matchup.MatchUps) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("⚔️ %s is playing right now!", user.Username), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	// Details - Use newlines for clear separation.
	detailsText := fmt.Sprintf("Map: %s\nMode: %s\nServer: %s", game.MapName, game.Kind, game.Server)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	// One line per opponent with the shared history from the user's side.
	var opponentLines []string
	for _, player := range game.Players {
		history, ok := matchUps[player.ID]
		if !ok {
			continue
		}
		record := matchup.HeadToHead(user.ID, history)
		line := fmt.Sprintf("• %s (%d, %s)", player.Username, player.Rating, player.Civilization)
		if record.Games() == 0 {
			line += " - never played before"
		} else {
			line += fmt.Sprintf(" - %dW %dL", record.Wins, record.Losses)
			if record.NoResult > 0 {
				line += fmt.Sprintf(" %dNR", record.NoResult)
			}
		}
		opponentLines = append(opponentLines, line)
	}
	if len(opponentLines) > 0 {
		sort.Strings(opponentLines) // Sort to ensure deterministic order
		opponentsText := "Opponents:\n" + strings.Join(opponentLines, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", opponentsText, true, false), nil, nil))
	}

	// Context - For simpler, single-line info.
	contextText := fmt.Sprintf("Started %s • https://aoe4world.com/players/%d", game.StartedAt.Format("Jan 2, 2006 at 3:04 PM"), user.ID)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatNoGameNotification creates the Slack message for a search that gave up.
func (s *Notifier) formatNoGameNotification(user aoe4world.User, attempts int) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("😴 No live game for %s", user.Username), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Gave up after %d retries without finding a game in progress.", attempts)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
