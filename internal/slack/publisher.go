package slack

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/slack-go/slack"
	"github.com/takak2166/bleeeeeefing/internal/logger"
)

// Poster posts a message to a channel. *slack.Client satisfies it.
//
//go:generate mockgen -source=publisher.go -destination=mock_slack/mock_slack.go -package=mock_slack
type Poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// PublishError is returned when Slack rejects or fails to deliver a post
type PublishError struct {
	Channel string
	Reason  string
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to post to %s: %s", e.Channel, e.Reason)
}

// Publisher posts report lines to Slack
type Publisher struct {
	poster Poster
}

// New creates a Publisher backed by the Slack Web API
func New(token string) (*Publisher, error) {
	if token == "" {
		return nil, fmt.Errorf("slack token is not set")
	}
	return NewWithPoster(slack.New(token)), nil
}

// NewWithPoster creates a Publisher using the given poster
func NewWithPoster(poster Poster) *Publisher {
	return &Publisher{poster: poster}
}

// Publish joins lines with newlines and posts them to channel in a single
// message. Failures are not retried.
func (p *Publisher) Publish(ctx context.Context, lines []string, channel string) error {
	if len(lines) == 0 {
		logger.Debug("Nothing to publish", logger.Fields{
			"channel": channel,
		})
		return nil
	}

	text := strings.Join(lines, "\n")
	_, ts, err := p.poster.PostMessageContext(ctx, channel, slack.MsgOptionText(text, false))
	if err != nil {
		return &PublishError{Channel: channel, Reason: reason(err)}
	}

	logger.Info("Posted report to Slack", logger.Fields{
		"channel":   channel,
		"lines":     len(lines),
		"timestamp": ts,
	})
	return nil
}

// reason extracts the machine readable error code Slack returned, such as
// invalid_auth or channel_not_found.
func reason(err error) string {
	var slackErr slack.SlackErrorResponse
	if errors.As(err, &slackErr) && slackErr.Err != "" {
		return slackErr.Err
	}
	return err.Error()
}
