package notify

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// Slack posts messages to a single Slack channel via the Web API.
type Slack struct {
	client  slackClient
	channel string
}

// SlackOpts holds parameters for creating a Slack notifier.
type SlackOpts struct {
	BotToken string // xoxb-... Slack bot token
	Channel  string // channel ID or name to post to
	// For testing: inject a mock client instead of the real Slack API.
	Client slackClient
}

// NewSlack creates a Slack notifier.
func NewSlack(opts SlackOpts) (*Slack, error) {
	if opts.Client == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("notify: slack bot token is required")
	}
	if opts.Channel == "" {
		return nil, fmt.Errorf("notify: slack channel is required")
	}

	s := &Slack{channel: opts.Channel}
	if opts.Client != nil {
		s.client = opts.Client
	} else {
		s.client = slackapi.New(opts.BotToken)
	}
	return s, nil
}

// Name implements Notifier.
func (s *Slack) Name() string { return "slack" }

// Send posts the message as a color-coded attachment.
func (s *Slack) Send(ctx context.Context, msg Message) error {
	attachment := slackapi.Attachment{
		Title: msg.Title,
		Text:  msg.Body,
		Color: msg.Color(),
	}
	_, _, err := s.client.PostMessageContext(ctx, s.channel,
		slackapi.MsgOptionAttachments(attachment))
	if err != nil {
		return fmt.Errorf("posting to %s: %w", s.channel, err)
	}
	return nil
}
