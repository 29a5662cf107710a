package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// discordSession abstracts the discordgo.Session methods we use, enabling
// test mocks.
type discordSession interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Discord posts messages to a single Discord channel as embeds.
type Discord struct {
	sess      discordSession
	channelID string
}

// DiscordOpts holds parameters for creating a Discord notifier.
type DiscordOpts struct {
	BotToken  string
	ChannelID string
	// For testing: inject a mock session instead of the real Discord API.
	Session discordSession
}

// NewDiscord creates a Discord notifier.
func NewDiscord(opts DiscordOpts) (*Discord, error) {
	if opts.Session == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("notify: discord bot token is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("notify: discord channel_id is required")
	}

	d := &Discord{channelID: opts.ChannelID}
	if opts.Session != nil {
		d.sess = opts.Session
	} else {
		dg, err := discordgo.New("Bot " + opts.BotToken)
		if err != nil {
			return nil, fmt.Errorf("notify: creating discord session: %w", err)
		}
		d.sess = dg
	}
	return d, nil
}

// Name implements Notifier.
func (d *Discord) Name() string { return "discord" }

// Send posts the message as a color-coded embed.
func (d *Discord) Send(ctx context.Context, msg Message) error {
	embed := &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Body,
		Color:       hexToInt(msg.Color()),
	}
	if _, err := d.sess.ChannelMessageSendEmbed(d.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("posting to %s: %w", d.channelID, err)
	}
	return nil
}

// hexToInt converts a "#rrggbb" color hint to Discord's integer form.
func hexToInt(hex string) int {
	v, err := strconv.ParseInt(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil {
		return 0
	}
	return int(v)
}
