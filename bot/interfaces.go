package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
)

// ChannelSession is the subset of Discord operations the lifecycle manager
// and scheduler depend on. Every call may block on the network and honors
// the passed context.
type ChannelSession interface {
	// Channel resolves a channel, consulting the state cache before fetching
	Channel(ctx context.Context, channelID string) (*discordgo.Channel, error)

	// ChannelMessage fetches a single message
	ChannelMessage(ctx context.Context, channelID, messageID string) (*discordgo.Message, error)

	// ChannelMessageSendEmbed sends a new embed message
	ChannelMessageSendEmbed(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)

	// ChannelMessageEditEmbed edits an existing embed message in place
	ChannelMessageEditEmbed(ctx context.Context, channelID, messageID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
}

// GuildLister enumerates the guilds the process is currently a member of.
// The scheduler only visits guilds in this live membership list.
type GuildLister interface {
	GuildIDs() []int64
}

// MessageEnsurer resolves or creates the per-guild status message.
type MessageEnsurer interface {
	EnsureMessage(ctx context.Context, guildID int64, now time.Time) (*discordgo.Channel, *discordgo.Message, error)
}
