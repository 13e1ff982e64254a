package bot

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"worldclock/models"
	"worldclock/service"
	"worldclock/telemetry"
)

// MessageManager keeps exactly one live status message per guild, creating it
// when absent or inaccessible and reusing it otherwise. It never touches the
// running flag; both the scheduler and explicit refresh commands drive it.
type MessageManager struct {
	session ChannelSession
	store   service.GuildConfigStore
	locks   sync.Map // guild id -> *sync.Mutex
}

// NewMessageManager creates a new message lifecycle manager
func NewMessageManager(session ChannelSession, store service.GuildConfigStore) *MessageManager {
	return &MessageManager{
		session: session,
		store:   store,
	}
}

// guildLock serializes ensure/create/persist sequences per guild so two
// concurrent callers cannot both create a message and race on its id.
func (m *MessageManager) guildLock(guildID int64) *sync.Mutex {
	mu, _ := m.locks.LoadOrStore(guildID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// EnsureMessage resolves the guild's status message, creating it when needed.
// Returns (nil, nil, nil) for an unconfigured guild, (nil, nil, err) when the
// target channel is unreachable, and (channel, nil, err) when the channel is
// known but the message could not be sent (typically missing permission).
func (m *MessageManager) EnsureMessage(ctx context.Context, guildID int64, now time.Time) (*discordgo.Channel, *discordgo.Message, error) {
	mu := m.guildLock(guildID)
	mu.Lock()
	defer mu.Unlock()

	// Fresh read under the lock: a second caller arriving after a create
	// sees the persisted message id and performs zero sends.
	cfg, err := m.store.GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, nil, err
	}
	if cfg.ChannelID == nil {
		return nil, nil, nil
	}
	channelIDNum := *cfg.ChannelID
	channelID := strconv.FormatInt(channelIDNum, 10)

	channel, err := m.session.Channel(ctx, channelID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve channel %s: %w", channelID, err)
	}

	if cfg.MessageID != nil {
		messageID := strconv.FormatInt(*cfg.MessageID, 10)
		message, err := m.session.ChannelMessage(ctx, channelID, messageID)
		if err == nil {
			return channel, message, nil
		}
		// Deleted, inaccessible or transient: recreate instead of failing.
		if isNotFound(err) {
			log.WithField("guild_id", guildID).Warnf("Tracked message %s was deleted, recreating", messageID)
		} else {
			log.WithField("guild_id", guildID).Warnf("Tracked message %s unavailable, recreating: %v", messageID, err)
		}
	}

	embed := BuildClockEmbed(now, cfg.Timezones)
	message, err := m.session.ChannelMessageSendEmbed(ctx, channelID, embed)
	if err != nil {
		if isPermissionDenied(err) {
			return channel, nil, fmt.Errorf("missing permission to send in channel %s: %w", channelID, err)
		}
		return channel, nil, fmt.Errorf("failed to send status message: %w", err)
	}
	telemetry.CountMessageCreated()

	messageID, err := strconv.ParseInt(message.ID, 10, 64)
	if err != nil {
		return channel, message, fmt.Errorf("failed to parse message ID %s: %w", message.ID, err)
	}

	recorded := false
	if _, err := m.store.Update(ctx, guildID, func(c *models.GuildConfig) error {
		// A concurrent setchannel may have retargeted the guild while we
		// were sending; don't track a message in the old channel.
		if c.ChannelID == nil || *c.ChannelID != channelIDNum {
			return nil
		}
		c.MessageID = &messageID
		recorded = true
		return nil
	}); err != nil {
		return channel, message, err
	}
	if !recorded {
		log.WithField("guild_id", guildID).Warnf("Channel changed during message creation, leaving message %s untracked", message.ID)
	}

	return channel, message, nil
}
