package bot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"worldclock/service"
)

// Config holds bot configuration
type Config struct {
	Token string
}

type Bot struct {
	config       Config
	session      *discordgo.Session
	clockService service.ClockService
	resolver     service.TimezoneResolver
	channels     ChannelSession
	manager      *MessageManager
	scheduler    *RefreshScheduler
}

func New(config Config, store service.GuildConfigStore, resolver service.TimezoneResolver, clockService service.ClockService) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	session := &discordSession{session: dg}
	manager := NewMessageManager(session, store)

	bot := &Bot{
		config:       config,
		session:      dg,
		clockService: clockService,
		resolver:     resolver,
		channels:     session,
		manager:      manager,
		scheduler: NewRefreshScheduler(
			&stateGuildLister{session: dg},
			store,
			manager,
			session,
			clockwork.NewRealClock(),
		),
	}

	// Register slash command and autocomplete handlers
	dg.AddHandler(bot.handleInteraction)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	log.Infof("Logged in as %s", dg.State.User.Username)
	return bot, nil
}

// RunScheduler drives the periodic refresh loop until ctx is cancelled.
func (b *Bot) RunScheduler(ctx context.Context) {
	b.scheduler.Run(ctx)
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// discordSession adapts *discordgo.Session to ChannelSession, preferring the
// state cache for channel lookups before falling back to a REST fetch.
type discordSession struct {
	session *discordgo.Session
}

func (d *discordSession) Channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	if channel, err := d.session.State.Channel(channelID); err == nil {
		return channel, nil
	}
	return d.session.Channel(channelID, discordgo.WithContext(ctx))
}

func (d *discordSession) ChannelMessage(ctx context.Context, channelID, messageID string) (*discordgo.Message, error) {
	return d.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
}

func (d *discordSession) ChannelMessageSendEmbed(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return d.session.ChannelMessageSendEmbed(channelID, embed, discordgo.WithContext(ctx))
}

func (d *discordSession) ChannelMessageEditEmbed(ctx context.Context, channelID, messageID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	return d.session.ChannelMessageEditEmbed(channelID, messageID, embed, discordgo.WithContext(ctx))
}

// stateGuildLister enumerates live guild membership from the session state.
type stateGuildLister struct {
	session *discordgo.Session
}

func (l *stateGuildLister) GuildIDs() []int64 {
	state := l.session.State
	state.RLock()
	guilds := make([]*discordgo.Guild, len(state.Guilds))
	copy(guilds, state.Guilds)
	state.RUnlock()

	ids := make([]int64, 0, len(guilds))
	for _, guild := range guilds {
		id, err := strconv.ParseInt(guild.ID, 10, 64)
		if err != nil {
			log.Errorf("Skipping guild with unparseable ID %s: %v", guild.ID, err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
