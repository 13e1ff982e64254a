package bot

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"

	"worldclock/service"
	"worldclock/telemetry"
)

const (
	// refreshInterval is fixed by design; "every ~60 seconds, best effort".
	refreshInterval = 60 * time.Second

	// guildRefreshTimeout bounds one guild's work per tick so a hung network
	// call cannot stall the rest of the pass.
	guildRefreshTimeout = 30 * time.Second
)

// RefreshScheduler periodically visits every running guild and keeps its
// status message current. Per-guild failures are isolated; they never abort
// the tick for other guilds or stop future ticks.
type RefreshScheduler struct {
	clock        clockwork.Clock
	interval     time.Duration
	guildTimeout time.Duration
	guilds       GuildLister
	store        service.GuildConfigStore
	manager      MessageEnsurer
	session      ChannelSession
}

// NewRefreshScheduler creates a new refresh scheduler
func NewRefreshScheduler(guilds GuildLister, store service.GuildConfigStore, manager MessageEnsurer, session ChannelSession, clock clockwork.Clock) *RefreshScheduler {
	return &RefreshScheduler{
		clock:        clock,
		interval:     refreshInterval,
		guildTimeout: guildRefreshTimeout,
		guilds:       guilds,
		store:        store,
		manager:      manager,
		session:      session,
	}
}

// Run ticks until ctx is cancelled.
func (s *RefreshScheduler) Run(ctx context.Context) {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	log.Infof("Refresh scheduler running every %s", s.interval)
	for {
		select {
		case <-ctx.Done():
			log.Info("Refresh scheduler stopped")
			return
		case <-ticker.Chan():
			s.tick(ctx)
		}
	}
}

// tick refreshes every running guild. The now instant is captured once so
// all guilds in the same pass show a consistent moment.
func (s *RefreshScheduler) tick(ctx context.Context) {
	telemetry.CountTick()
	now := s.clock.Now().UTC()

	for _, guildID := range s.guilds.GuildIDs() {
		s.refreshGuild(ctx, guildID, now)
	}
}

func (s *RefreshScheduler) refreshGuild(ctx context.Context, guildID int64, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.CountGuildRefreshError()
			log.Errorf("[Scheduler] Guild %d panic: %v", guildID, r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, s.guildTimeout)
	defer cancel()

	cfg, err := s.store.GetOrCreate(ctx, guildID)
	if err != nil {
		// Persistence failure; the in-memory config is still usable.
		log.Errorf("[Scheduler] Guild %d: %v", guildID, err)
	}
	if !cfg.Running {
		return
	}

	channel, message, err := s.manager.EnsureMessage(ctx, guildID, now)
	if err != nil {
		telemetry.CountGuildRefreshError()
		log.Warnf("[Scheduler] Guild %d: %v", guildID, err)
	}
	if channel == nil || message == nil {
		return
	}

	embed := BuildClockEmbed(now, cfg.Timezones)
	if _, err := s.session.ChannelMessageEditEmbed(ctx, channel.ID, message.ID, embed); err != nil {
		telemetry.CountGuildRefreshError()
		log.Warnf("[Scheduler] Guild %d: failed to edit status message: %v", guildID, err)
	}
}
