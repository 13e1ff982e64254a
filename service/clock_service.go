package service

import (
	"context"
	"fmt"

	"worldclock/models"
)

// clockService implements the ClockService interface
type clockService struct {
	store    GuildConfigStore
	resolver TimezoneResolver
}

// NewClockService creates a new clock configuration service
func NewClockService(store GuildConfigStore, resolver TimezoneResolver) ClockService {
	return &clockService{
		store:    store,
		resolver: resolver,
	}
}

// GetConfig returns the guild's config, creating defaults on first access.
func (s *clockService) GetConfig(ctx context.Context, guildID int64) (models.GuildConfig, error) {
	cfg, err := s.store.GetOrCreate(ctx, guildID)
	if err != nil {
		return cfg, fmt.Errorf("failed to load guild config: %w", err)
	}
	return cfg, nil
}

// SetChannel targets channelID and nulls out any previously tracked message,
// forcing the lifecycle manager to recreate it in the new channel.
func (s *clockService) SetChannel(ctx context.Context, guildID int64, channelID int64) error {
	_, err := s.store.Update(ctx, guildID, func(cfg *models.GuildConfig) error {
		cfg.ChannelID = &channelID
		cfg.MessageID = nil
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set clock channel: %w", err)
	}
	return nil
}

// AddTimezone resolves input and appends the canonical zone if not already
// present. Duplicate detection happens inside the store lock so two
// concurrent adds cannot both append.
func (s *clockService) AddTimezone(ctx context.Context, guildID int64, input string) (string, error) {
	zone, ok := s.resolver.Resolve(input)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTimezone, input)
	}

	_, err := s.store.Update(ctx, guildID, func(cfg *models.GuildConfig) error {
		if cfg.HasTimezone(zone) {
			return ErrDuplicateTimezone
		}
		cfg.Timezones = append(cfg.Timezones, zone)
		return nil
	})
	if err != nil {
		return zone, err
	}
	return zone, nil
}

// RemoveTimezone resolves input, falling back to the raw text so an already
// canonical entry can be removed even when it no longer resolves.
func (s *clockService) RemoveTimezone(ctx context.Context, guildID int64, input string) (string, error) {
	zone, ok := s.resolver.Resolve(input)
	if !ok {
		zone = input
	}

	_, err := s.store.Update(ctx, guildID, func(cfg *models.GuildConfig) error {
		for i, z := range cfg.Timezones {
			if z == zone {
				cfg.Timezones = append(cfg.Timezones[:i], cfg.Timezones[i+1:]...)
				return nil
			}
		}
		return ErrTimezoneNotListed
	})
	if err != nil {
		return zone, err
	}
	return zone, nil
}

// ListTimezones returns the configured zone list in display order.
func (s *clockService) ListTimezones(ctx context.Context, guildID int64) ([]string, error) {
	cfg, err := s.store.GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild config: %w", err)
	}
	return cfg.Timezones, nil
}

// Start enables scheduler refreshes for the guild.
func (s *clockService) Start(ctx context.Context, guildID int64) error {
	_, err := s.store.Update(ctx, guildID, func(cfg *models.GuildConfig) error {
		if cfg.ChannelID == nil {
			return ErrNoChannelConfigured
		}
		cfg.Running = true
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// Stop disables scheduler refreshes for the guild.
func (s *clockService) Stop(ctx context.Context, guildID int64) error {
	_, err := s.store.Update(ctx, guildID, func(cfg *models.GuildConfig) error {
		cfg.Running = false
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to stop clock updates: %w", err)
	}
	return nil
}
