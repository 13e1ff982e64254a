package service

import (
	"context"

	"worldclock/models"
)

// GuildConfigStore defines the interface for durable guild config access.
// Implementations return snapshot copies; all mutations go through Update so
// a mutation and its flush form one logical step.
type GuildConfigStore interface {
	// GetOrCreate returns the guild's config, creating it with defaults on
	// first access. A returned error with a usable config indicates a
	// persistence failure; the in-memory state remains authoritative.
	GetOrCreate(ctx context.Context, guildID int64) (models.GuildConfig, error)

	// Update applies mutate to the canonical record under the store lock and
	// flushes the full store. A mutate error aborts the flush and propagates
	// unchanged.
	Update(ctx context.Context, guildID int64, mutate func(*models.GuildConfig) error) (models.GuildConfig, error)
}

// TimezoneResolver normalizes free-text input into canonical IANA zone names.
type TimezoneResolver interface {
	// Resolve returns the canonical zone identifier for input, or ok=false.
	Resolve(input string) (string, bool)

	// Suggest returns up to limit zone identifiers matching query.
	Suggest(query string, limit int) []string
}

// ClockService defines the administrator-facing configuration operations.
type ClockService interface {
	// GetConfig returns the guild's config, creating defaults on first access
	GetConfig(ctx context.Context, guildID int64) (models.GuildConfig, error)

	// SetChannel targets a channel and invalidates any tracked message
	SetChannel(ctx context.Context, guildID int64, channelID int64) error

	// AddTimezone resolves input and appends it; returns the canonical zone
	AddTimezone(ctx context.Context, guildID int64, input string) (string, error)

	// RemoveTimezone resolves input (raw fallback) and removes it; returns the removed zone
	RemoveTimezone(ctx context.Context, guildID int64, input string) (string, error)

	// ListTimezones returns the configured zone list in display order
	ListTimezones(ctx context.Context, guildID int64) ([]string, error)

	// Start enables scheduler refreshes; fails when no channel is configured
	Start(ctx context.Context, guildID int64) error

	// Stop disables scheduler refreshes
	Stop(ctx context.Context, guildID int64) error
}
