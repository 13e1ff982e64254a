package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"worldclock/models"
)

// GuildConfigRepository implements the service.GuildConfigStore interface on
// top of a single JSON file. The full map of guild configs is loaded into
// memory at startup and flushed in full after every mutation (write-through).
type GuildConfigRepository struct {
	mu               sync.Mutex
	path             string
	defaultTimezones []string
	configs          map[int64]*models.GuildConfig
}

// NewGuildConfigRepository loads the config file at path, creating it as an
// empty mapping on first run. defaultTimezones seeds newly created guilds.
func NewGuildConfigRepository(path string, defaultTimezones []string) (*GuildConfigRepository, error) {
	r := &GuildConfigRepository{
		path:             path,
		defaultTimezones: append([]string(nil), defaultTimezones...),
		configs:          make(map[int64]*models.GuildConfig),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := r.flush(); err != nil {
			return nil, fmt.Errorf("failed to initialize config file: %w", err)
		}
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]*models.GuildConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	for key, cfg := range raw {
		guildID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid guild id %q in config file: %w", key, err)
		}
		r.configs[guildID] = cfg
	}

	return r, nil
}

// GetOrCreate returns a snapshot of the guild's config, creating it with
// defaults on first access. A flush error on creation is returned alongside
// the in-memory config, which stays authoritative for the process lifetime.
func (r *GuildConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (models.GuildConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, created := r.getOrCreateLocked(guildID)
	if !created {
		return cfg.Clone(), nil
	}
	if err := r.flush(); err != nil {
		return cfg.Clone(), fmt.Errorf("failed to persist guild config: %w", err)
	}
	return cfg.Clone(), nil
}

// Update applies mutate to the canonical record and flushes the whole store.
// If mutate returns an error nothing is written and the error propagates
// unchanged, so callers can validate atomically inside the store lock.
func (r *GuildConfigRepository) Update(ctx context.Context, guildID int64, mutate func(*models.GuildConfig) error) (models.GuildConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg, _ := r.getOrCreateLocked(guildID)
	if err := mutate(cfg); err != nil {
		return cfg.Clone(), err
	}
	if err := r.flush(); err != nil {
		return cfg.Clone(), fmt.Errorf("failed to persist guild config: %w", err)
	}
	return cfg.Clone(), nil
}

func (r *GuildConfigRepository) getOrCreateLocked(guildID int64) (*models.GuildConfig, bool) {
	if cfg, ok := r.configs[guildID]; ok {
		return cfg, false
	}
	cfg := &models.GuildConfig{
		Timezones: append([]string(nil), r.defaultTimezones...),
	}
	r.configs[guildID] = cfg
	return cfg, true
}

// flush writes the full map through a temp file and rename so a crash never
// leaves a partially written config. Callers must hold r.mu.
func (r *GuildConfigRepository) flush() error {
	raw := make(map[string]*models.GuildConfig, len(r.configs))
	for guildID, cfg := range r.configs {
		raw[strconv.FormatInt(guildID, 10)] = cfg
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configs: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}
