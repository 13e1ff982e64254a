package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"worldclock/models"
)

// MockGuildConfigStore is a mock implementation of GuildConfigStore
type MockGuildConfigStore struct {
	mock.Mock
}

func (m *MockGuildConfigStore) GetOrCreate(ctx context.Context, guildID int64) (models.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	cfg := args.Get(0).(*models.GuildConfig)
	return cfg.Clone(), args.Error(1)
}

// Update runs the mutate callback against the config registered in the
// expectation, mirroring the real store's mutate-then-flush contract. The
// flush error from the expectation is only returned when mutate succeeds.
func (m *MockGuildConfigStore) Update(ctx context.Context, guildID int64, mutate func(*models.GuildConfig) error) (models.GuildConfig, error) {
	args := m.Called(ctx, guildID)
	cfg := args.Get(0).(*models.GuildConfig)
	if err := mutate(cfg); err != nil {
		return cfg.Clone(), err
	}
	return cfg.Clone(), args.Error(1)
}

// MockTimezoneResolver is a mock implementation of TimezoneResolver
type MockTimezoneResolver struct {
	mock.Mock
}

func (m *MockTimezoneResolver) Resolve(input string) (string, bool) {
	args := m.Called(input)
	return args.String(0), args.Bool(1)
}

func (m *MockTimezoneResolver) Suggest(query string, limit int) []string {
	args := m.Called(query, limit)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}
