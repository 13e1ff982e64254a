package bot

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"worldclock/models"
	"worldclock/repository"
	"worldclock/service"
)

func notFoundErr(code int) *discordgo.RESTError {
	return &discordgo.RESTError{Message: &discordgo.APIErrorMessage{Code: code}}
}

func TestEnsureMessage_Unconfigured(t *testing.T) {
	ctx := context.Background()

	mockSession := new(MockChannelSession)
	mockStore := new(service.MockGuildConfigStore)
	manager := NewMessageManager(mockSession, mockStore)

	cfg := &models.GuildConfig{}
	mockStore.On("GetOrCreate", ctx, int64(100)).Return(cfg, nil)

	channel, message, err := manager.EnsureMessage(ctx, 100, time.Now().UTC())

	assert.NoError(t, err)
	assert.Nil(t, channel)
	assert.Nil(t, message)
	mockSession.AssertNotCalled(t, "Channel")
	mockSession.AssertNotCalled(t, "ChannelMessageSendEmbed")
}

func TestEnsureMessage_ChannelUnreachable(t *testing.T) {
	ctx := context.Background()

	mockSession := new(MockChannelSession)
	mockStore := new(service.MockGuildConfigStore)
	manager := NewMessageManager(mockSession, mockStore)

	channelID := int64(42)
	cfg := &models.GuildConfig{ChannelID: &channelID}
	mockStore.On("GetOrCreate", ctx, int64(100)).Return(cfg, nil)
	mockSession.On("Channel", ctx, "42").Return(nil, notFoundErr(discordgo.ErrCodeUnknownChannel))

	channel, message, err := manager.EnsureMessage(ctx, 100, time.Now().UTC())

	assert.Error(t, err)
	assert.Nil(t, channel)
	assert.Nil(t, message)
	mockSession.AssertNotCalled(t, "ChannelMessageSendEmbed")
}

func TestEnsureMessage_ReusesExistingMessage(t *testing.T) {
	ctx := context.Background()

	mockSession := new(MockChannelSession)
	mockStore := new(service.MockGuildConfigStore)
	manager := NewMessageManager(mockSession, mockStore)

	channelID := int64(42)
	messageID := int64(99)
	cfg := &models.GuildConfig{ChannelID: &channelID, MessageID: &messageID, Timezones: []string{"UTC"}}

	existing := &discordgo.Message{ID: "99", ChannelID: "42"}
	mockStore.On("GetOrCreate", ctx, int64(100)).Return(cfg, nil)
	mockSession.On("Channel", ctx, "42").Return(&discordgo.Channel{ID: "42"}, nil)
	mockSession.On("ChannelMessage", ctx, "42", "99").Return(existing, nil)

	channel, message, err := manager.EnsureMessage(ctx, 100, time.Now().UTC())

	assert.NoError(t, err)
	require.NotNil(t, channel)
	assert.Equal(t, existing, message)
	mockSession.AssertNotCalled(t, "ChannelMessageSendEmbed")
	mockStore.AssertNotCalled(t, "Update")
}

func TestEnsureMessage_CreatesAndPersists_ThenReuses(t *testing.T) {
	ctx := context.Background()

	mockSession := new(MockChannelSession)
	mockStore := new(service.MockGuildConfigStore)
	manager := NewMessageManager(mockSession, mockStore)

	channelID := int64(42)
	cfg := &models.GuildConfig{ChannelID: &channelID, Timezones: []string{"UTC"}}

	created := &discordgo.Message{ID: "999", ChannelID: "42"}
	mockStore.On("GetOrCreate", ctx, int64(100)).Return(cfg, nil)
	mockStore.On("Update", ctx, int64(100)).Return(cfg, nil)
	mockSession.On("Channel", ctx, "42").Return(&discordgo.Channel{ID: "42"}, nil)
	mockSession.On("ChannelMessageSendEmbed", ctx, "42", mock.Anything).Return(created, nil).Once()
	mockSession.On("ChannelMessage", ctx, "42", "999").Return(created, nil)

	_, message, err := manager.EnsureMessage(ctx, 100, time.Now().UTC())

	assert.NoError(t, err)
	assert.Equal(t, created, message)
	require.NotNil(t, cfg.MessageID)
	assert.Equal(t, int64(999), *cfg.MessageID)

	// Second call in the same state: the message now exists, zero sends.
	_, message, err = manager.EnsureMessage(ctx, 100, time.Now().UTC())

	assert.NoError(t, err)
	assert.Equal(t, created, message)
	mockSession.AssertNumberOfCalls(t, "ChannelMessageSendEmbed", 1)
}

func TestEnsureMessage_RecreatesDeletedMessage(t *testing.T) {
	ctx := context.Background()

	mockSession := new(MockChannelSession)
	mockStore := new(service.MockGuildConfigStore)
	manager := NewMessageManager(mockSession, mockStore)

	channelID := int64(42)
	messageID := int64(99)
	cfg := &models.GuildConfig{ChannelID: &channelID, MessageID: &messageID, Timezones: []string{"UTC"}}

	replacement := &discordgo.Message{ID: "1000", ChannelID: "42"}
	mockStore.On("GetOrCreate", ctx, int64(100)).Return(cfg, nil)
	mockStore.On("Update", ctx, int64(100)).Return(cfg, nil)
	mockSession.On("Channel", ctx, "42").Return(&discordgo.Channel{ID: "42"}, nil)
	mockSession.On("ChannelMessage", ctx, "42", "99").Return(nil, notFoundErr(discordgo.ErrCodeUnknownMessage))
	mockSession.On("ChannelMessageSendEmbed", ctx, "42", mock.Anything).Return(replacement, nil)

	_, message, err := manager.EnsureMessage(ctx, 100, time.Now().UTC())

	assert.NoError(t, err)
	assert.Equal(t, replacement, message)
	require.NotNil(t, cfg.MessageID)
	assert.Equal(t, int64(1000), *cfg.MessageID)
}

func TestEnsureMessage_SendPermissionDenied(t *testing.T) {
	ctx := context.Background()

	mockSession := new(MockChannelSession)
	mockStore := new(service.MockGuildConfigStore)
	manager := NewMessageManager(mockSession, mockStore)

	channelID := int64(42)
	cfg := &models.GuildConfig{ChannelID: &channelID, Timezones: []string{"UTC"}}

	mockStore.On("GetOrCreate", ctx, int64(100)).Return(cfg, nil)
	mockSession.On("Channel", ctx, "42").Return(&discordgo.Channel{ID: "42"}, nil)
	mockSession.On("ChannelMessageSendEmbed", ctx, "42", mock.Anything).
		Return(nil, notFoundErr(discordgo.ErrCodeMissingPermissions))

	channel, message, err := manager.EnsureMessage(ctx, 100, time.Now().UTC())

	// Channel known, message absent: a permission failure, not "unconfigured".
	assert.Error(t, err)
	assert.NotNil(t, channel)
	assert.Nil(t, message)
	mockStore.AssertNotCalled(t, "Update")
}

func TestEnsureMessage_SurfacesPersistenceFailure(t *testing.T) {
	ctx := context.Background()

	mockSession := new(MockChannelSession)
	mockStore := new(service.MockGuildConfigStore)
	manager := NewMessageManager(mockSession, mockStore)

	channelID := int64(42)
	cfg := &models.GuildConfig{ChannelID: &channelID, Timezones: []string{"UTC"}}

	created := &discordgo.Message{ID: "999", ChannelID: "42"}
	flushErr := errors.New("disk full")
	mockStore.On("GetOrCreate", ctx, int64(100)).Return(cfg, nil)
	mockStore.On("Update", ctx, int64(100)).Return(cfg, flushErr)
	mockSession.On("Channel", ctx, "42").Return(&discordgo.Channel{ID: "42"}, nil)
	mockSession.On("ChannelMessageSendEmbed", ctx, "42", mock.Anything).Return(created, nil)

	channel, message, err := manager.EnsureMessage(ctx, 100, time.Now().UTC())

	// The message went out but its ID was not saved; callers must see both
	// the message and the durability failure so they can report it.
	assert.ErrorIs(t, err, flushErr)
	assert.NotNil(t, channel)
	assert.Equal(t, created, message)
}

func TestEnsureMessage_ConcurrentStartsCreateOneMessage(t *testing.T) {
	ctx := context.Background()

	store, err := repository.NewGuildConfigRepository(
		filepath.Join(t.TempDir(), "config.json"), []string{"UTC"})
	require.NoError(t, err)

	channelID := int64(42)
	_, err = store.Update(ctx, 100, func(cfg *models.GuildConfig) error {
		cfg.ChannelID = &channelID
		return nil
	})
	require.NoError(t, err)

	created := &discordgo.Message{ID: "999", ChannelID: "42"}
	mockSession := new(MockChannelSession)
	mockSession.On("Channel", ctx, "42").Return(&discordgo.Channel{ID: "42"}, nil)
	mockSession.On("ChannelMessageSendEmbed", ctx, "42", mock.Anything).Return(created, nil).Once()
	mockSession.On("ChannelMessage", ctx, "42", "999").Return(created, nil)

	manager := NewMessageManager(mockSession, store)

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, message, err := manager.EnsureMessage(ctx, 100, time.Now().UTC())
			assert.NoError(t, err)
			assert.NotNil(t, message)
		}()
	}
	wg.Wait()

	// Exactly one message was sent and its id survived in the store.
	mockSession.AssertNumberOfCalls(t, "ChannelMessageSendEmbed", 1)
	cfg, err := store.GetOrCreate(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, cfg.MessageID)
	assert.Equal(t, int64(999), *cfg.MessageID)
}
