package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

// MockChannelSession is a mock implementation of ChannelSession
type MockChannelSession struct {
	mock.Mock
}

func (m *MockChannelSession) Channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Channel), args.Error(1)
}

func (m *MockChannelSession) ChannelMessage(ctx context.Context, channelID, messageID string) (*discordgo.Message, error) {
	args := m.Called(ctx, channelID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockChannelSession) ChannelMessageSendEmbed(ctx context.Context, channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	args := m.Called(ctx, channelID, embed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func (m *MockChannelSession) ChannelMessageEditEmbed(ctx context.Context, channelID, messageID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	args := m.Called(ctx, channelID, messageID, embed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

// MockGuildLister is a mock implementation of GuildLister
type MockGuildLister struct {
	mock.Mock
}

func (m *MockGuildLister) GuildIDs() []int64 {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]int64)
}

// MockMessageEnsurer is a mock implementation of MessageEnsurer
type MockMessageEnsurer struct {
	mock.Mock
}

func (m *MockMessageEnsurer) EnsureMessage(ctx context.Context, guildID int64, now time.Time) (*discordgo.Channel, *discordgo.Message, error) {
	args := m.Called(ctx, guildID, now)
	var channel *discordgo.Channel
	var message *discordgo.Message
	if args.Get(0) != nil {
		channel = args.Get(0).(*discordgo.Channel)
	}
	if args.Get(1) != nil {
		message = args.Get(1).(*discordgo.Message)
	}
	return channel, message, args.Error(2)
}
