package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"worldclock/bot/common"
	"worldclock/service"
)

// handleClockCommand dispatches the /clock subcommands
func (b *Bot) handleClockCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(i) {
		common.RespondWithError(s, i, "You need **Manage Server** permission to use this command.")
		return
	}

	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing guild ID %s: %v", i.GuildID, err)
		common.RespondWithError(s, i, "Unable to process command. Please try again.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please specify a subcommand.")
		return
	}

	sub := options[0]
	switch sub.Name {
	case "setchannel":
		b.handleSetChannel(s, i, guildID, sub.Options)
	case "add":
		b.handleAddTimezone(s, i, guildID, sub.Options)
	case "remove":
		b.handleRemoveTimezone(s, i, guildID, sub.Options)
	case "list":
		b.handleListTimezones(s, i, guildID)
	case "start":
		b.handleStart(s, i, guildID)
	case "stop":
		b.handleStop(s, i, guildID)
	case "refresh":
		b.handleRefresh(s, i, guildID)
	default:
		common.RespondWithError(s, i, "Unknown subcommand.")
	}
}

func (b *Bot) handleSetChannel(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if len(options) == 0 {
		common.RespondWithError(s, i, "Please provide a channel.")
		return
	}

	channel := options[0].ChannelValue(s)
	channelID, err := strconv.ParseInt(channel.ID, 10, 64)
	if err != nil {
		log.Errorf("Error parsing channel ID %s: %v", channel.ID, err)
		common.RespondWithError(s, i, "Invalid channel selected.")
		return
	}

	ctx := context.Background()
	if err := b.clockService.SetChannel(ctx, guildID, channelID); err != nil {
		log.Errorf("Error setting clock channel for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Failed to save the channel setting.")
		return
	}

	common.RespondWithSuccess(s, i, fmt.Sprintf("Clock channel set to <#%s>.", channel.ID))
}

func (b *Bot) handleAddTimezone(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if len(options) == 0 {
		common.RespondWithError(s, i, "Provide a time zone or city alias to add.")
		return
	}
	input := options[0].StringValue()

	ctx := context.Background()
	zone, err := b.clockService.AddTimezone(ctx, guildID, input)
	switch {
	case errors.Is(err, service.ErrUnknownTimezone):
		common.RespondWithError(s, i, fmt.Sprintf("`%s` is not a known time zone or alias.", input))
	case errors.Is(err, service.ErrDuplicateTimezone):
		common.RespondWithError(s, i, fmt.Sprintf("`%s` is already in the list.", zone))
	case err != nil:
		log.Errorf("Error adding time zone for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Failed to save the time zone list.")
	default:
		common.RespondWithSuccess(s, i, fmt.Sprintf("Added `%s`.", zone))
	}
}

func (b *Bot) handleRemoveTimezone(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, options []*discordgo.ApplicationCommandInteractionDataOption) {
	if len(options) == 0 {
		common.RespondWithError(s, i, "Provide a time zone or alias to remove.")
		return
	}
	input := options[0].StringValue()

	ctx := context.Background()
	zone, err := b.clockService.RemoveTimezone(ctx, guildID, input)
	switch {
	case errors.Is(err, service.ErrTimezoneNotListed):
		common.RespondWithError(s, i, fmt.Sprintf("`%s` not found in the list.", zone))
	case err != nil:
		log.Errorf("Error removing time zone for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Failed to save the time zone list.")
	default:
		common.RespondWithSuccess(s, i, fmt.Sprintf("Removed `%s`.", zone))
	}
}

func (b *Bot) handleListTimezones(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64) {
	ctx := context.Background()
	zones, err := b.clockService.ListTimezones(ctx, guildID)
	if err != nil {
		log.Errorf("Error listing time zones for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to load the time zone list.")
		return
	}

	if len(zones) == 0 {
		common.RespondWithSuccess(s, i, "No time zones configured.")
		return
	}

	var listed strings.Builder
	listed.WriteString("**Current time zones:**\n")
	for _, zone := range zones {
		listed.WriteString("- " + zone + "\n")
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: listed.String(),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error responding to list command: %v", err)
	}
}

func (b *Bot) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64) {
	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring start response: %v", err)
		return
	}

	ctx := context.Background()
	if err := b.clockService.Start(ctx, guildID); err != nil {
		if errors.Is(err, service.ErrNoChannelConfigured) {
			common.FollowUpWithError(s, i, "Set a channel first: `/clock setchannel`.")
			return
		}
		log.Errorf("Error starting clock for guild %d: %v", guildID, err)
		common.FollowUpWithError(s, i, "Failed to save the running state.")
		return
	}

	// Ensure the message exists right away
	channel, message, err := b.manager.EnsureMessage(ctx, guildID, time.Now().UTC())
	if err != nil {
		log.Warnf("Error ensuring message for guild %d: %v", guildID, err)
	}
	if channel == nil {
		common.FollowUpWithError(s, i, "I can't access the configured channel. Check my permissions.")
		return
	}
	if message == nil {
		common.FollowUpWithError(s, i, "I can't create the clock message. Check my permissions.")
		return
	}
	// Message exists but its ID could not be saved; don't claim success.
	if err != nil {
		common.FollowUpWithError(s, i, "Clock message created, but saving its ID failed. It may be recreated after a restart.")
		return
	}

	common.FollowUpWithSuccess(s, i, fmt.Sprintf("Clock updates started in <#%s>.", channel.ID))
}

func (b *Bot) handleStop(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64) {
	ctx := context.Background()
	if err := b.clockService.Stop(ctx, guildID); err != nil {
		log.Errorf("Error stopping clock for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Failed to save the running state.")
		return
	}
	common.RespondWithSuccess(s, i, "Clock updates stopped.")
}

func (b *Bot) handleRefresh(s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64) {
	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring refresh response: %v", err)
		return
	}

	ctx := context.Background()
	now := time.Now().UTC()

	channel, message, err := b.manager.EnsureMessage(ctx, guildID, now)
	if err != nil {
		log.Warnf("Error ensuring message for guild %d: %v", guildID, err)
	}
	if channel == nil || message == nil {
		common.FollowUpWithError(s, i, "Couldn't find or create the clock message. Check permissions.")
		return
	}
	// Message exists but its ID could not be saved; don't claim success.
	if err != nil {
		common.FollowUpWithError(s, i, "Clock message created, but saving its ID failed. It may be recreated after a restart.")
		return
	}

	cfg, err := b.clockService.GetConfig(ctx, guildID)
	if err != nil {
		log.Errorf("Error loading config for guild %d: %v", guildID, err)
		common.FollowUpWithError(s, i, "Unable to load the guild configuration.")
		return
	}

	embed := BuildClockEmbed(now, cfg.Timezones)
	if _, err := b.channels.ChannelMessageEditEmbed(ctx, channel.ID, message.ID, embed); err != nil {
		log.Warnf("Error editing message for guild %d: %v", guildID, err)
		common.FollowUpWithError(s, i, "Couldn't update the clock message. Check permissions.")
		return
	}

	common.FollowUpWithSuccess(s, i, "Refreshed.")
}

// handleTimezoneAutocomplete suggests zones for the tz option of add/remove
func (b *Bot) handleTimezoneAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	var query string
	for _, opt := range options[0].Options {
		if opt.Focused {
			query = opt.StringValue()
			break
		}
	}

	suggestions := b.resolver.Suggest(query, 20)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(suggestions))
	for _, zone := range suggestions {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  zone,
			Value: zone,
		})
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		log.Errorf("Error responding to autocomplete: %v", err)
	}
}
