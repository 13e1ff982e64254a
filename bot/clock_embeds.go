package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"worldclock/models"
)

const (
	clockTimeFormat = "Mon Jan 02 • 03:04 PM"
	clockFooter     = "Updates every minute • Times account for DST where applicable"
)

// BuildClockEmbed renders the world clock display for now. Pure function: it
// never touches the store or network. Zones render in insertion order, capped
// at Discord's embed field limit; entries that no longer resolve to a zone
// database entry are skipped so the remaining zones still render.
func BuildClockEmbed(now time.Time, zones []string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🕒 World Clocks",
		Color: 0x2ecc71,
		Footer: &discordgo.MessageEmbedFooter{
			Text: clockFooter,
		},
	}

	display := zones
	if len(display) > models.MaxDisplayedTimezones {
		display = display[:models.MaxDisplayedTimezones]
	}

	for _, zone := range display {
		if zone == "" {
			continue
		}
		loc, err := time.LoadLocation(zone)
		if err != nil {
			continue
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   zone,
			Value:  now.In(loc).Format(clockTimeFormat),
			Inline: true,
		})
	}

	return embed
}
