package bot

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildClockEmbed_EmptyList(t *testing.T) {
	embed := BuildClockEmbed(time.Now().UTC(), nil)

	assert.Empty(t, embed.Fields)
	assert.Equal(t, "🕒 World Clocks", embed.Title)
	assert.Equal(t, clockFooter, embed.Footer.Text)
}

func TestBuildClockEmbed_SkipsInvalidZones(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	embed := BuildClockEmbed(now, []string{"not-a-real-zone", "America/New_York"})

	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "America/New_York", embed.Fields[0].Name)
}

func TestBuildClockEmbed_LocalTimeWithDST(t *testing.T) {
	// 2024-03-15 is after the US DST switch: New York is UTC-4.
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

	embed := BuildClockEmbed(now, []string{"America/New_York"})

	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "Fri Mar 15 • 02:30 PM", embed.Fields[0].Value)
	assert.True(t, embed.Fields[0].Inline)
}

func TestBuildClockEmbed_PreservesOrder(t *testing.T) {
	now := time.Now().UTC()
	zones := []string{"Australia/Sydney", "Europe/London", "America/New_York"}

	embed := BuildClockEmbed(now, zones)

	require.Len(t, embed.Fields, 3)
	for i, zone := range zones {
		assert.Equal(t, zone, embed.Fields[i].Name)
	}
}

func TestBuildClockEmbed_CapsAtFieldLimit(t *testing.T) {
	now := time.Now().UTC()
	zones := make([]string, 30)
	for i := range zones {
		// Etc/GMT+N zones are valid up to +12.
		zones[i] = fmt.Sprintf("Etc/GMT+%d", i%12)
	}

	embed := BuildClockEmbed(now, zones)

	assert.Len(t, embed.Fields, 25)
}

func TestBuildClockEmbed_ConsistentInstantAcrossZones(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	embed := BuildClockEmbed(now, []string{"UTC", "Etc/GMT-1"})

	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Mon Jul 01 • 12:00 PM", embed.Fields[0].Value)
	assert.Equal(t, "Mon Jul 01 • 01:00 PM", embed.Fields[1].Value)
}
