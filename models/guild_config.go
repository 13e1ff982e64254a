package models

// MaxDisplayedTimezones is Discord's embed field limit; stored lists may be
// longer, the excess is simply not rendered.
const MaxDisplayedTimezones = 25

// GuildConfig holds the per-guild world clock configuration. ChannelID and
// MessageID are nil until an administrator targets a channel and the first
// status message is created. MessageID is only meaningful for the ChannelID
// it was created under.
type GuildConfig struct {
	ChannelID *int64   `json:"channel_id"`
	MessageID *int64   `json:"message_id"`
	Timezones []string `json:"timezones"`
	Running   bool     `json:"running"`
}

// Clone returns a deep copy so callers never share the canonical slice.
func (c *GuildConfig) Clone() GuildConfig {
	out := GuildConfig{
		Timezones: append([]string(nil), c.Timezones...),
		Running:   c.Running,
	}
	if c.ChannelID != nil {
		id := *c.ChannelID
		out.ChannelID = &id
	}
	if c.MessageID != nil {
		id := *c.MessageID
		out.MessageID = &id
	}
	return out
}

// HasTimezone reports whether zone is already in the configured list.
func (c *GuildConfig) HasTimezone(zone string) bool {
	for _, z := range c.Timezones {
		if z == zone {
			return true
		}
	}
	return false
}
