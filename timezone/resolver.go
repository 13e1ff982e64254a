package timezone

import (
	"strings"
	"time"
	"unicode"
)

// aliases maps common city names and abbreviations to canonical IANA
// identifiers. Static, read-only data; keys are stored lower-case.
var aliases = map[string]string{
	"new york":    "America/New_York",
	"nyc":         "America/New_York",
	"boston":      "America/New_York",
	"et":          "America/New_York",
	"eastern":     "America/New_York",
	"chicago":     "America/Chicago",
	"ct":          "America/Chicago",
	"central":     "America/Chicago",
	"denver":      "America/Denver",
	"mt":          "America/Denver",
	"mountain":    "America/Denver",
	"phoenix":     "America/Phoenix",
	"la":          "America/Los_Angeles",
	"los angeles": "America/Los_Angeles",
	"seattle":     "America/Los_Angeles",
	"pt":          "America/Los_Angeles",
	"pacific":     "America/Los_Angeles",
	"london":      "Europe/London",
	"uk":          "Europe/London",
	"paris":       "Europe/Paris",
	"berlin":      "Europe/Berlin",
	"madrid":      "Europe/Madrid",
	"rome":        "Europe/Rome",
	"warsaw":      "Europe/Warsaw",
	"tokyo":       "Asia/Tokyo",
	"seoul":       "Asia/Seoul",
	"singapore":   "Asia/Singapore",
	"sydney":      "Australia/Sydney",
	"melbourne":   "Australia/Melbourne",
	"auckland":    "Pacific/Auckland",
	"utc":         "UTC",
	"gmt":         "Etc/GMT",
}

// Resolver normalizes free-text input into canonical IANA zone identifiers.
type Resolver struct {
	zones []string
}

// NewResolver returns a resolver backed by the static alias table and the
// system zone database (used for suggestions; validation goes through
// time.LoadLocation so it works with the embedded tzdata fallback too).
func NewResolver() *Resolver {
	return &Resolver{zones: availableZones()}
}

// Resolve maps input to a canonical IANA zone identifier. Lookup order:
// lower-cased alias table, exact IANA match on the raw input, then the
// title-cased input as an IANA candidate so "america/new_york" still works.
func (r *Resolver) Resolve(input string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(input))
	if key == "" {
		return "", false
	}
	if zone, ok := aliases[key]; ok {
		return zone, true
	}
	if trimmed := strings.TrimSpace(input); isValidZone(trimmed) {
		return trimmed, true
	}
	if candidate := titleCase(key); isValidZone(candidate) {
		return candidate, true
	}
	return "", false
}

// Suggest returns up to limit zone identifiers matching query, drawing first
// from the alias table and then from the enumerated zone database.
func (r *Resolver) Suggest(query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []string
	seen := make(map[string]bool)
	for alias, zone := range aliases {
		if len(out) >= limit {
			return out
		}
		if strings.Contains(alias, query) && !seen[zone] {
			seen[zone] = true
			out = append(out, zone)
		}
	}
	for _, zone := range r.zones {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(zone), query) && !seen[zone] {
			seen[zone] = true
			out = append(out, zone)
		}
	}
	return out
}

// isValidZone reports whether name is a loadable IANA identifier. Empty and
// "Local" are special cases of LoadLocation that are not real zone names.
func isValidZone(name string) bool {
	if name == "" || name == "Local" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// titleCase upper-cases the letter starting each word, where words break on
// any non-letter ("/", "_", spaces), matching IANA segment casing.
func titleCase(s string) string {
	runes := []rune(s)
	prevLetter := false
	for i, r := range runes {
		if unicode.IsLetter(r) && !prevLetter {
			runes[i] = unicode.ToUpper(r)
		}
		prevLetter = unicode.IsLetter(runes[i])
	}
	return string(runes)
}
