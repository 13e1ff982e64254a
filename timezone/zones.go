package timezone

import (
	"os"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Conventional zoneinfo locations; the first one that exists wins.
var zoneDirs = []string{
	"/usr/share/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/usr/lib/locale/TZ",
}

var (
	zonesOnce   sync.Once
	cachedZones []string
)

// availableZones enumerates the system zone database once per process. The
// result may be empty on hosts without zoneinfo files; validation does not
// depend on it, only suggestions do.
func availableZones() []string {
	zonesOnce.Do(func() {
		for _, dir := range zoneDirs {
			zones := collectZones(dir, "")
			if len(zones) > 0 {
				sort.Strings(zones)
				cachedZones = zones
				return
			}
		}
	})
	return cachedZones
}

func collectZones(dir, prefix string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var zones []string
	for _, entry := range entries {
		name := entry.Name()
		// Zone names are capitalized by convention; this skips tooling
		// entries like posixrules, leapseconds and the posix/right trees.
		if !unicode.IsUpper(rune(name[0])) {
			continue
		}
		if entry.IsDir() {
			zones = append(zones, collectZones(dir+"/"+name, prefix+name+"/")...)
			continue
		}
		if strings.Contains(name, ".") {
			continue
		}
		zones = append(zones, prefix+name)
	}
	return zones
}
