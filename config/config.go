package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string

	// Storage configuration
	ConfigPath string

	// Clock configuration
	DefaultTimezones []string

	// Keep-alive HTTP server port
	Port int

	// Environment
	Environment string // "development" or "production"
}

// DefaultTimezoneList is used for guilds that have never configured their own list.
var DefaultTimezoneList = []string{
	"America/New_York",
	"Europe/London",
	"Europe/Paris",
	"Asia/Tokyo",
	"Australia/Sydney",
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken: os.Getenv("DISCORD_TOKEN"),

		// Storage with default
		ConfigPath: os.Getenv("CONFIG_PATH"),

		// Keep-alive server default; hosting platforms inject PORT
		Port: 10000,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	if config.ConfigPath == "" {
		config.ConfigPath = "data/config.json"
	}

	// Override defaults if environment variables are set
	if port := os.Getenv("PORT"); port != "" {
		if parsedPort, err := strconv.Atoi(port); err == nil {
			config.Port = parsedPort
		}
	}

	// Parse default time zone list
	if zones := os.Getenv("DEFAULT_TIMEZONES"); zones != "" {
		for _, zone := range strings.Split(zones, ",") {
			zone = strings.TrimSpace(zone)
			if zone != "" {
				config.DefaultTimezones = append(config.DefaultTimezones, zone)
			}
		}
	}
	if len(config.DefaultTimezones) == 0 {
		config.DefaultTimezones = append([]string(nil), DefaultTimezoneList...)
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
	}

	return config, nil
}
