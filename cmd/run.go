package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"worldclock/bot"
	"worldclock/config"
	"worldclock/repository"
	"worldclock/server"
	"worldclock/service"
	"worldclock/telemetry"
	"worldclock/timezone"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting world clock bot...")

	// Load configuration; a missing token is fatal here
	cfg := config.Get()

	// Initialize metrics
	telemetry.Init()

	// Initialize the guild config store
	log.Printf("Loading guild configs from %s...", cfg.ConfigPath)
	store, err := repository.NewGuildConfigRepository(cfg.ConfigPath, cfg.DefaultTimezones)
	if err != nil {
		return fmt.Errorf("failed to open guild config store: %w", err)
	}
	log.Println("Guild config store loaded successfully")

	// Initialize services
	resolver := timezone.NewResolver()
	clockService := service.NewClockService(store, resolver)

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{Token: cfg.DiscordToken}, store, resolver, clockService)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Start the keep-alive HTTP server
	go func() {
		if err := server.Run(ctx, cfg.Port); err != nil {
			log.Printf("Keep-alive server stopped: %v", err)
		}
	}()

	// Run the refresh scheduler until shutdown
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	discordBot.RunScheduler(ctx)

	// Cleanup resources
	log.Println("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
