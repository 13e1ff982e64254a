package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	// Fallback zone database for containers shipped without system tzdata.
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"worldclock/cmd"
)

func main() {
	// Optional .env file for local development; deployments set real env vars.
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	// Run the application
	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error:", err)
	}
}
