package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openalpha/honzon/api"
)

func main() {
	// Command line flags
	host := flag.String("host", "0.0.0.0", "Server host")
	port := flag.Int("port", 8080, "Server port")
	demoMode := flag.Bool("demo", false, "Seed the in-memory keepers with demo positions and auctions")
	blockInterval := flag.Duration("block-interval", 2*time.Second, "How often the standalone keepers advance a block")
	flag.Parse()

	// Create configuration
	config := api.DefaultConfig()
	config.Host = *host
	config.Port = *port

	// Standalone mode runs the collateral subsystem in-process over an
	// in-memory store.
	source, err := api.NewKeeperSource()
	if err != nil {
		log.Fatalf("Failed to build keeper source: %v", err)
	}
	if *demoMode {
		if err := source.SeedDemo(); err != nil {
			log.Fatalf("Failed to seed demo state: %v", err)
		}
		log.Println("Demo mode: seeded positions and a running collateral auction")
	}

	// Drive block progression so auctions settle and the treasury sweeps
	stopBlocks := make(chan struct{})
	go func() {
		ticker := time.NewTicker(*blockInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				source.AdvanceBlock()
			case <-stopBlocks:
				return
			}
		}
	}()

	server := api.NewServer(config, source)

	// Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Honzon API server started on %s:%d", *host, *port)
	log.Printf("WebSocket endpoint: ws://%s:%d/ws", *host, *port)
	log.Printf("Health check: http://%s:%d/health", *host, *port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	close(stopBlocks)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server exited")
}
