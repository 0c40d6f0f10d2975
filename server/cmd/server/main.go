package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/arena-mp/server/config"
	"github.com/automoto/arena-mp/server/core"
)

func main() {
	configPath := flag.String("config", "", "Config file or directory (default: search relay.yaml)")
	envFile := flag.String("env", ".env", "Dotenv file loaded before the environment")
	addr := flag.String("addr", "", "Listen address, overrides config")
	room := flag.String("room", "", "Room name, overrides config")
	flag.Parse()

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *room != "" {
		cfg.Room = *room
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	server := core.NewServer(*cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}()

	log.Printf("Starting arena relay %q on %s", cfg.Room, cfg.Addr)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
