package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"fitness-tracker/internal/app"
	"fitness-tracker/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to create application: %v", err)
	}

	if !application.Interactive() {
		application.PrintReport(os.Stdout)
		application.Stop()
		return
	}

	if err := application.Start(); err != nil {
		log.Fatalf("❌ Failed to start application: %v", err)
	}
	defer application.Stop()

	waitForShutdown()
	log.Println("👋 Shutting down")
}

func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}
