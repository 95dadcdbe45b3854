package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"statcalc/internal/config"
	"statcalc/internal/container"
)

// main serves the HTML front end and the JSON API side by side
func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	uiServer, err := appContainer.UIServer()
	if err != nil {
		log.Fatalf("Failed to initialize UI: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer.Logger.Info("starting statcalc: ui on :%s, api on :%s", appConfig.Server.Port, appConfig.Server.APIPort)
	if err := appContainer.Serve(ctx, uiServer, appContainer.APIServer()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
