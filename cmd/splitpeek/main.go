package main

import (
	"log"
	"os"

	"splitpeek/internal/app"
	"splitpeek/internal/config"
	"splitpeek/internal/logger"
)

const configPath = "splitpeek.toml"

func main() {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("config: %v, continuing with defaults", err)
	}

	appLogger := logger.NewConsoleLogger(logger.ParseLevel(cfg.LogLevel))

	application, err := app.NewApplication(cfg, appLogger)
	if err != nil {
		appLogger.Error("Main", err, nil)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		appLogger.Error("Main", err, nil)
		os.Exit(1)
	}
}
