package main

import (
	"fmt"
	"os"

	"fortnite-bot/bot"
	"fortnite-bot/config"
	"fortnite-bot/handlers"
	"fortnite-bot/skills"
	"fortnite-bot/utils"

	"go.uber.org/zap"

	_ "time/tzdata" // scheduler timezones on hosts without a zoneinfo database
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading configuration:", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error creating logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Source == "" {
		logger.Info("config file not found, using environment variables and defaults")
	} else {
		logger.Info("configuration loaded", zap.String("file", cfg.Source))
	}

	if err := bot.Run(cfg, logger, handlers.Register, skills.All); err != nil {
		logger.Error("bot exited with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
