package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/osse101/SpinWheel_Go/internal/config"
	"github.com/osse101/SpinWheel_Go/internal/discord"
	"github.com/osse101/SpinWheel_Go/internal/logger"
)

// DefaultHealthPort serves the bot's /health endpoint
const DefaultHealthPort = "8082"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "spin-wheel-discord", cfg.Version, cfg.Environment, false))

	botCfg, err := botConfig(cfg)
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bot, err := discord.New(botCfg)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	healthPort := os.Getenv("DISCORD_HEALTH_PORT")
	if healthPort == "" {
		healthPort = DefaultHealthPort
	}
	httpServer := discord.NewHTTPServer(healthPort, bot)
	httpServer.Start()
	defer httpServer.Stop()

	discord.RegisterWheelCommands(bot.Registry)

	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if forceUpdate {
		slog.Info("Force command update enabled via environment variable")
	}
	if err := bot.RegisterCommands(forceUpdate); err != nil {
		// The bot can still run if commands are already registered
		slog.Error("Failed to register commands", "error", err)
	}

	if err := bot.Run(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

// botConfig extracts the Discord settings, failing when required values are missing
func botConfig(cfg *config.Config) (discord.Config, error) {
	if cfg.DiscordToken == "" {
		return discord.Config{}, errors.New("DISCORD_TOKEN is required")
	}
	if cfg.DiscordAppID == "" {
		return discord.Config{}, errors.New("DISCORD_APP_ID is required")
	}
	slog.Info("Configured API URL", "url", cfg.APIURL)

	return discord.Config{
		Token:  cfg.DiscordToken,
		AppID:  cfg.DiscordAppID,
		APIURL: cfg.APIURL,
		APIKey: cfg.APIKey,
	}, nil
}
