package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/cleversamer/accountsvc/internal/app"
	"github.com/cleversamer/accountsvc/internal/config"
)

func main() {
	// Missing .env is fine; real deployments inject the environment.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config")
	}
	if err := app.Run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("app")
	}
}
