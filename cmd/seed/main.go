package main

import (
	"booktable/config"
	"booktable/di"
	"booktable/shared/logger"
	"context"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if err := di.InitializeSeeder().Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed database")
	}

	log.Info().Msg("Database seeded")
}
