package main

import (
	"booktable/config"
	"booktable/di"
	"booktable/helper"
	"booktable/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title BookTable API
// @version 1.0
// @description Restaurant discovery and table reservation service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
