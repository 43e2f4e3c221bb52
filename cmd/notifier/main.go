package main

import (
	"booktable/config"
	"booktable/di"
	"booktable/internal/domains/notification/dispatcher"
	"booktable/shared/logger"
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := di.InitializeConsumer()

	err := consumer.Run(ctx)

	switch {
	case errors.Is(err, dispatcher.ErrNothingToConsume):
		log.Warn().Msg("Direct notification broker configured, the API sends mail itself")
	case err != nil && !errors.Is(err, context.Canceled):
		log.Fatal().Err(err).Msg("Notification consumer failed")
	}

	log.Info().Msg("Notification consumer stopped")
}
