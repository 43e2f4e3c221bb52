//go:build wireinject
// +build wireinject

package di

import (
	"booktable/config"
	"booktable/helper"
	"booktable/infras/jwt"
	"booktable/infras/kafka"
	"booktable/infras/mailer"
	"booktable/infras/otel"
	"booktable/infras/postgres"
	"booktable/infras/rabbitmq"
	"booktable/infras/redis"
	"booktable/infras/s3"
	"booktable/permissions"
	"booktable/shared/cache"
	"booktable/transport/http"
	"booktable/transport/http/middleware"
	"booktable/transport/http/router"

	"github.com/google/wire"

	authService "booktable/internal/domains/auth/service"
	bookingRepository "booktable/internal/domains/booking/repository"
	bookingService "booktable/internal/domains/booking/service"
	"booktable/internal/domains/notification/dispatcher"
	"booktable/internal/domains/notification/publisher"
	restaurantRepository "booktable/internal/domains/restaurant/repository"
	restaurantService "booktable/internal/domains/restaurant/service"
	reviewService "booktable/internal/domains/review/service"
	userRepository "booktable/internal/domains/user/repository"
	adminHandler "booktable/internal/handlers/admin"
	authHandler "booktable/internal/handlers/auth"
	customerHandler "booktable/internal/handlers/customer"
	restaurantHandler "booktable/internal/handlers/restaurant"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
)

var messaging = wire.NewSet(
	kafka.New,
	rabbitmq.New,
	mailer.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var notificationDomain = wire.NewSet(
	dispatcher.New,
	publisher.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var restaurantDomain = wire.NewSet(
	restaurantRepository.New,
	restaurantService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var reviewDomain = wire.NewSet(
	reviewService.New,
)

var domains = wire.NewSet(
	notificationDomain,
	authDomain,
	restaurantDomain,
	bookingDomain,
	reviewDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	customerHandler.New,
	restaurantHandler.New,
	adminHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		messaging,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeConsumer() *dispatcher.Consumer {
	wire.Build(
		config.Get,
		otel.New,
		messaging,
		dispatcher.New,
		dispatcher.NewConsumer,
	)

	return &dispatcher.Consumer{}
}

func InitializeSeeder() *helper.Seeder {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		userRepository.New,
		restaurantRepository.New,
		helper.NewSeeder,
	)

	return &helper.Seeder{}
}
