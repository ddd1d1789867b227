//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"serenity/config"
	"serenity/infras/jwt"
	"serenity/infras/kafka"
	"serenity/infras/otel"
	"serenity/infras/postgres"
	"serenity/infras/redis"
	"serenity/internal/events"
	"serenity/shared/cache"
	"serenity/transport/http"
	"serenity/transport/http/middleware"
	"serenity/transport/http/router"

	blockeddateRepository "serenity/internal/domains/blockeddate/repository"
	blockeddateService "serenity/internal/domains/blockeddate/service"
	bookingRepository "serenity/internal/domains/booking/repository"
	bookingService "serenity/internal/domains/booking/service"
	scheduleService "serenity/internal/domains/schedule/service"
	timeslotRepository "serenity/internal/domains/timeslot/repository"
	timeslotService "serenity/internal/domains/timeslot/service"
	treatmentRepository "serenity/internal/domains/treatment/repository"
	treatmentService "serenity/internal/domains/treatment/service"

	blockeddateHandler "serenity/internal/handlers/blockeddate"
	bookingHandler "serenity/internal/handlers/booking"
	healthHandler "serenity/internal/handlers/health"
	scheduleHandler "serenity/internal/handlers/schedule"
	timeslotHandler "serenity/internal/handlers/timeslot"
	treatmentHandler "serenity/internal/handlers/treatment"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var treatmentDomain = wire.NewSet(
	treatmentRepository.New,
	treatmentService.New,
)

var timeslotDomain = wire.NewSet(
	timeslotRepository.New,
	timeslotService.New,
)

var blockeddateDomain = wire.NewSet(
	blockeddateRepository.New,
	blockeddateService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleService.NewClock,
	scheduleService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	events.NewNotifier,
	bookingService.New,
)

var domains = wire.NewSet(
	treatmentDomain,
	timeslotDomain,
	blockeddateDomain,
	scheduleDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	scheduleHandler.New,
	bookingHandler.New,
	treatmentHandler.New,
	timeslotHandler.New,
	blockeddateHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
