package router

import (
	"github.com/eventcal/calendar-api/internal/application"
	"github.com/eventcal/calendar-api/internal/container"
	pginfra "github.com/eventcal/calendar-api/internal/infrastructure/postgres"
	handlers "github.com/eventcal/calendar-api/internal/interface/http"
	"github.com/eventcal/calendar-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	eventRepo := pginfra.NewEventRepository(container.GetPGPool())

	authSvc := application.NewAuthService(
		userRepo,
		container.GetHasher(),
		container.GetJWT(),
		container.GetRevocations(),
		container.GetLogger(),
	)
	userSvc := application.NewUserService(userRepo, container.GetLogger())
	eventSvc := application.NewEventService(
		eventRepo,
		userRepo,
		container.GetRabbitPub(),
		container.GetES(),
		container.GetConfig().ESEventsIndex,
		container.GetLogger(),
	)

	authHandler := handlers.NewAuthHandler(authSvc, container.GetLogger())
	userHandler := handlers.NewUserHandler(authSvc, userSvc, container.GetLogger())
	eventHandler := handlers.NewEventHandler(eventSvc, container.GetLogger())

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewUserModule(userHandler, container.GetJWT()))
	r.Add(modules.NewEventModule(eventHandler, container.GetJWT()))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
