package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventcal/calendar-api/internal/container"
	handlers "github.com/eventcal/calendar-api/internal/interface/http"
	"github.com/eventcal/calendar-api/internal/interface/middleware"
	"github.com/eventcal/calendar-api/pkg/helpers"
)

// EventModule wires event routes.
// Public: GET /api/events, GET /api/events/search, GET /api/events/:eventId,
// GET /api/events/:eventId/participants
// Protected: create/update/delete and participant changes
type EventModule struct {
	Handler *handlers.EventHandler
	JWT     *helpers.JWTManager
}

func NewEventModule(h *handlers.EventHandler, jwt *helpers.JWTManager) *EventModule {
	return &EventModule{Handler: h, JWT: jwt}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	rg.GET("/events", m.Handler.List)
	rg.GET("/events/search", m.Handler.Search)
	rg.GET("/events/:eventId", m.Handler.Get)
	rg.GET("/events/:eventId/participants", m.Handler.Participants)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, container.GetRevocations()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/events", m.Handler.Create)
		auth.PUT("/events/:eventId", m.Handler.Update)
		auth.DELETE("/events/:eventId", m.Handler.Delete)
		auth.POST("/events/:eventId/participants", m.Handler.AddParticipant)
		auth.DELETE("/events/:eventId/participants/:userId", m.Handler.RemoveParticipant)
	}
}
