package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventcal/calendar-api/internal/container"
	handlers "github.com/eventcal/calendar-api/internal/interface/http"
	"github.com/eventcal/calendar-api/internal/interface/middleware"
	"github.com/eventcal/calendar-api/pkg/helpers"
)

// UserModule wires user routes.
// Public: POST /api/users (register), GET /api/users, GET /api/users/:userId
// Protected: PUT /api/users/:userId, DELETE /api/users/:userId
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/users", registerLimiter, m.Handler.Register)
	rg.GET("/users", m.Handler.List)
	rg.GET("/users/:userId", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, container.GetRevocations()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.PUT("/users/:userId", m.Handler.Update)
		auth.DELETE("/users/:userId", m.Handler.Delete)
	}
}
