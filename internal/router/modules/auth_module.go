package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventcal/calendar-api/internal/container"
	handlers "github.com/eventcal/calendar-api/internal/interface/http"
	"github.com/eventcal/calendar-api/internal/interface/middleware"
	"github.com/eventcal/calendar-api/pkg/helpers"
)

// AuthModule wires login and logout.
// Public: POST /api/auth/login
// Protected: POST /api/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil) // 10 req/min per IP

	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, container.GetRevocations()))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
	}
}
