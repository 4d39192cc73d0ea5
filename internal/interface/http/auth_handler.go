package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventcal/calendar-api/internal/application"
	"github.com/eventcal/calendar-api/internal/interface/middleware"
	"github.com/eventcal/calendar-api/pkg/response"
	"github.com/eventcal/calendar-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Login POST /api/auth/login
// Unknown email and wrong password produce the identical response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, "Wrong email or password!", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"accessToken": res.AccessToken}, "login successful", gin.H{"expires_at": res.ExpiresAt})
}

// Logout POST /api/auth/logout (guarded)
// Revokes the caller's own token and returns 204 with no body, even when
// the token was already revoked.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.CtxTokenKey)
	if err := h.Svc.Logout(c.Request.Context(), token); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "logout failed", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
