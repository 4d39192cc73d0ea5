package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventcal/calendar-api/internal/application"
	"github.com/eventcal/calendar-api/internal/domain/entity"
	"github.com/eventcal/calendar-api/pkg/response"
	"github.com/eventcal/calendar-api/pkg/validation"
)

type UserHandler struct {
	Auth   *application.AuthService
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(auth *application.AuthService, users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Auth: auth, Users: users, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,uname"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Address  string `json:"address" binding:"addr"`
}

type updateUserRequest struct {
	Username string `json:"username" binding:"required,uname"`
	Address  string `json:"address" binding:"required,min=5"`
}

// userView strips credentials from API output; the hash never leaves the server.
func userView(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"username":   u.Username,
		"address":    u.Address,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// Register POST /api/users
// Creates the account and immediately issues a token for it.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Auth.Register(c.Request.Context(), application.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrDuplicateEmail):
			response.Error[any](c, http.StatusBadRequest, "This email already exists!", nil)
		case errors.Is(err, application.ErrDuplicateUsername):
			response.Error[any](c, http.StatusBadRequest, "This username already exists!", nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "registration failed", nil)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"accessToken": res.AccessToken}, "user registered", gin.H{"expires_at": res.ExpiresAt})
}

// List GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Users.GetAll()
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "No users were found!", nil)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, userView(u))
	}
	response.Success(c, http.StatusOK, out, "users", nil)
}

// Get GET /api/users/:userId
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Users.GetByID(c.Param("userId"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "User not found!", nil)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "user", nil)
}

// Update PUT /api/users/:userId (guarded)
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Users.Update(c.Param("userId"), application.UpdateUserInput{
		Username: req.Username,
		Address:  req.Address,
	})
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "No such user!", nil)
			return
		}
		response.Error[any](c, http.StatusConflict, "failed to update user", nil)
		return
	}
	response.Success(c, http.StatusOK, userView(u), "user updated", nil)
}

// Delete DELETE /api/users/:userId (guarded)
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Users.Delete(c.Param("userId")); err != nil {
		response.Error[any](c, http.StatusNotFound, "No such user!", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
