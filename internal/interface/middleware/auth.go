package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventcal/calendar-api/internal/infrastructure/revocation"
	"github.com/eventcal/calendar-api/pkg/helpers"
	"github.com/eventcal/calendar-api/pkg/response"
)

// HeaderAuthorization is the custom header clients resend the bearer token in.
const HeaderAuthorization = "X-Authorization"

// Gin context keys set by Auth on success.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxUserNameKey  = "userName"
	CtxTokenKey     = "accessToken"
)

// Auth is the request-time guard for protected routes. It validates the
// bearer token's signature and expiry, then checks the revocation list, and
// attaches the authenticated identity to the Gin context.
//
// Revoked tokens get the same message as invalid ones so revocation state
// does not leak. A revocation store failure also denies the request.
func Auth(jwt *helpers.JWTManager, revocations revocation.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderAuthorization)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "token missing", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "Invalid token!", nil)
			c.Abort()
			return
		}
		revoked, err := revocations.IsRevoked(c.Request.Context(), token)
		if err != nil || revoked {
			response.Error[any](c, http.StatusUnauthorized, "Invalid token!", nil)
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Set(CtxUserNameKey, claims.Username)
		c.Set(CtxTokenKey, token)
		c.Next()
	}
}
