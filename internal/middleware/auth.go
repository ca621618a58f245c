package middleware

import (
	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/services"
	"portfolio_backend/pkg/apperrors"
	"portfolio_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware пропускает только запросы с живой аутентифицированной сессией.
// Иначе 401 {"message":"Unauthenticated."} до вызова обработчика.
func AdminAuthMiddleware(sessions services.SessionService, cookies auth.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.ReadSessionCookie(c)

		sessionID := ""
		if token != "" {
			sessionID = sessions.SessionID(c.Request.Context(), GetDB(c), token)
		}

		if sessionID == "" {
			apperrors.HandleError(c, apperrors.ErrUnauthenticated)
			return
		}

		c.Set(string(contextkeys.SessionIDKey), sessionID)
		c.Set(string(contextkeys.SessionTokenKey), token)
		c.Request = c.Request.WithContext(logger.WithSessionID(c.Request.Context(), sessionID))

		c.Next()
	}
}

// GetSessionID - id сессии, установленный AdminAuthMiddleware
func GetSessionID(c *gin.Context) (string, bool) {
	v, ok := c.Get(string(contextkeys.SessionIDKey))
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
