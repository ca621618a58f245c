package middleware

import (
	"net/http"
	"strings"
	"time"

	"portfolio_backend/internal/logger"
	"portfolio_backend/pkg/apperrors"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware - список разрешенных Origin с credentials (cookie сессии)
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}
	cfg.AllowCredentials = true
	cfg.MaxAge = 12 * time.Hour
	if len(origins) == 0 {
		// без списка - только same-origin запросы
		cfg.AllowOriginFunc = func(string) bool { return false }
	}
	return cors.New(cfg)
}

// OriginGuard отклоняет небезопасные запросы с чужим Origin.
// Cookie сессии отправляется браузером сам, поэтому одного CORS мало.
// Запросы без Origin (curl, same-origin GET форм) пропускаются.
func OriginGuard(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(strings.ToLower(o), "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		if _, ok := allowed[strings.TrimRight(strings.ToLower(origin), "/")]; !ok {
			logger.CtxWarn(c.Request.Context(), "Rejected request from foreign origin", "origin", origin, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrOriginNotAllowed)
			return
		}

		c.Next()
	}
}
