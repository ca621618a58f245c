package apperrors

import (
	"portfolio_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError - основная логика обработки ошибок для Gin
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "Server error", err,
			"code", string(appErr.Code),
			"domain", appErr.Domain,
		)
	}

	body := gin.H{"message": appErr.Message}
	if appErr.Code != "" {
		body["error"] = appErr.Code
	}
	if appErr.Details != nil {
		body["errors"] = appErr.Details
	}
	if h.Debug && appErr.HTTPCode >= 500 && appErr.Err != nil {
		body["detail"] = appErr.Err.Error()
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, body)
}

// HandleError - быстрая функция-помощник для Gin.
// Подробности причины отдаются только вне production.
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() == gin.DebugMode}
	handler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
