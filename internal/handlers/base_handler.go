package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"
	"portfolio_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// FieldCheck - дополнительная проверка, которую не выразить тегами (файлы)
type FieldCheck func(errs *validator.ValidationError)

// ============================================================================
// 2. Извлечение DB
// ============================================================================

// GetDB извлекает *gorm.DB из gin.Context.
// Без DBMiddleware приложение собрано неверно, поэтому паника.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// ============================================================================
// 3. Привязка и валидация
// ============================================================================

// Bind разбирает json, urlencoded или multipart тело в obj
func (h *BaseHandler) Bind(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to bind request body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return true
}

// Check прогоняет теги validate и дополнительные проверки.
// (nil, nil) - все в порядке.
func (h *BaseHandler) Check(obj interface{}, checks ...FieldCheck) (*validator.ValidationError, error) {
	verrs := validator.NewValidationError()

	if err := h.validator.Validate(obj); err != nil {
		if !verrs.Merge(err) {
			return nil, err
		}
	}
	for _, check := range checks {
		check(verrs)
	}

	if verrs.HasErrors() {
		return verrs, nil
	}
	return nil, nil
}

func (h *BaseHandler) BindAndValidate(c *gin.Context, obj interface{}, checks ...FieldCheck) bool {
	ctx := c.Request.Context()

	if !h.Bind(c, obj) {
		return false
	}

	verrs, err := h.Check(obj, checks...)
	if err != nil {
		logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
		return false
	}
	if verrs != nil {
		logger.CtxWarn(ctx, "Validation failed", "errors", verrs.Errors, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ValidationError(verrs.Errors))
		return false
	}
	return true
}

// ============================================================================
// 4. Ошибки сервисов
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	if appErr, ok := apperrors.AsAppError(err); ok {
		if appErr.HTTPCode < http.StatusInternalServerError {
			logger.CtxWarn(ctx, "Service error",
				"error", appErr.Message,
				"code", string(appErr.Code),
				"path", c.Request.URL.Path,
			)
		}
		apperrors.HandleError(c, appErr)
		return
	}

	logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
	apperrors.HandleError(c, apperrors.InternalError(err))
}

// ============================================================================
// 5. Файлы из multipart
// ============================================================================

// FormUpload - файл из поля формы. Отсутствующий или пустой файл дает (nil, nil).
func FormUpload(c *gin.Context, field string) (*dto.FileUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	if fh.Size == 0 {
		return nil, nil
	}
	return dto.NewFileUpload(fh), nil
}

// CheckUpload применяет ограничения размера и расширения к необязательному файлу
func CheckUpload(field string, upload *dto.FileUpload, rule validator.FileRule) FieldCheck {
	return func(errs *validator.ValidationError) {
		if upload == nil {
			return
		}
		for _, msg := range rule.CheckFile(field, upload.Filename, upload.Size) {
			errs.Add(field, msg)
		}
	}
}
