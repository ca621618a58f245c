package handlers

import (
	"fmt"
	"net/http"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const contactSuccessMessage = "Your inquiry has been sent successfully! I will get back to you within 24 hours."

type ContactHandler struct {
	*BaseHandler
	contactService services.ContactService
	videoRule      validator.FileRule
}

func NewContactHandler(base *BaseHandler, contactService services.ContactService, videoRule validator.FileRule) *ContactHandler {
	return &ContactHandler{
		BaseHandler:    base,
		contactService: contactService,
		videoRule:      videoRule,
	}
}

func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.Submit)
}

// Submit godoc
// @Summary Форма обратной связи
// @Description Отправляет заявку владельцу на почту, видео необязательно
// @Tags contact
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Имя"
// @Param email formData string true "Email"
// @Param phone formData string false "Телефон"
// @Param service formData string true "Услуга"
// @Param date formData string false "Дата"
// @Param message formData string false "Сообщение"
// @Param video formData file false "Видео (до 50MB)"
// @Success 200 {object} dto.ContactResponse
// @Failure 422 {object} dto.ContactResponse
// @Failure 500 {object} dto.ContactResponse
// @Router /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ContactRequest
	if !h.Bind(c, &req) {
		return
	}

	// нечитаемое видео не повод отклонять заявку
	video, err := FormUpload(c, "video")
	if err != nil {
		logger.CtxWarnWithError(ctx, "Skipping unreadable contact video", err)
		video = nil
	}

	verrs, err := h.Check(&req, CheckUpload("video", video, h.videoRule))
	if err != nil {
		h.fail(c, apperrors.InternalError(err))
		return
	}
	if verrs != nil {
		logger.CtxWarn(ctx, "Contact validation failed", "errors", verrs.Errors)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  verrs.Errors,
		})
		return
	}
	req.Video = video

	if err := h.contactService.Submit(ctx, &req); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ContactResponse{
		Success: true,
		Message: contactSuccessMessage,
	})
}

// fail - 500 в формате формы контактов. Причина видна только вне production.
func (h *ContactHandler) fail(c *gin.Context, err error) {
	logger.CtxWithError(c.Request.Context(), "Contact form submission failed", err)

	detail := "MAIL_FAILED"
	if appErr, ok := apperrors.AsAppError(err); ok {
		detail = string(appErr.Code)
	}
	if gin.Mode() == gin.DebugMode {
		detail = err.Error()
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ContactResponse{
		Success: false,
		Message: fmt.Sprintf("Failed to send inquiry. Please try again or contact directly at %s", h.contactService.OwnerEmail()),
		Error:   detail,
	})
}
