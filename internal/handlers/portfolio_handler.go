package handlers

import (
	"net/http"

	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	*BaseHandler
	portfolioService services.PortfolioService
	fileRule         validator.FileRule
}

func NewPortfolioHandler(base *BaseHandler, portfolioService services.PortfolioService, fileRule validator.FileRule) *PortfolioHandler {
	return &PortfolioHandler{
		BaseHandler:      base,
		portfolioService: portfolioService,
		fileRule:         fileRule,
	}
}

func (h *PortfolioHandler) RegisterRoutes(rg *gin.RouterGroup, gate gin.HandlerFunc) {
	rg.GET("/portfolio", h.Index)

	portfolio := rg.Group("/portfolio")
	portfolio.Use(gate)
	{
		portfolio.POST("", h.Store)
		portfolio.PUT("/:id", h.Update)
		portfolio.PATCH("/:id", h.Update)
		portfolio.DELETE("/:id", h.Destroy)
	}
}

// Index godoc
// @Summary Список работ
// @Description Все работы, новые первыми
// @Tags portfolio
// @Produce json
// @Success 200 {array} dto.PortfolioItemResponse
// @Router /portfolio [get]
func (h *PortfolioHandler) Index(c *gin.Context) {
	items, err := h.portfolioService.List(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// Store godoc
// @Summary Загрузить работу
// @Tags portfolio
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Изображение или видео"
// @Param title formData string false "Название (по умолчанию имя файла)"
// @Param category formData string false "Категория (по умолчанию Other)"
// @Param description formData string false "Описание"
// @Success 201 {object} dto.PortfolioItemResponse
// @Failure 400 {object} dto.MessageResponse "FILE_MISSING / FILE_INVALID"
// @Failure 422 {object} dto.MessageResponse "Validation failed"
// @Failure 500 {object} dto.MessageResponse "STORAGE_FAILED / UPLOAD_FAILED"
// @Router /portfolio [post]
func (h *PortfolioHandler) Store(c *gin.Context) {
	var req dto.CreatePortfolioRequest

	upload, ok := h.upload(c)
	if !ok {
		return
	}
	if !h.BindAndValidate(c, &req, CheckUpload("file", upload, h.fileRule)) {
		return
	}
	req.File = upload

	item, err := h.portfolioService.Create(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Update godoc
// @Summary Обновить работу
// @Description Все поля необязательны; новый файл заменяет старый
// @Tags portfolio
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "ID работы"
// @Param file formData file false "Новый файл"
// @Param title formData string false "Название"
// @Param category formData string false "Категория"
// @Param description formData string false "Описание"
// @Success 200 {object} dto.PortfolioItemResponse
// @Failure 404 {object} dto.MessageResponse "NOT_FOUND"
// @Failure 422 {object} dto.MessageResponse "Validation failed"
// @Failure 500 {object} dto.MessageResponse "STORAGE_FAILED / UPDATE_FAILED"
// @Router /portfolio/{id} [put]
func (h *PortfolioHandler) Update(c *gin.Context) {
	var req dto.UpdatePortfolioRequest

	upload, ok := h.upload(c)
	if !ok {
		return
	}
	if !h.BindAndValidate(c, &req, CheckUpload("file", upload, h.fileRule)) {
		return
	}
	req.File = upload

	item, err := h.portfolioService.Replace(c.Request.Context(), h.GetDB(c), c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Destroy godoc
// @Summary Удалить работу
// @Tags portfolio
// @Produce json
// @Param id path string true "ID работы"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.MessageResponse "NOT_FOUND"
// @Failure 500 {object} dto.MessageResponse "DELETE_FAILED"
// @Router /portfolio/{id} [delete]
func (h *PortfolioHandler) Destroy(c *gin.Context) {
	if err := h.portfolioService.Remove(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Portfolio item deleted"})
}

// upload - файл из поля "file"; битая часть multipart дает FILE_INVALID
func (h *PortfolioHandler) upload(c *gin.Context) (*dto.FileUpload, bool) {
	upload, err := FormUpload(c, "file")
	if err != nil {
		h.HandleServiceError(c, apperrors.FileInvalid(err))
		return nil, false
	}
	return upload, true
}
