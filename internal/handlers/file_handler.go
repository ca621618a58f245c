package handlers

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/storage"
	"portfolio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// BlobReader - то, что нужно для отдачи файла
type BlobReader interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

var errFileNotFound = apperrors.New(apperrors.CodeNotFound, "storage", "File not found", http.StatusNotFound)

// FileHandler отдает файлы локального хранилища по /storage/<ref>.
// Для s3 / r2 публичные ссылки указывают прямо на бакет, и маршрут не регистрируется.
type FileHandler struct {
	*BaseHandler
	blobs BlobReader
}

func NewFileHandler(base *BaseHandler, blobs BlobReader) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		blobs:       blobs,
	}
}

func (h *FileHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/storage/*path", h.ServeFile)
	r.HEAD("/storage/*path", h.ServeFile)
}

// ServeFile отдает blob с типом по расширению или по содержимому
func (h *FileHandler) ServeFile(c *gin.Context) {
	ref := strings.TrimPrefix(path.Clean("/"+c.Param("path")), "/")
	if ref == "" || strings.HasPrefix(path.Base(ref), ".") {
		apperrors.HandleError(c, errFileNotFound)
		return
	}

	ctx := c.Request.Context()
	rc, err := h.blobs.Open(ctx, ref)
	if err != nil {
		if !errors.Is(err, storage.ErrObjectNotFound) {
			logger.CtxWithError(ctx, "Failed to open stored file", err, "ref", ref)
			apperrors.HandleError(c, apperrors.StorageFailed(err))
			return
		}
		apperrors.HandleError(c, errFileNotFound)
		return
	}
	defer rc.Close()

	contentType, body, err := storage.DetectContentType(rc, mime.TypeByExtension(path.Ext(ref)))
	if err != nil {
		logger.CtxWithError(ctx, "Failed to read stored file", err, "ref", ref)
		apperrors.HandleError(c, apperrors.StorageFailed(err))
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.DataFromReader(http.StatusOK, -1, contentType, body, nil)
}
