package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/storage"
	"portfolio_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const defaultPortfolioCategory = "Other"

// removeAttempts - сколько раз Remove перечитывает запись, если ее файл сменился
const removeAttempts = 3

// BlobStore - то, что сервисам нужно от хранилища файлов
type BlobStore interface {
	Put(ctx context.Context, r io.Reader, suggestedName, namespace, contentType string) (string, error)
	Exists(ctx context.Context, ref string) (bool, error)
	Delete(ctx context.Context, ref string) error
	PublicURL(ref string) string
}

// PortfolioService держит запись и файл согласованными:
//   - create: сначала файл, потом запись; запись не создалась - файл удаляется
//   - replace: новый файл, запись, и только потом удаление старого файла
//   - remove: сначала файл, потом запись
type PortfolioService interface {
	List(ctx context.Context, db *gorm.DB) ([]dto.PortfolioItemResponse, error)
	Create(ctx context.Context, db *gorm.DB, req *dto.CreatePortfolioRequest) (*dto.PortfolioItemResponse, error)
	Replace(ctx context.Context, db *gorm.DB, id string, req *dto.UpdatePortfolioRequest) (*dto.PortfolioItemResponse, error)
	Remove(ctx context.Context, db *gorm.DB, id string) error
}

type portfolioService struct {
	portfolioRepo repositories.PortfolioRepository
	blobs         BlobStore
}

func NewPortfolioService(portfolioRepo repositories.PortfolioRepository, blobs BlobStore) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		blobs:         blobs,
	}
}

func (s *portfolioService) List(ctx context.Context, db *gorm.DB) ([]dto.PortfolioItemResponse, error) {
	items, err := s.portfolioRepo.ListAll(db.WithContext(ctx))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.PortfolioItemResponse, 0, len(items))
	for i := range items {
		result = append(result, *s.project(&items[i]))
	}
	return result, nil
}

func (s *portfolioService) Create(ctx context.Context, db *gorm.DB, req *dto.CreatePortfolioRequest) (*dto.PortfolioItemResponse, error) {
	if req.File == nil {
		return nil, apperrors.ErrFileMissing
	}

	stored, err := s.storeFile(ctx, req.File)
	if err != nil {
		return nil, err
	}

	item := &models.PortfolioItem{
		Title:       valueOr(req.Title, req.File.Filename),
		Category:    ptrOr(req.Category, defaultPortfolioCategory),
		Description: nonEmpty(req.Description),
	}
	stored.applyTo(item)

	if err := s.portfolioRepo.Create(db.WithContext(ctx), item); err != nil {
		s.discardBlob(ctx, stored.ref, "create")
		return nil, apperrors.UploadFailed(err)
	}

	logger.CtxInfo(ctx, "Portfolio item created", "id", item.ID, "path", item.FilePath, "is_video", item.IsVideo)
	return s.project(item), nil
}

func (s *portfolioService) Replace(ctx context.Context, db *gorm.DB, id string, req *dto.UpdatePortfolioRequest) (*dto.PortfolioItemResponse, error) {
	itemID, ok := parseItemID(id)
	if !ok {
		return nil, apperrors.ErrPortfolioNotFound
	}

	item, err := s.portfolioRepo.FindByID(db.WithContext(ctx), itemID)
	if err != nil {
		return nil, s.mapFindError(err, apperrors.UpdateFailed)
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		item.Title = *req.Title
	}
	if req.Category != nil {
		item.Category = nonEmpty(req.Category)
	}
	if req.Description != nil {
		item.Description = nonEmpty(req.Description)
	}

	oldRef := ""
	var stored *storedFile
	if req.File != nil {
		stored, err = s.storeFile(ctx, req.File)
		if err != nil {
			return nil, err
		}
		oldRef = item.FilePath
		stored.applyTo(item)
	}

	if err := s.portfolioRepo.Update(db.WithContext(ctx), item); err != nil {
		if stored != nil {
			s.discardBlob(ctx, stored.ref, "replace")
		}
		if errors.Is(err, repositories.ErrPortfolioItemNotFound) {
			// запись удалили параллельно
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.UpdateFailed(err)
	}

	// старый файл удаляем только после успешного обновления записи
	if oldRef != "" && oldRef != item.FilePath {
		if err := s.blobs.Delete(ctx, oldRef); err != nil {
			logger.CtxWarnWithError(ctx, "Failed to delete replaced portfolio file", err, "ref", oldRef, "id", item.ID)
		}
	}

	logger.CtxInfo(ctx, "Portfolio item updated", "id", item.ID, "file_replaced", stored != nil)
	return s.project(item), nil
}

func (s *portfolioService) Remove(ctx context.Context, db *gorm.DB, id string) error {
	itemID, ok := parseItemID(id)
	if !ok {
		return apperrors.ErrPortfolioNotFound
	}

	for attempt := 1; attempt <= removeAttempts; attempt++ {
		item, err := s.portfolioRepo.FindByID(db.WithContext(ctx), itemID)
		if err != nil {
			return s.mapFindError(err, apperrors.DeleteFailed)
		}

		// файл первым: если удаление не удалось, запись остается и ссылается на живой файл
		if err := s.blobs.Delete(ctx, item.FilePath); err != nil {
			return apperrors.DeleteFailed(err)
		}

		err = s.portfolioRepo.Delete(db.WithContext(ctx), item.ID, item.FilePath)
		if err == nil {
			logger.CtxInfo(ctx, "Portfolio item deleted", "id", item.ID, "path", item.FilePath)
			return nil
		}
		if !errors.Is(err, repositories.ErrPortfolioItemNotFound) {
			return apperrors.DeleteFailed(err)
		}

		// параллельный Replace сменил файл или строку уже удалили: перечитываем
		logger.CtxWarn(ctx, "Portfolio item changed during delete", "id", item.ID, "path", item.FilePath, "attempt", attempt)
	}

	return apperrors.DeleteFailed(fmt.Errorf("portfolio item %d kept changing during delete", itemID))
}

// ============================================
// Вспомогательные
// ============================================

type storedFile struct {
	ref      string
	mimeType string
	size     int64
}

func (f *storedFile) applyTo(item *models.PortfolioItem) {
	item.FilePath = f.ref
	item.MimeType = &f.mimeType
	item.IsVideo = models.IsVideoMime(f.mimeType)
	size := f.size
	item.Size = &size
}

// storeFile открывает загруженный файл и пишет его в хранилище
func (s *portfolioService) storeFile(ctx context.Context, file *dto.FileUpload) (*storedFile, error) {
	if file.Open == nil {
		return nil, apperrors.FileInvalid(errors.New("file is not readable"))
	}

	rc, err := file.Open()
	if err != nil {
		return nil, apperrors.FileInvalid(err)
	}
	defer rc.Close()

	mimeType, body, err := storage.DetectContentType(rc, file.MimeType)
	if err != nil {
		return nil, apperrors.FileInvalid(err)
	}

	ref, err := s.blobs.Put(ctx, body, file.Filename, storage.NamespacePortfolio, mimeType)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to store portfolio file", err, "filename", file.Filename)
		return nil, apperrors.StorageFailed(err)
	}

	return &storedFile{ref: ref, mimeType: mimeType, size: file.Size}, nil
}

// discardBlob - уборка только что записанного файла, ошибка только логируется
func (s *portfolioService) discardBlob(ctx context.Context, ref, op string) {
	if err := s.blobs.Delete(ctx, ref); err != nil {
		logger.CtxWarnWithError(ctx, "Failed to clean up orphaned portfolio file", err, "ref", ref, "operation", op)
	}
}

func (s *portfolioService) mapFindError(err error, wrap func(error) *apperrors.AppError) error {
	if errors.Is(err, repositories.ErrPortfolioItemNotFound) {
		return apperrors.ErrPortfolioNotFound
	}
	return wrap(err)
}

func (s *portfolioService) project(item *models.PortfolioItem) *dto.PortfolioItemResponse {
	url := s.blobs.PublicURL(item.FilePath)

	resp := &dto.PortfolioItemResponse{
		ID:          strconv.FormatUint(uint64(item.ID), 10),
		Title:       item.Title,
		Category:    item.Category,
		Description: item.Description,
	}
	if item.IsVideo {
		resp.VideoURL = &url
	} else {
		resp.ImageURL = &url
	}
	return resp
}

func parseItemID(id string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

func valueOr(v *string, def string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return def
	}
	return *v
}

func ptrOr(v *string, def string) *string {
	s := valueOr(v, def)
	return &s
}

// nonEmpty - пустая строка в форме означает null
func nonEmpty(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	s := *v
	return &s
}
