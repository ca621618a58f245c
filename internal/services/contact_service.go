package services

import (
	"context"
	"time"

	"portfolio_backend/internal/email"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/storage"
	"portfolio_backend/pkg/apperrors"
)

const submittedAtLayout = "January 2, 2006, 3:04 pm"

// ContactService - форма обратной связи: видео в хранилище, письмо владельцу
type ContactService interface {
	Submit(ctx context.Context, req *dto.ContactRequest) error
	OwnerEmail() string
}

type contactService struct {
	mailer     email.Provider
	blobs      BlobStore
	ownerEmail string
	now        func() time.Time
}

func NewContactService(mailer email.Provider, blobs BlobStore, ownerEmail string) ContactService {
	return &contactService{
		mailer:     mailer,
		blobs:      blobs,
		ownerEmail: ownerEmail,
		now:        time.Now,
	}
}

func (s *contactService) OwnerEmail() string {
	return s.ownerEmail
}

func (s *contactService) Submit(ctx context.Context, req *dto.ContactRequest) error {
	videoRef, err := s.storeVideo(ctx, req.Video)
	if err != nil {
		logger.CtxWithError(ctx, "Failed to store contact video", err, "email", req.Email)
		return apperrors.MailFailed(err)
	}

	var videoURL interface{}
	if videoRef != "" {
		videoURL = s.blobs.PublicURL(videoRef)
	}

	data := email.TemplateData{
		"name":        req.Name,
		"email":       req.Email,
		"phone":       valueOr(req.Phone, "Not provided"),
		"service":     req.Service,
		"date":        valueOr(req.Date, "Not specified"),
		"message":     valueOr(req.Message, "No message provided"),
		"videoUrl":    videoURL,
		"submittedAt": s.now().Format(submittedAtLayout),
	}

	msg := &email.Email{
		To:          []string{s.ownerEmail},
		ReplyTo:     req.Email,
		ReplyToName: req.Name,
		Subject:     "New Photography Inquiry - " + req.Service,
	}

	if err = s.mailer.SendWithTemplate(email.TemplateContactInquiry, data, msg); err != nil {
		// письмо не ушло - видео никому не нужно
		if videoRef != "" {
			if derr := s.blobs.Delete(ctx, videoRef); derr != nil {
				logger.CtxWarnWithError(ctx, "Failed to clean up contact video", derr, "ref", videoRef)
			}
		}
		logger.CtxWithError(ctx, "Contact form submission failed", err, "email", req.Email)
		return apperrors.MailFailed(err)
	}

	logger.CtxInfo(ctx, "Contact form submitted",
		"name", req.Name,
		"email", req.Email,
		"service", req.Service,
		"has_video", videoRef != "",
	)
	return nil
}

// storeVideo - нечитаемое видео пропускается, ошибка хранилища возвращается
func (s *contactService) storeVideo(ctx context.Context, video *dto.FileUpload) (string, error) {
	if video == nil || video.Open == nil {
		return "", nil
	}

	rc, err := video.Open()
	if err != nil {
		logger.CtxWarnWithError(ctx, "Skipping unreadable contact video", err, "filename", video.Filename)
		return "", nil
	}
	defer rc.Close()

	mimeType, body, err := storage.DetectContentType(rc, video.MimeType)
	if err != nil {
		logger.CtxWarnWithError(ctx, "Skipping unreadable contact video", err, "filename", video.Filename)
		return "", nil
	}

	return s.blobs.Put(ctx, body, video.Filename, storage.NamespaceContactVideos, mimeType)
}
