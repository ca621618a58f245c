package services

import (
	"context"
	"errors"
	"fmt"

	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CredentialService - общий пароль администратора
type CredentialService interface {
	// Verify: совпадает с сохраненным хэшем или с резервным паролем из конфига
	Verify(ctx context.Context, db *gorm.DB, candidate string) (bool, error)
	// SetPassword задает новый пароль. current проверяется, только если он передан
	// и пароль уже был задан; при несовпадении - apperrors.ErrIncorrectCurrentSecret.
	SetPassword(ctx context.Context, db *gorm.DB, newSecret string, current *string) error
	// IsSet - есть ли сохраненный хэш
	IsSet(ctx context.Context, db *gorm.DB) (bool, error)
}

type credentialService struct {
	adminRepo      repositories.AdminRepository
	fallbackSecret string
}

func NewCredentialService(adminRepo repositories.AdminRepository, fallbackSecret string) CredentialService {
	return &credentialService{
		adminRepo:      adminRepo,
		fallbackSecret: fallbackSecret,
	}
}

func (s *credentialService) Verify(ctx context.Context, db *gorm.DB, candidate string) (bool, error) {
	if candidate == "" {
		return false, nil
	}

	cred, err := s.find(db.WithContext(ctx))
	if err != nil {
		return false, err
	}

	if cred.HasPassword() && auth.CheckPasswordHash(candidate, *cred.PasswordHash) {
		return true, nil
	}

	if s.fallbackSecret != "" && auth.SecretsEqual(candidate, s.fallbackSecret) {
		logger.CtxInfo(ctx, "Admin authenticated with fallback password")
		return true, nil
	}

	return false, nil
}

func (s *credentialService) SetPassword(ctx context.Context, db *gorm.DB, newSecret string, current *string) error {
	if err := auth.ValidatePassword(newSecret); err != nil {
		return apperrors.ValidationError(map[string][]string{"new_password": {err.Error()}})
	}

	hash, err := auth.HashPassword(newSecret)
	if err != nil {
		return apperrors.InternalError(fmt.Errorf("hash password: %w", err))
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cred, err := s.find(tx)
		if err != nil {
			return err
		}

		if cred.HasPassword() && current != nil && *current != "" {
			if !auth.CheckPasswordHash(*current, *cred.PasswordHash) {
				return apperrors.ErrIncorrectCurrentSecret
			}
		}

		if cred == nil {
			cred = &models.AdminCredential{Name: "admin"}
		}
		cred.PasswordHash = &hash

		return s.adminRepo.Save(tx, cred)
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return appErr
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Admin password updated")
	return nil
}

func (s *credentialService) IsSet(ctx context.Context, db *gorm.DB) (bool, error) {
	cred, err := s.find(db.WithContext(ctx))
	if err != nil {
		return false, err
	}
	return cred.HasPassword(), nil
}

// find - nil без ошибки, если пароль еще не задавался
func (s *credentialService) find(db *gorm.DB) (*models.AdminCredential, error) {
	cred, err := s.adminRepo.Find(db)
	if err != nil {
		if errors.Is(err, repositories.ErrAdminCredentialNotFound) {
			return nil, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return cred, nil
}
