package repositories

import (
	"errors"
	"time"

	"portfolio_backend/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrSessionNotFound - сессии нет или она уже удалена
	ErrSessionNotFound = errors.New("session not found")
)

type SessionRepository interface {
	Create(db *gorm.DB, session *models.AdminSession) error
	FindByID(db *gorm.DB, id string) (*models.AdminSession, error)
	// Delete идемпотентен
	Delete(db *gorm.DB, id string) error
	// DeleteExpired удаляет все сессии с expires_at <= now
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}

type sessionRepository struct{}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(db *gorm.DB, session *models.AdminSession) error {
	return db.Create(session).Error
}

func (r *sessionRepository) FindByID(db *gorm.DB, id string) (*models.AdminSession, error) {
	var session models.AdminSession
	if err := db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Delete(db *gorm.DB, id string) error {
	return db.Where("id = ?", id).Delete(&models.AdminSession{}).Error
}

func (r *sessionRepository) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expires_at <= ?", now).Delete(&models.AdminSession{})
	return result.RowsAffected, result.Error
}
