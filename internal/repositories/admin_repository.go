package repositories

import (
	"errors"

	"portfolio_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrAdminCredentialNotFound - пароль администратора еще ни разу не задавался
	ErrAdminCredentialNotFound = errors.New("admin credential not found")
)

type AdminRepository interface {
	Find(db *gorm.DB) (*models.AdminCredential, error)
	// Save создает или перезаписывает единственную запись (id = 1)
	Save(db *gorm.DB, cred *models.AdminCredential) error
}

type adminRepository struct{}

func NewAdminRepository() AdminRepository {
	return &adminRepository{}
}

func (r *adminRepository) Find(db *gorm.DB) (*models.AdminCredential, error) {
	var cred models.AdminCredential
	if err := db.First(&cred, "id = ?", models.AdminCredentialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminCredentialNotFound
		}
		return nil, err
	}
	return &cred, nil
}

func (r *adminRepository) Save(db *gorm.DB, cred *models.AdminCredential) error {
	cred.ID = models.AdminCredentialID
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "password_hash", "updated_at"}),
	}).Create(cred).Error
}
