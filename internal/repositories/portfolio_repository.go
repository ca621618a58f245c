package repositories

import (
	"errors"

	"portfolio_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPortfolioItemNotFound = errors.New("portfolio item not found")
)

type PortfolioRepository interface {
	// ListAll - все работы, новые первыми
	ListAll(db *gorm.DB) ([]models.PortfolioItem, error)
	FindByID(db *gorm.DB, id uint) (*models.PortfolioItem, error)
	Create(db *gorm.DB, item *models.PortfolioItem) error
	// Update переписывает изменяемые поля одной строки по id
	Update(db *gorm.DB, item *models.PortfolioItem) error
	// Delete удаляет строку, только если она все еще ссылается на filePath
	Delete(db *gorm.DB, id uint, filePath string) error
}

type PortfolioRepositoryImpl struct{}

func NewPortfolioRepository() PortfolioRepository {
	return &PortfolioRepositoryImpl{}
}

func (r *PortfolioRepositoryImpl) ListAll(db *gorm.DB) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	err := db.Order("created_at DESC").Order("id DESC").Find(&items).Error
	return items, err
}

func (r *PortfolioRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	err := db.First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortfolioItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PortfolioRepositoryImpl) Create(db *gorm.DB, item *models.PortfolioItem) error {
	return db.Create(item).Error
}

func (r *PortfolioRepositoryImpl) Update(db *gorm.DB, item *models.PortfolioItem) error {
	// map, чтобы nil-поля реально обнулялись
	result := db.Model(&models.PortfolioItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"title":       item.Title,
		"category":    item.Category,
		"description": item.Description,
		"file_path":   item.FilePath,
		"size":        item.Size,
		"mime_type":   item.MimeType,
		"is_video":    item.IsVideo,
		"updated_at":  db.NowFunc(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioItemNotFound
	}
	return nil
}

func (r *PortfolioRepositoryImpl) Delete(db *gorm.DB, id uint, filePath string) error {
	result := db.Where("id = ? AND file_path = ?", id, filePath).Delete(&models.PortfolioItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPortfolioItemNotFound
	}
	return nil
}
