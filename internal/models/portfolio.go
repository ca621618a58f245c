package models

import "strings"

// PortfolioItem - одна работа в портфолио (фото или видео)
type PortfolioItem struct {
	BaseModel
	Title       string  `gorm:"size:255;not null"`
	Category    *string `gorm:"size:255"`
	FilePath    string  `gorm:"size:512;not null"`
	Size        *int64
	MimeType    *string `gorm:"size:255"`
	Description *string `gorm:"type:text"`
	IsVideo     bool    `gorm:"not null;default:false"`
}

func (PortfolioItem) TableName() string {
	return "portfolios"
}

// IsVideoMime - видео определяется только по MIME
func IsVideoMime(mime string) bool {
	return strings.HasPrefix(strings.ToLower(mime), "video/")
}
