package models

import "time"

// AdminSession - серверная часть cookie-сессии
type AdminSession struct {
	ID            string     `gorm:"primaryKey;size:64"`
	Authenticated bool       `gorm:"not null;default:false"`
	LoginTime     *time.Time
	ExpiresAt     time.Time `gorm:"not null;index"`
	IPAddress     string    `gorm:"size:64"`
	UserAgent     string    `gorm:"size:512"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (AdminSession) TableName() string {
	return "admin_sessions"
}

func (s *AdminSession) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
