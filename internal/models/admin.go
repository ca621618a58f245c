package models

import "time"

// AdminCredentialID - у администратора ровно одна запись
const AdminCredentialID uint = 1

// AdminCredential - хэш общего пароля администратора.
// Отсутствие строки = пароль еще не задан.
type AdminCredential struct {
	ID           uint    `gorm:"primaryKey;autoIncrement:false"`
	Name         string  `gorm:"size:255;not null"`
	PasswordHash *string `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (AdminCredential) TableName() string {
	return "admins"
}

func (a *AdminCredential) HasPassword() bool {
	return a != nil && a.PasswordHash != nil && *a.PasswordHash != ""
}
