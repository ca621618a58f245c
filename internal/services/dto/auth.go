package dto

import "time"

type LoginRequest struct {
	Password string `json:"password" form:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword *string `json:"current_password" form:"current_password"`
	NewPassword     string  `json:"new_password" form:"new_password" validate:"required,min=6,max=72"`
}

type AdminUser struct {
	Role          string `json:"role"`
	Authenticated bool   `json:"authenticated"`
}

type LoginResponse struct {
	Message string    `json:"message"`
	User    AdminUser `json:"user"`
}

type CurrentUserResponse struct {
	Role          string     `json:"role"`
	Authenticated bool       `json:"authenticated"`
	LoginTime     *time.Time `json:"login_time"`
}

// SessionMeta - данные запроса, сохраняемые вместе с сессией
type SessionMeta struct {
	IPAddress string
	UserAgent string
}

// IssuedSession - результат входа: значение cookie и срок его жизни
type IssuedSession struct {
	Token     string
	SessionID string
	LoginTime time.Time
	ExpiresAt time.Time
}
