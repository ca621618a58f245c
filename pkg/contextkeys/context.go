package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

const (
	// DBContextKey - ключ, по которому хранится *gorm.DB
	DBContextKey = contextKey("db")
	// SessionIDKey - id сессии администратора после AdminAuthMiddleware
	SessionIDKey = contextKey("adminSessionID")
	// SessionTokenKey - сырое значение cookie сессии
	SessionTokenKey = contextKey("adminSessionToken")
)
