package apperrors

import (
	"net/http"
)

/*
Предопределенные доменные ошибки и фабрики.
Переменные сравниваются через errors.Is (по коду), фабрики оборачивают причину.
*/

// =========================================================================
// Портфолио
// =========================================================================

var (
	ErrFileMissing   = New(CodeFileMissing, "portfolio", "No file uploaded", http.StatusBadRequest)
	ErrFileInvalid   = New(CodeFileInvalid, "portfolio", "Uploaded file is invalid", http.StatusBadRequest)
	ErrStorageFailed = New(CodeStorageFailed, "portfolio", "Failed to store file", http.StatusInternalServerError)

	ErrPortfolioNotFound = New(CodeNotFound, "portfolio", "Portfolio item not found", http.StatusNotFound)

	ErrUploadFailed = New(CodeUploadFailed, "portfolio", "Upload failed", http.StatusInternalServerError)
	ErrUpdateFailed = New(CodeUpdateFailed, "portfolio", "Update failed", http.StatusInternalServerError)
	ErrDeleteFailed = New(CodeDeleteFailed, "portfolio", "Delete failed", http.StatusInternalServerError)
)

// FileInvalid - файл не прошел проверку на этапе приема
func FileInvalid(err error) *AppError {
	return ErrFileInvalid.WithError(err)
}

// StorageFailed - ошибка записи в хранилище
func StorageFailed(err error) *AppError {
	return ErrStorageFailed.WithError(err)
}

// UploadFailed - файл записан, но запись в БД не удалась
func UploadFailed(err error) *AppError {
	return ErrUploadFailed.WithError(err)
}

func UpdateFailed(err error) *AppError {
	return ErrUpdateFailed.WithError(err)
}

func DeleteFailed(err error) *AppError {
	return ErrDeleteFailed.WithError(err)
}

// =========================================================================
// Аутентификация администратора
// =========================================================================

var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid credentials", http.StatusUnauthorized)
	ErrUnauthenticated    = New(CodeUnauthorized, "auth", "Unauthenticated.", http.StatusUnauthorized)

	// 422, как и ошибки валидации формы
	ErrIncorrectCurrentSecret = New(CodeIncorrectCurrentSecret, "auth", "Current password is incorrect", http.StatusUnprocessableEntity)

	ErrOriginNotAllowed = New(CodeForbidden, "auth", "Origin not allowed", http.StatusForbidden)
)

// =========================================================================
// Контакты
// =========================================================================

// MailFailed - письмо владельцу не отправлено
func MailFailed(err error) *AppError {
	return Wrap(err, CodeMailFailed, "contact", "Failed to send inquiry", http.StatusInternalServerError)
}
