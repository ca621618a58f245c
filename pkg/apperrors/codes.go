package apperrors

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// Общие, не-доменные коды ошибок
const (
	CodeInternalError        ErrorCode = "INTERNAL_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"

	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeBadRequest       ErrorCode = "BAD_REQUEST"

	// Аутентификация
	CodeUnauthorized           ErrorCode = "UNAUTHORIZED"
	CodeForbidden              ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials     ErrorCode = "INVALID_CREDENTIALS"
	CodeIncorrectCurrentSecret ErrorCode = "INCORRECT_CURRENT_PASSWORD"
)

// Коды портфолио. Фронтенд сравнивает их строкой, не менять.
const (
	CodeFileMissing   ErrorCode = "FILE_MISSING"
	CodeFileInvalid   ErrorCode = "FILE_INVALID"
	CodeStorageFailed ErrorCode = "STORAGE_FAILED"
	CodeUploadFailed  ErrorCode = "UPLOAD_FAILED"
	CodeUpdateFailed  ErrorCode = "UPDATE_FAILED"
	CodeDeleteFailed  ErrorCode = "DELETE_FAILED"
)

// Контактная форма
const (
	CodeMailFailed ErrorCode = "MAIL_FAILED"
)
