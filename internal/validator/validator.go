package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError содержит карту "поле" -> список сообщений.
// Формат совпадает с тем, что фронтенд получал раньше.
type ValidationError struct {
	Errors map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Errors: make(map[string][]string)}
}

// Error реализует стандартный интерфейс error.
func (e *ValidationError) Error() string {
	var errMsgs []string
	for field, msgs := range e.Errors {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, strings.Join(msgs, ", ")))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Add добавляет сообщение к полю
func (e *ValidationError) Add(field, msg string) {
	e.Errors[field] = append(e.Errors[field], msg)
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Merge переносит ошибки из err, если это *ValidationError
func (e *ValidationError) Merge(err error) bool {
	ve, ok := err.(*ValidationError)
	if !ok {
		return false
	}
	for field, msgs := range ve.Errors {
		e.Errors[field] = append(e.Errors[field], msgs...)
	}
	return true
}

// Validator - обертка над go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// New создает новый экземпляр Validator.
func New() *Validator {
	v := validator.New()

	// Имена полей берем из json, затем из form тега
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate выполняет валидацию переданной структуры.
// Если есть ошибки, возвращает *ValidationError.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	result := NewValidationError()
	for _, fe := range validationErrors {
		result.Add(fe.Field(), getErrorMessage(fe))
	}

	return result
}

// getErrorMessage - сообщения в том же виде, что и у прежнего бэкенда
func getErrorMessage(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "min":
		if isSized(fe.Kind()) {
			return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", field, fe.Param())
	case "max":
		if isSized(fe.Kind()) {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", field, fe.Param())
	case "loose-date":
		return fmt.Sprintf("The %s field must be a valid date.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

func isSized(k reflect.Kind) bool {
	return k == reflect.String || k == reflect.Slice || k == reflect.Map
}
