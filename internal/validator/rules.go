package validator

import (
	"strings"
	"time"

	"portfolio_backend/internal/logger"

	"github.com/go-playground/validator/v10"
)

// Форматы дат, которые присылает форма контактов
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/2006",
	"02.01.2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// registerCustomRules регистрирует кастомные правила
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			logger.Fatal("failed to register custom validation tag", "tag", tag, "error", err)
		}
	}

	// 'loose-date': строка, которую можно разобрать как дату
	mustRegister("loose-date", validateLooseDate)
}

func validateLooseDate(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true // для этого есть 'required'
	}
	_, ok := ParseDate(value)
	return ok
}

// ParseDate пробует известные форматы по очереди
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
