package validator

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileRule - ограничения для загружаемого файла
type FileRule struct {
	MaxSize    int64    // bytes
	Extensions []string // без точки
}

// CheckFile возвращает сообщения об ошибках для файла (пусто, если файл подходит)
func (r FileRule) CheckFile(field, filename string, size int64) []string {
	var msgs []string
	name := strings.ReplaceAll(field, "_", " ")

	if r.MaxSize > 0 && size > r.MaxSize {
		msgs = append(msgs, fmt.Sprintf("The %s field must not be greater than %d kilobytes.", name, r.MaxSize/1024))
	}

	if len(r.Extensions) > 0 {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
		if !r.allows(ext) {
			msgs = append(msgs, fmt.Sprintf("The %s field must be a file of type: %s.", name, strings.Join(r.Extensions, ", ")))
		}
	}

	return msgs
}

func (r FileRule) allows(ext string) bool {
	if ext == "" {
		return false
	}
	for _, allowed := range r.Extensions {
		if strings.EqualFold(allowed, ext) {
			return true
		}
	}
	return false
}
