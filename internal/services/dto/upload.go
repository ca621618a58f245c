package dto

import (
	"io"
	"mime/multipart"
)

// FileUpload - файл из multipart запроса.
// Open откладывает чтение до момента, когда сервис решит его сохранить.
type FileUpload struct {
	Filename string
	MimeType string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// NewFileUpload оборачивает заголовок multipart файла
func NewFileUpload(fh *multipart.FileHeader) *FileUpload {
	if fh == nil {
		return nil
	}
	return &FileUpload{
		Filename: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
