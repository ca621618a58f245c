package dto

// CreatePortfolioRequest - multipart форма создания работы
type CreatePortfolioRequest struct {
	Title       *string     `form:"title" validate:"omitempty,max=255"`
	Category    *string     `form:"category" validate:"omitempty,max=255"`
	Description *string     `form:"description"`
	File        *FileUpload `form:"-" validate:"-"`
}

// UpdatePortfolioRequest - все поля необязательны, nil = не трогать
type UpdatePortfolioRequest struct {
	Title       *string     `form:"title" validate:"omitempty,max=255"`
	Category    *string     `form:"category" validate:"omitempty,max=255"`
	Description *string     `form:"description"`
	File        *FileUpload `form:"-" validate:"-"`
}

// PortfolioItemResponse - проекция для фронтенда.
// Ровно одно из imageUrl / videoUrl не null.
type PortfolioItemResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	VideoURL    *string `json:"videoUrl"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
