package dto

type ContactRequest struct {
	Name    string      `form:"name" json:"name" validate:"required,max=255"`
	Email   string      `form:"email" json:"email" validate:"required,email,max=255"`
	Phone   *string     `form:"phone" json:"phone" validate:"omitempty,max=50"`
	Service string      `form:"service" json:"service" validate:"required,max=255"`
	Date    *string     `form:"date" json:"date" validate:"omitempty,loose-date"`
	Message *string     `form:"message" json:"message" validate:"omitempty,max=5000"`
	Video   *FileUpload `form:"-" json:"-" validate:"-"`
}

type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
