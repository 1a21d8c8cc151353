package dto

// UpdatePinRequest — в отличие от профиля оба поля перезаписываются
// безусловно, даже пустыми значениями
type UpdatePinRequest struct {
	Title string `json:"title"`
	Pin   string `json:"pin"`
}

type CommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}
