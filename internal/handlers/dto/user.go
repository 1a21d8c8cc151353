package dto

// UpdateProfileRequest — частичное обновление: пустое поле означает
// "не передано" и сохраняет прежнее значение
type UpdateProfileRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}
