package storage

import (
	"context"
	"io"
)

// UploadResult — идентификатор объекта во внешнем хранилище и его
// постоянный URL
type UploadResult struct {
	ID  string
	URL string
}

// MediaStore — внешнее объектное хранилище изображений. Считается
// ненадёжным: вызывающий обязан обрабатывать ошибки.
type MediaStore interface {
	Upload(ctx context.Context, data io.Reader, contentType string) (*UploadResult, error)
	Release(ctx context.Context, id string) error
}
