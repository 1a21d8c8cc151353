package models

import (
	"github.com/google/uuid"
	"time"
)

type Pin struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string
	Pin       string    // текст описания; историческое имя поля сохранено в API
	ImageID   string    `gorm:"not null"` // ключ объекта во внешнем хранилище
	ImageURL  string    `gorm:"not null"`
	OwnerID   uuid.UUID `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Связи
	Owner    User      `gorm:"foreignKey:OwnerID"`
	Comments []Comment `gorm:"foreignKey:PinID"`
}

type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PinID     uuid.UUID `gorm:"not null"`
	UserID    uuid.UUID `gorm:"not null"`
	Name      string    `gorm:"not null"` // имя автора на момент комментария, не обновляется
	Comment   string    `gorm:"not null"`
	CreatedAt time.Time
}
