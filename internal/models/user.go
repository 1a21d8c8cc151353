package models

import (
	"github.com/google/uuid"
	"time"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string    `gorm:"not null"`
	Email          string    `gorm:"uniqueIndex;not null"`
	PasswordHash   string    `gorm:"not null"`
	Bio            string    `gorm:"default:''"`
	ProfilePicture string    `gorm:"default:''"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Связи: одна строка user_followers кодирует обе стороны подписки
	Followers []User `gorm:"many2many:user_followers;joinForeignKey:UserID;joinReferences:FollowerID"`
	Following []User `gorm:"many2many:user_followers;joinForeignKey:FollowerID;joinReferences:UserID"`
	SavedPins []Pin  `gorm:"many2many:saved_pins"`
}
