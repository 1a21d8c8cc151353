package services

import "github.com/thereayou/pinboard/internal/models"

// UserStore — операции каталога пользователей; реализуется *database.Database
type UserStore interface {
	SaveUser(user *models.User) error
	UpdateUser(user *models.User) error
	GetUser(id string) (*models.User, error)
	GetUserWithRelations(id string) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	IsFollowing(followerID, targetID string) (bool, error)
	FollowUser(follower, target *models.User) error
	UnfollowUser(follower, target *models.User) error
}

// PinStore — операции хранилища пинов; реализуется *database.Database
type PinStore interface {
	CreatePin(pin *models.Pin) error
	GetPin(id string) (*models.Pin, error)
	GetAllPins() ([]models.Pin, error)
	UpdatePin(pin *models.Pin) error
	DeletePin(id string) error
	AddComment(comment *models.Comment) error
	GetComment(id string) (*models.Comment, error)
	DeleteComment(id string) error
	IsPinSaved(userID, pinID string) (bool, error)
	SavePin(user *models.User, pin *models.Pin) error
	UnsavePin(user *models.User, pin *models.Pin) error
	GetSavedPins(userID string) ([]models.Pin, error)
}
