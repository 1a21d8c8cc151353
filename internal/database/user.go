package database

import (
	"github.com/thereayou/pinboard/internal/models"
)

func (d *Database) SaveUser(user *models.User) error {
	if err := d.db.Create(user).Error; err != nil {
		return err
	}
	return nil
}

func (d *Database) UpdateUser(user *models.User) error {
	return d.db.Save(user).Error
}

func (d *Database) GetUser(id string) (*models.User, error) {
	user := models.User{}
	if err := d.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserWithRelations загружает пользователя вместе со списками
// подписчиков, подписок и сохранённых пинов
func (d *Database) GetUserWithRelations(id string) (*models.User, error) {
	user := models.User{}
	err := d.db.
		Preload("Followers").
		Preload("Following").
		Preload("SavedPins").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// IsFollowing проверяет наличие строки подписки в user_followers
func (d *Database) IsFollowing(followerID, targetID string) (bool, error) {
	var count int64
	err := d.db.
		Table("user_followers").
		Where("user_id = ? AND follower_id = ?", targetID, followerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *Database) FollowUser(follower, target *models.User) error {
	return d.db.Model(target).Association("Followers").Append(follower)
}

func (d *Database) UnfollowUser(follower, target *models.User) error {
	return d.db.Model(target).Association("Followers").Delete(follower)
}
