package database

import (
	"github.com/thereayou/pinboard/internal/models"
	"gorm.io/gorm"
)

func (d *Database) CreatePin(pin *models.Pin) error {
	return d.db.Create(pin).Error
}

// GetPin загружает пин вместе с владельцем и комментариями (новые первыми)
func (d *Database) GetPin(id string) (*models.Pin, error) {
	var pin models.Pin
	err := d.db.
		Preload("Owner").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			// id как вторичный ключ фиксирует порядок при равных временах
			return tx.Order("created_at DESC, id")
		}).
		First(&pin, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

// GetAllPins возвращает все пины, свежие первыми
func (d *Database) GetAllPins() ([]models.Pin, error) {
	var pins []models.Pin
	err := d.db.
		Order("created_at DESC").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			// id как вторичный ключ фиксирует порядок при равных временах
			return tx.Order("created_at DESC, id")
		}).
		Find(&pins).Error
	if err != nil {
		return nil, err
	}
	return pins, nil
}

func (d *Database) UpdatePin(pin *models.Pin) error {
	return d.db.Save(pin).Error
}

func (d *Database) DeletePin(id string) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Comment{}, "pin_id = ?", id).Error; err != nil {
			return err
		}

		var pin models.Pin
		if err := tx.First(&pin, "id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM saved_pins WHERE pin_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&pin).Error
	})
}

func (d *Database) AddComment(comment *models.Comment) error {
	return d.db.Create(comment).Error
}

func (d *Database) GetComment(id string) (*models.Comment, error) {
	var comment models.Comment
	if err := d.db.First(&comment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (d *Database) DeleteComment(id string) error {
	return d.db.Delete(&models.Comment{}, "id = ?", id).Error
}

// IsPinSaved проверяет наличие строки в saved_pins
func (d *Database) IsPinSaved(userID, pinID string) (bool, error) {
	var count int64
	err := d.db.
		Table("saved_pins").
		Where("user_id = ? AND pin_id = ?", userID, pinID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *Database) SavePin(user *models.User, pin *models.Pin) error {
	return d.db.Model(user).Association("SavedPins").Append(pin)
}

func (d *Database) UnsavePin(user *models.User, pin *models.Pin) error {
	return d.db.Model(user).Association("SavedPins").Delete(pin)
}

// GetSavedPins возвращает сохранённые пины пользователя с владельцами
func (d *Database) GetSavedPins(userID string) ([]models.Pin, error) {
	var pins []models.Pin
	err := d.db.
		Joins("JOIN saved_pins sp ON sp.pin_id = pins.id").
		Where("sp.user_id = ?", userID).
		Order("pins.created_at DESC").
		Preload("Owner").
		Find(&pins).Error
	if err != nil {
		return nil, err
	}
	return pins, nil
}
