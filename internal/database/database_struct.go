package database

import "gorm.io/gorm"

// Database оборачивает соединение и реализует services.UserStore и
// services.PinStore
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}
