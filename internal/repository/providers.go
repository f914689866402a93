package repository

import (
	"gorm.io/gorm"
)

func NewUserRepository(db *gorm.DB) UserStore {
	return &UserRepository{db: db}
}

func NewPictureRepository(db *gorm.DB) PictureStore {
	return &PictureRepository{db: db}
}
