package model

import (
	"time"
)

type User struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string `json:"username" gorm:"unique;not null;size:64"`
	Nickname  string `json:"nickname" gorm:"size:64"`
	Avatar    string `json:"avatar"`
	Profile   string `json:"profile" gorm:"size:512"`
	Admin     bool   `json:"admin" gorm:"not null;default:false"`
}
