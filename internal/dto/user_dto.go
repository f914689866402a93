package dto

import (
	"time"

	"github.com/DaDaTzz/gallery-backend/internal/model"
)

// UserView 对外公开的用户资料
type UserView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Nickname  string    `json:"nickname"`
	Avatar    string    `json:"avatar"`
	Profile   string    `json:"profile"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserView(u *model.User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{
		ID:        u.ID,
		Username:  u.Username,
		Nickname:  u.Nickname,
		Avatar:    u.Avatar,
		Profile:   u.Profile,
		Admin:     u.Admin,
		CreatedAt: u.CreatedAt,
	}
}
