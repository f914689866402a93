package service

import (
	"context"
	"errors"
	"log"

	"github.com/DaDaTzz/gallery-backend/internal/common"
	"github.com/DaDaTzz/gallery-backend/internal/dto"
	"github.com/DaDaTzz/gallery-backend/internal/model"

	"gorm.io/gorm"
)

// GetByID 查询用户，不存在时返回 (nil, nil)
func (s *UserService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListByIDs(ctx context.Context, ids []uint) ([]model.User, error) {
	return s.userStore.FindByIDs(ctx, ids)
}

// IsAdmin 匿名用户视为非管理员
func (s *UserService) IsAdmin(user *model.User) bool {
	return isAdmin(user)
}

func (s *UserService) GetPublicProfile(user *model.User) *dto.UserView {
	return dto.NewUserView(user)
}

// GetCurrentActor 根据登录态中的用户 ID 解析当前操作者，id 为 0 表示匿名
func (s *UserService) GetCurrentActor(ctx context.Context, id uint) (*model.User, error) {
	if id == 0 {
		return nil, nil
	}
	user, err := s.GetByID(ctx, id)
	if err != nil {
		log.Printf("GetCurrentActor error: %v", err)
		return nil, common.NewInternalError("查询用户信息失败")
	}
	if user == nil {
		return nil, common.NewUnauthorizedError("用户不存在")
	}
	return user, nil
}

// EnsureUser 按用户名查找用户，不存在时创建，供命令行签发令牌使用
func (s *UserService) EnsureUser(ctx context.Context, username string, admin bool) (*model.User, error) {
	if username == "" {
		return nil, common.NewValidationError("用户名不能为空")
	}
	user, err := s.userStore.FindByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	user = &model.User{Username: username, Nickname: username, Admin: admin}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func isAdmin(user *model.User) bool {
	return user != nil && user.Admin
}
