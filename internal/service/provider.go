package service

import (
	"time"

	repo "github.com/DaDaTzz/gallery-backend/internal/repository"
	"github.com/DaDaTzz/gallery-backend/internal/storage"
)

// timeNow 便于测试替换
var timeNow = time.Now

type UserService struct {
	userStore repo.UserStore
}

// ReviewPolicy 审核规则：自动过审与人工审核
type ReviewPolicy struct {
	pictureStore repo.PictureStore
}

// PictureViewAssembler 将图片记录组装为带作者资料的展示对象
type PictureViewAssembler struct {
	userService *UserService
}

type PictureService struct {
	pictureStore repo.PictureStore
	userService  *UserService
	files        storage.FileProcessor
	reviewPolicy *ReviewPolicy
	views        *PictureViewAssembler
}

func NewUserService(userStore repo.UserStore) *UserService {
	return &UserService{userStore: userStore}
}

func NewReviewPolicy(pictureStore repo.PictureStore) *ReviewPolicy {
	return &ReviewPolicy{pictureStore: pictureStore}
}

func NewPictureViewAssembler(userService *UserService) *PictureViewAssembler {
	return &PictureViewAssembler{userService: userService}
}

func NewPictureService(
	pictureStore repo.PictureStore,
	userService *UserService,
	files storage.FileProcessor,
	reviewPolicy *ReviewPolicy,
	views *PictureViewAssembler,
) *PictureService {
	return &PictureService{
		pictureStore: pictureStore,
		userService:  userService,
		files:        files,
		reviewPolicy: reviewPolicy,
		views:        views,
	}
}
