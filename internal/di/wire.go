//go:build wireinject
// +build wireinject

package di

import (
	"github.com/DaDaTzz/gallery-backend/internal/handler"
	"github.com/DaDaTzz/gallery-backend/internal/repository"
	"github.com/DaDaTzz/gallery-backend/internal/router"
	"github.com/DaDaTzz/gallery-backend/internal/service"
	"github.com/DaDaTzz/gallery-backend/internal/storage"

	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitializeApplication(gormDB *gorm.DB) (*Application, error) {
	wire.Build(
		repository.NewUserRepository,
		repository.NewPictureRepository,
		storage.ProvideFileProcessor,
		service.NewUserService,
		service.NewReviewPolicy,
		service.NewPictureViewAssembler,
		service.NewPictureService,
		handler.NewHandler,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil
}
