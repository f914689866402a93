package repository

import (
	"context"

	"github.com/DaDaTzz/gallery-backend/internal/model"
	"github.com/DaDaTzz/gallery-backend/internal/query"
)

type PictureStore interface {
	FindByID(ctx context.Context, id uint) (*model.Picture, error)
	Create(ctx context.Context, picture *model.Picture) error
	// UpdateByID 按列更新，返回是否有记录被修改
	UpdateByID(ctx context.Context, id uint, updates map[string]interface{}) (bool, error)
	DeleteByID(ctx context.Context, id uint) (bool, error)
	Page(ctx context.Context, spec query.Spec, page, pageSize int) ([]model.Picture, int64, error)
}
