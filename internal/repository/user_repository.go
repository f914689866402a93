package repository

import (
	"context"

	"github.com/DaDaTzz/gallery-backend/internal/model"
)

type UserStore interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}
