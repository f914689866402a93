package di

import (
	"github.com/DaDaTzz/gallery-backend/internal/router"
	"github.com/DaDaTzz/gallery-backend/internal/service"
)

type Application struct {
	Router      *router.Router
	UserService *service.UserService
}

func NewApplication(r *router.Router, userService *service.UserService) *Application {
	return &Application{
		Router:      r,
		UserService: userService,
	}
}
