package router

import (
	"time"

	"github.com/DaDaTzz/gallery-backend/internal/config"
	"github.com/DaDaTzz/gallery-backend/internal/handler"
	"github.com/DaDaTzz/gallery-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Router struct {
	handler *handler.Handler
}

func NewRouter(h *handler.Handler) *Router {
	return &Router{handler: h}
}

func (rt *Router) Init(r *gin.Engine) {
	// 注册全局安全标头中间件
	r.Use(middleware.SecurityHeaders())
	if origins := config.Get().Server.CORSOrigins; len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	api := r.Group("/api")
	api.Use(middleware.BodyLimitMiddleware())
	api.GET("/ping", handler.Ping)

	registerPictureRoutes(api, rt.handler)
	registerStaticRoutes(r)
}

// registerStaticRoutes 以 url_prefix 暴露上传目录
func registerStaticRoutes(r *gin.Engine) {
	upload := config.Get().Upload
	if upload.Path == "" || upload.URLPrefix == "" {
		return
	}
	r.Group(upload.URLPrefix, middleware.StaticCacheMiddleware()).
		StaticFS("", gin.Dir(upload.Path, false))
}
