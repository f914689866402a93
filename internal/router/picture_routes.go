package router

import (
	"github.com/DaDaTzz/gallery-backend/internal/handler"
	"github.com/DaDaTzz/gallery-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerPictureRoutes(api *gin.RouterGroup, h *handler.Handler) {
	pictures := api.Group("/picture")

	// 上传限流与请求体限制：读取配置
	uploadLimiter := middleware.RateLimitMiddleware("upload")
	uploadBodyLimit := middleware.UploadBodyLimitMiddleware()

	// 公开接口
	pictures.GET("/tag_category", h.ListTagCategory)

	// 可选登录：登录后按身份决定可见范围
	optional := pictures.Group("")
	optional.Use(middleware.OptionalJWTAuth())
	optional.GET("/get/vo", h.GetPictureView)
	optional.POST("/list/page/vo", h.ListPictureViewPage)

	// 需要登录
	authed := pictures.Group("")
	authed.Use(middleware.JWTAuth())
	authed.POST("/upload", uploadBodyLimit, uploadLimiter, h.UploadPicture)
	authed.POST("/delete", h.DeletePicture)
	authed.POST("/edit", h.EditPicture)
	authed.POST("/my/list/page/vo", h.ListMyPictureViewPage)

	// 需要管理员
	admin := pictures.Group("")
	admin.Use(middleware.JWTAuth(), middleware.AdminCheck())
	admin.POST("/update", h.UpdatePicture)
	admin.POST("/list/page", h.ListPicturePage)
	admin.POST("/review", h.ReviewPicture)
}
