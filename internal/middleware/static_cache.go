package middleware

import (
	"github.com/DaDaTzz/gallery-backend/internal/config"

	"github.com/gin-gonic/gin"
)

// StaticCacheMiddleware 为已上传的图片文件添加 Cache-Control 头。
// 文件名随机生成且替换时换名，可以长缓存。
func StaticCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cc := config.Get().Upload.CacheControl; cc != "" {
			c.Header("Cache-Control", cc)
		}
		c.Next()
	}
}
