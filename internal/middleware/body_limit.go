package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/DaDaTzz/gallery-backend/internal/config"

	"github.com/gin-gonic/gin"
)

const (
	defaultBodySizeMB   = 2
	defaultUploadSizeMB = 10
	// multipart 封装的额外开销
	multipartOverhead = 1 << 20
)

// BodyLimitMiddleware 限制普通 JSON 请求体大小，上传接口由 UploadBodyLimitMiddleware 负责
func BodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasSuffix(c.Request.URL.Path, "/upload") {
			c.Next()
			return
		}

		maxSizeMB := config.Get().Server.MaxBodySizeMB
		if maxSizeMB <= 0 {
			maxSizeMB = defaultBodySizeMB
		}
		maxBytes := int64(maxSizeMB) * 1024 * 1024

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// UploadBodyLimitMiddleware 限制上传接口的请求体大小
func UploadBodyLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		maxSizeMB := config.Get().Upload.MaxSizeMB
		if maxSizeMB <= 0 {
			maxSizeMB = defaultUploadSizeMB
		}
		maxBytes := int64(maxSizeMB)*1024*1024 + multipartOverhead

		if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"code": "validation", "error": fmt.Sprintf("文件大小不能超过 %dMB", maxSizeMB)})
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
