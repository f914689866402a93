package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders 添加安全相关的 HTTP 响应头
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// 接口只返回 JSON 与图片，不需要加载脚本
		c.Header("Content-Security-Policy", "default-src 'none'; img-src 'self' data: blob:; frame-ancestors 'none'")

		c.Next()
	}
}
