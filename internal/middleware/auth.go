package middleware

import (
	"net/http"
	"strings"

	"github.com/DaDaTzz/gallery-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// 上下文中的身份键
const (
	ContextKeyID       = "id"
	ContextKeyUsername = "username"
	ContextKeyAdmin    = "admin"
)

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setClaims(c *gin.Context, claims *utils.LoginClaims) {
	c.Set(ContextKeyID, claims.ID)
	c.Set(ContextKeyUsername, claims.Username)
	c.Set(ContextKeyAdmin, claims.Admin)
}

// JWTAuth 要求请求携带有效的登录令牌
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "unauthorized", "error": "需要认证才能访问"})
			c.Abort()
			return
		}

		// 检查格式是否为 "Bearer <token>"
		token, ok := bearerToken(authHeader)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "unauthorized", "error": "Token 格式错误"})
			c.Abort()
			return
		}

		claims, err := utils.ParseLoginToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"code": "unauthorized", "error": "Token 无效或已过期"})
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth 有令牌时解析身份，无令牌或令牌无效时按匿名访问继续
func OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, err := utils.ParseLoginToken(token); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func AdminCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exist := c.Get(ContextKeyAdmin)
		isAdmin, ok := value.(bool)
		if !exist || !ok || !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"code": "forbidden", "error": "需要管理员权限才能访问"})
			c.Abort()
			return
		}
		c.Next()
	}
}
