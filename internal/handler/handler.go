package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/DaDaTzz/gallery-backend/internal/common/httpx"
	"github.com/DaDaTzz/gallery-backend/internal/model"
	"github.com/DaDaTzz/gallery-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	pictureService *service.PictureService
	userService    *service.UserService
}

func NewHandler(pictureService *service.PictureService, userService *service.UserService) *Handler {
	return &Handler{pictureService: pictureService, userService: userService}
}

// currentActor 解析 JWT 中间件写入的用户 ID；未登录返回 nil
func (h *Handler) currentActor(c *gin.Context) (*model.User, bool) {
	userID, exists := c.Get("id")
	if !exists {
		return nil, true
	}
	uid, ok := userID.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "unauthorized", "error": "无效的用户ID类型"})
		return nil, false
	}

	actor, err := h.userService.GetCurrentActor(c.Request.Context(), uid)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户信息失败")
		return nil, false
	}
	return actor, true
}

// bindJSON 绑定请求体，允许空请求体
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"code": "validation", "error": "参数错误"})
		return false
	}
	return true
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
