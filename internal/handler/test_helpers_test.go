package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DaDaTzz/gallery-backend/internal/config"
	"github.com/DaDaTzz/gallery-backend/internal/repository"
	"github.com/DaDaTzz/gallery-backend/internal/service"
	"github.com/DaDaTzz/gallery-backend/internal/storage"
	"github.com/DaDaTzz/gallery-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type handlerEnv struct {
	db        *gorm.DB
	h         *Handler
	uploadDir string
}

func setupHandler(t *testing.T) *handlerEnv {
	t.Helper()
	gdb := testutils.SetupDB(t)
	uploadDir := t.TempDir()

	pictures := repository.NewPictureRepository(gdb)
	userService := service.NewUserService(repository.NewUserRepository(gdb))
	files := storage.NewLocalFileProcessor(config.UploadConfig{Path: uploadDir, URLPrefix: "/pictures/", MaxSizeMB: 1})
	policy := service.NewReviewPolicy(pictures)
	views := service.NewPictureViewAssembler(userService)
	pictureService := service.NewPictureService(pictures, userService, files, policy, views)

	return &handlerEnv{db: gdb, h: NewHandler(pictureService, userService), uploadDir: uploadDir}
}

// asUser 模拟 JWT 中间件写入的用户 ID，id 为 0 时表示匿名
func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id > 0 {
			c.Set("id", id)
		}
		c.Next()
	}
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("解析响应失败: %v, body=%s", err, w.Body.String())
	}
	return out
}
