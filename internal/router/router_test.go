package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/DaDaTzz/gallery-backend/internal/config"
	"github.com/DaDaTzz/gallery-backend/internal/dto"
	"github.com/DaDaTzz/gallery-backend/internal/handler"
	"github.com/DaDaTzz/gallery-backend/internal/model"
	"github.com/DaDaTzz/gallery-backend/internal/repository"
	"github.com/DaDaTzz/gallery-backend/internal/service"
	"github.com/DaDaTzz/gallery-backend/internal/storage"
	"github.com/DaDaTzz/gallery-backend/internal/testutils"
	"github.com/DaDaTzz/gallery-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gdb := testutils.SetupDB(t)
	pictures := repository.NewPictureRepository(gdb)
	userService := service.NewUserService(repository.NewUserRepository(gdb))
	policy := service.NewReviewPolicy(pictures)
	pictureService := service.NewPictureService(pictures, userService,
		storage.NewLocalFileProcessor(config.Get().Upload), policy, service.NewPictureViewAssembler(userService))

	r := gin.New()
	NewRouter(handler.NewHandler(pictureService, userService)).Init(r)
	return r, gdb
}

func tokenFor(t *testing.T, u *model.User) string {
	t.Helper()
	token, err := utils.GenerateLoginToken(u.ID, u.Username, u.Admin, time.Hour)
	if err != nil {
		t.Fatalf("GenerateLoginToken: %v", err)
	}
	return "Bearer " + token
}

func postJSON(r *gin.Engine, path, auth string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// 测试内容：验证图片相关 API 路由被正确注册。
func TestInit_RegistersPictureRoutes(t *testing.T) {
	r, _ := setupEngine(t)

	wants := []string{
		"GET /api/ping",
		"POST /api/picture/upload",
		"POST /api/picture/delete",
		"POST /api/picture/update",
		"GET /api/picture/get/vo",
		"POST /api/picture/list/page",
		"POST /api/picture/list/page/vo",
		"POST /api/picture/my/list/page/vo",
		"POST /api/picture/edit",
		"POST /api/picture/review",
		"GET /api/picture/tag_category",
	}

	have := make(map[string]bool)
	for _, route := range r.Routes() {
		have[route.Method+" "+route.Path] = true
	}
	for _, w := range wants {
		if !have[w] {
			t.Fatalf("缺少路由: %s", w)
		}
	}
}

// 测试内容：验证各接口的登录与管理员访问控制。
func TestInit_AccessControl(t *testing.T) {
	r, gdb := setupEngine(t)
	user := testutils.CreateUser(t, gdb, "bob", false)

	if w := postJSON(r, "/api/picture/delete", "", dto.DeleteRequest{ID: 1}); w.Code != http.StatusUnauthorized {
		t.Fatalf("未登录删除期望 401，实际为 %d", w.Code)
	}
	if w := postJSON(r, "/api/picture/list/page", tokenFor(t, user), nil); w.Code != http.StatusForbidden {
		t.Fatalf("非管理员访问管理分页期望 403，实际为 %d", w.Code)
	}
	if w := postJSON(r, "/api/picture/list/page/vo", "", nil); w.Code != http.StatusOK {
		t.Fatalf("匿名访问公开分页期望 200，实际为 %d", w.Code)
	}
}

// 测试内容：验证管理员被降级后，旧令牌访问管理接口返回 403，用户被删除后返回 401。
func TestInit_AdminRevokedWithOldToken(t *testing.T) {
	r, gdb := setupEngine(t)
	admin := testutils.CreateUser(t, gdb, "admin", true)
	token := tokenFor(t, admin)

	if w := postJSON(r, "/api/picture/list/page", token, nil); w.Code != http.StatusOK {
		t.Fatalf("降级前期望 200，实际为 %d", w.Code)
	}

	if err := gdb.Model(&model.User{}).Where("id = ?", admin.ID).Update("admin", false).Error; err != nil {
		t.Fatalf("降级用户失败: %v", err)
	}
	if w := postJSON(r, "/api/picture/list/page", token, nil); w.Code != http.StatusForbidden {
		t.Fatalf("降级后期望 403，实际为 %d", w.Code)
	}

	if err := gdb.Delete(&model.User{}, admin.ID).Error; err != nil {
		t.Fatalf("删除用户失败: %v", err)
	}
	if w := postJSON(r, "/api/picture/list/page", token, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("删除后期望 401，实际为 %d", w.Code)
	}
}

// 测试内容：验证上传、审核、公开浏览与静态访问的完整流程。
func TestInit_UploadReviewBrowseFlow(t *testing.T) {
	r, gdb := setupEngine(t)
	user := testutils.CreateUser(t, gdb, "bob", false)
	admin := testutils.CreateUser(t, gdb, "admin", true)

	body, contentType := testutils.MultipartBody(t, "flow.png", testutils.PNG(t, 6, 3), nil)
	req := httptest.NewRequest(http.MethodPost, "/api/picture/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", tokenFor(t, user))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("上传期望 200，实际为 %d: %s", w.Code, w.Body.String())
	}
	var uploaded dto.PictureView
	if err := json.Unmarshal(w.Body.Bytes(), &uploaded); err != nil {
		t.Fatalf("解析上传结果失败: %v", err)
	}

	// 未过审时匿名不可见
	getURL := "/api/picture/get/vo?id=" + strconv.FormatUint(uint64(uploaded.ID), 10)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, getURL, nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("未过审详情期望 403，实际为 %d", w.Code)
	}

	review := map[string]any{"id": uploaded.ID, "review_status": model.ReviewStatusApproved, "review_message": "ok"}
	if w := postJSON(r, "/api/picture/review", tokenFor(t, admin), review); w.Code != http.StatusOK {
		t.Fatalf("审核期望 200，实际为 %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(r, "/api/picture/list/page/vo", "", map[string]any{"current": 1, "page_size": 10})
	var page dto.PageResult[dto.PictureView]
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("解析分页失败: %v", err)
	}
	if page.Total != 1 || page.Records[0].ID != uploaded.ID || page.Records[0].User == nil {
		t.Fatalf("公开分页结果不符: %+v", page)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, uploaded.URL, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("静态访问期望 200，实际为 %d", w.Code)
	}
	if w.Header().Get("Cache-Control") == "" {
		t.Fatalf("期望静态图片带缓存头")
	}
}
