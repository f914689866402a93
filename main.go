package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/DaDaTzz/gallery-backend/internal/config"
	"github.com/DaDaTzz/gallery-backend/internal/consts"
	"github.com/DaDaTzz/gallery-backend/internal/db"
	"github.com/DaDaTzz/gallery-backend/internal/di"
	"github.com/DaDaTzz/gallery-backend/internal/service"
	"github.com/DaDaTzz/gallery-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// 允许作为静态资源目录的一级子目录
var allowedStaticDirs = []string{"uploads", "public", "assets", "static", "tmp"}

func main() {
	configDir := flag.String("config", "config", "配置文件目录")
	exportRoutes := flag.Bool("export", false, "导出路由到 routes.json 并退出")
	issueTokenFor := flag.String("issue-token", "", "为指定用户名签发登录令牌并退出（用户不存在时创建）")
	issueAdmin := flag.Bool("admin", false, "与 -issue-token 一起使用，新建用户时授予管理员")
	flag.Parse()

	config.InitConfig(*configDir)
	db.InitDB()
	defer func() {
		if err := db.CloseRedisClient(); err != nil {
			log.Printf("⚠️ %v", err)
		}
		if err := db.CloseDB(); err != nil {
			log.Printf("⚠️ %v", err)
		}
	}()

	app, err := di.InitializeApplication(db.DB)
	if err != nil {
		log.Fatalf("❌ 应用初始化失败: %v", err)
	}

	if *issueTokenFor != "" {
		token, err := issueToken(context.Background(), app.UserService, *issueTokenFor, *issueAdmin)
		if err != nil {
			log.Fatalf("❌ 签发令牌失败: %v", err)
		}
		fmt.Println(token)
		return
	}

	uploadPath := config.Get().Upload.Path
	checkSecurePath(uploadPath)
	if err := os.MkdirAll(uploadPath, 0755); err != nil {
		log.Fatal("无法创建上传目录: ", err)
	}

	// Redis 为可选依赖，此处提前探测以便在启动日志中体现
	_ = db.GetRedisClient()

	gin.SetMode(config.Get().Server.Mode)

	r := gin.Default()
	app.Router.Init(r)

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, config.Get().Upload.URLPrefix) {
			c.JSON(http.StatusNotFound, gin.H{"code": "not_found", "error": "Upload not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"code": "not_found", "error": "API not found"})
	})

	// 导出模式
	if *exportRoutes {
		if err := exportAPI(r, "routes.json"); err != nil {
			log.Fatalf("❌ 导出路由失败: %v", err)
		}
		fmt.Println("✅ 路由已成功导出到 routes.json")
		return
	}

	printWelcomeMessage()

	srv := &http.Server{
		Addr:    ":" + config.Get().Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("🚀 服务启动成功，运行在 :%s\n", config.Get().Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ 服务启动失败: %s\n", err)
		}
	}()

	// 等待中断信号关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Println("❌ 服务强制关闭:", err)
		return
	}
	log.Println("✅ 服务已退出")
}

func printWelcomeMessage() {
	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🚀  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  后端版本 : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   🔥  服务端口 : %s\n", config.Get().Server.Port)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}

// issueToken 确保用户存在并签发登录令牌，仅用于开发调试
func issueToken(ctx context.Context, users *service.UserService, username string, admin bool) (string, error) {
	user, err := users.EnsureUser(ctx, strings.TrimSpace(username), admin)
	if err != nil {
		return "", err
	}
	hours := config.Get().JWT.ExpirationHours
	if hours <= 0 {
		hours = 24
	}
	return utils.GenerateLoginToken(user.ID, user.Username, user.Admin, time.Duration(hours)*time.Hour)
}

func exportAPI(r *gin.Engine, filename string) error {
	type RouteInfo struct {
		Method  string `json:"method"`
		Path    string `json:"path"`
		Handler string `json:"handler"`
	}

	exportList := make([]RouteInfo, 0, len(r.Routes()))
	for _, route := range r.Routes() {
		exportList = append(exportList, RouteInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	file, err := json.MarshalIndent(exportList, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, file, 0644)
}

func checkSecurePath(path string) {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("❌ 无法获取当前工作目录: %v", err)
	}
	if err := validateStaticPath(path, cwd); err != nil {
		log.Fatalf("❌ 安全配置错误: %v", err)
	}
}

// validateStaticPath 静态目录不能是项目根目录；位于项目内时必须在白名单子目录下
func validateStaticPath(path, cwd string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("路径解析失败: %w", err)
	}
	if absPath == cwd {
		return fmt.Errorf("静态资源目录 '%s' 不能设置为项目根目录", path)
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil
	}

	firstComponent := strings.Split(filepath.ToSlash(rel), "/")[0]
	for _, allowed := range allowedStaticDirs {
		if strings.EqualFold(firstComponent, allowed) {
			return nil
		}
	}
	return fmt.Errorf("静态资源目录 '%s' (解析为: '%s') 必须位于安全子目录中 (如 %v)", path, filepath.ToSlash(rel), allowedStaticDirs)
}
