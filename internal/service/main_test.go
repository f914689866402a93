package service

import (
	"os"
	"testing"

	"github.com/DaDaTzz/gallery-backend/internal/config"
	"github.com/DaDaTzz/gallery-backend/internal/testutils"
)

// 测试内容：为 service 包测试初始化配置环境并在结束时清理。
func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "gallery-config-*")
	if err != nil {
		panic(err)
	}

	envs := testutils.SetEnvs(map[string]string{
		"GALLERY_SERVER_MODE":   "debug",
		"GALLERY_JWT_SECRET":    "test_secret",
		"GALLERY_REDIS_ENABLED": "false",
	})
	config.InitConfig(tmpDir)

	code := m.Run()

	testutils.RestoreEnv(envs)
	_ = os.RemoveAll(tmpDir)
	os.Exit(code)
}
