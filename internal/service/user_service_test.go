package service

import (
	"context"
	"testing"

	"github.com/DaDaTzz/gallery-backend/internal/common"
	"github.com/DaDaTzz/gallery-backend/internal/model"
	"github.com/DaDaTzz/gallery-backend/internal/repository"
	"github.com/DaDaTzz/gallery-backend/internal/testutils"
)

// 测试内容：验证当前操作者解析，匿名返回 nil，不存在的用户返回未登录错误。
func TestGetCurrentActor(t *testing.T) {
	gdb := testutils.SetupDB(t)
	svc := NewUserService(repository.NewUserRepository(gdb))
	ctx := context.Background()
	alice := testutils.CreateUser(t, gdb, "alice", true)

	actor, err := svc.GetCurrentActor(ctx, 0)
	if err != nil || actor != nil {
		t.Fatalf("匿名应返回 nil，实际为 %+v err=%v", actor, err)
	}

	actor, err = svc.GetCurrentActor(ctx, alice.ID)
	if err != nil || actor == nil || !svc.IsAdmin(actor) {
		t.Fatalf("期望解析出管理员 alice，实际为 %+v err=%v", actor, err)
	}

	_, err = svc.GetCurrentActor(ctx, 999)
	if !common.IsCode(err, common.ErrorCodeUnauthorized) {
		t.Fatalf("期望未登录错误，实际为 %v", err)
	}
}

// 测试内容：验证 IsAdmin 对匿名与普通用户返回 false。
func TestIsAdmin(t *testing.T) {
	svc := NewUserService(nil)
	if svc.IsAdmin(nil) || svc.IsAdmin(&model.User{ID: 1}) {
		t.Fatalf("匿名与普通用户不应是管理员")
	}
	if !svc.IsAdmin(&model.User{ID: 1, Admin: true}) {
		t.Fatalf("管理员判断错误")
	}
}

// 测试内容：验证 EnsureUser 首次创建、再次调用复用已有用户。
func TestEnsureUser(t *testing.T) {
	gdb := testutils.SetupDB(t)
	svc := NewUserService(repository.NewUserRepository(gdb))
	ctx := context.Background()

	first, err := svc.EnsureUser(ctx, "carol", true)
	if err != nil || first.ID == 0 || !first.Admin {
		t.Fatalf("期望创建管理员 carol，实际为 %+v err=%v", first, err)
	}
	second, err := svc.EnsureUser(ctx, "carol", false)
	if err != nil || second.ID != first.ID {
		t.Fatalf("期望复用已有用户，实际为 %+v err=%v", second, err)
	}
	if _, err := svc.EnsureUser(ctx, "", false); !common.IsCode(err, common.ErrorCodeValidation) {
		t.Fatalf("空用户名应返回参数错误，实际为 %v", err)
	}
}
