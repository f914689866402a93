package repository

import (
	"context"
	"testing"

	"github.com/DaDaTzz/gallery-backend/internal/model"
	"github.com/DaDaTzz/gallery-backend/internal/testutils"
)

// 测试内容：验证按 ID、批量 ID 与用户名查询用户。
func TestUserRepository_Lookups(t *testing.T) {
	gdb := testutils.SetupDB(t)
	store := NewUserRepository(gdb)
	ctx := context.Background()

	alice := &model.User{Username: "alice"}
	bob := &model.User{Username: "bob", Admin: true}
	if err := store.Create(ctx, alice); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Create(ctx, bob); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.FindByID(ctx, bob.ID)
	if err != nil || !got.Admin {
		t.Fatalf("期望查询到管理员 bob，实际为 %+v err=%v", got, err)
	}
	if _, err := store.FindByUsername(ctx, "alice"); err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}

	users, err := store.FindByIDs(ctx, []uint{alice.ID, bob.ID, 999})
	if err != nil || len(users) != 2 {
		t.Fatalf("期望返回 2 个用户，实际为 %d err=%v", len(users), err)
	}

	users, err = store.FindByIDs(ctx, nil)
	if err != nil || len(users) != 0 {
		t.Fatalf("空 ID 列表应返回空结果")
	}
}
