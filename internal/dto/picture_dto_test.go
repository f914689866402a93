package dto

import (
	"testing"
	"time"

	"github.com/DaDaTzz/gallery-backend/internal/model"
)

// 测试内容：验证展示对象与记录之间往返转换保留标签顺序与审核字段。
func TestPictureViewRoundTrip(t *testing.T) {
	reviewer := uint(7)
	now := time.Now()
	src := &model.Picture{
		ID:            3,
		Name:          "n",
		Tags:          model.Tags{"b", "a", "b"},
		UserID:        2,
		ReviewStatus:  model.ReviewStatusApproved,
		ReviewerID:    &reviewer,
		ReviewTime:    &now,
		ReviewMessage: "ok",
	}

	view := NewPictureView(src)
	back := view.ToModel()

	if len(back.Tags) != 3 || back.Tags[0] != "b" || back.Tags[1] != "a" || back.Tags[2] != "b" {
		t.Fatalf("标签顺序不一致: %#v", back.Tags)
	}
	if back.ReviewerID == nil || *back.ReviewerID != 7 || back.ReviewStatus != model.ReviewStatusApproved {
		t.Fatalf("审核字段丢失: %+v", back)
	}

	// 展示对象持有独立的标签切片
	view.Tags[0] = "changed"
	if src.Tags[0] != "b" {
		t.Fatalf("修改展示对象不应影响原记录")
	}
}

// 测试内容：验证空标签转换为空切片而非 nil。
func TestNewPictureView_EmptyTags(t *testing.T) {
	view := NewPictureView(&model.Picture{})
	if view.Tags == nil || len(view.Tags) != 0 {
		t.Fatalf("期望空切片，实际为 %#v", view.Tags)
	}
}

// 测试内容：验证 nil 用户转换为 nil 资料。
func TestNewUserView_Nil(t *testing.T) {
	if NewUserView(nil) != nil {
		t.Fatalf("期望 nil")
	}
	v := NewUserView(&model.User{ID: 1, Username: "u", Admin: true})
	if v.ID != 1 || !v.Admin {
		t.Fatalf("转换结果不符: %+v", v)
	}
}
