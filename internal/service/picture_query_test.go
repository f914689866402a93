package service

import (
	"testing"

	"github.com/DaDaTzz/gallery-backend/internal/dto"
	"github.com/DaDaTzz/gallery-backend/internal/model"
	"github.com/DaDaTzz/gallery-backend/internal/query"
)

// 测试内容：验证空请求与 nil 请求不产生任何条件。
func TestBuildPictureQuery_Empty(t *testing.T) {
	if spec := BuildPictureQuery(nil); !spec.Empty() {
		t.Fatalf("nil 请求应为空条件")
	}
	if spec := BuildPictureQuery(&dto.PictureQueryRequest{SearchText: "   ", Name: " "}); !spec.Empty() {
		t.Fatalf("空白文本不应产生条件: %+v", spec)
	}
}

// 测试内容：验证搜索文本同时匹配名称与简介。
func TestBuildPictureQuery_SearchText(t *testing.T) {
	spec := BuildPictureQuery(&dto.PictureQueryRequest{SearchText: " 猫 ", Introduction: "别的"})
	if len(spec.Where) != 2 {
		t.Fatalf("期望 2 个条件，实际为 %d", len(spec.Where))
	}
	anyOf, ok := spec.Where[0].(query.AnyOf)
	if !ok || len(anyOf) != 2 {
		t.Fatalf("期望首个条件为 OR，实际为 %#v", spec.Where[0])
	}
	for _, p := range anyOf {
		c := p.(query.Contains)
		if c.Text != "猫" {
			t.Fatalf("搜索文本应作用于 %s，实际为 %q", c.Field, c.Text)
		}
	}
	if c := spec.Where[1].(query.Contains); c.Field != "introduction" || c.Text != "别的" {
		t.Fatalf("简介子串条件不符: %#v", c)
	}
}

// 测试内容：验证数值过滤在零值时依然生效，未传时不生效。
func TestBuildPictureQuery_ZeroValuesArePresent(t *testing.T) {
	pending := model.ReviewStatusPending
	width := 0
	spec := BuildPictureQuery(&dto.PictureQueryRequest{ReviewStatus: &pending, PicWidth: &width})
	if len(spec.Where) != 2 {
		t.Fatalf("期望 2 个条件，实际为 %d", len(spec.Where))
	}
	found := map[string]interface{}{}
	for _, p := range spec.Where {
		eq := p.(query.Eq)
		found[eq.Field] = eq.Value
	}
	if found["review_status"] != model.ReviewStatusPending || found["pic_width"] != 0 {
		t.Fatalf("条件值不符: %#v", found)
	}
}

// 测试内容：验证每个标签生成一个带引号的子串条件。
func TestBuildPictureQuery_Tags(t *testing.T) {
	spec := BuildPictureQuery(&dto.PictureQueryRequest{Tags: []string{"生活", "", "科技"}})
	if len(spec.Where) != 2 {
		t.Fatalf("期望 2 个标签条件，实际为 %d", len(spec.Where))
	}
	if c := spec.Where[0].(query.Contains); c.Field != "tags" || c.Text != `"生活"` {
		t.Fatalf("标签条件不符: %#v", c)
	}
}

// 测试内容：验证排序字段白名单与排序方向。
func TestBuildPictureQuery_Sort(t *testing.T) {
	cases := []struct {
		field, order string
		want         *query.Order
	}{
		{"createTime", "ascend", &query.Order{Field: "create_time", Asc: true}},
		{"pic_size", "descend", &query.Order{Field: "pic_size"}},
		{"picSize", "", &query.Order{Field: "pic_size"}},
		{"name; drop table pictures", "ascend", nil},
		{"", "ascend", nil},
	}
	for _, tc := range cases {
		req := &dto.PictureQueryRequest{PaginationRequest: dto.PaginationRequest{SortField: tc.field, SortOrder: tc.order}}
		got := BuildPictureQuery(req).Order
		if tc.want == nil {
			if got != nil {
				t.Fatalf("%q: 期望无排序，实际为 %+v", tc.field, got)
			}
			continue
		}
		if got == nil || *got != *tc.want {
			t.Fatalf("%q: 期望 %+v，实际为 %+v", tc.field, tc.want, got)
		}
	}
}
