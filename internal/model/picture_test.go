package model

import "testing"

// 测试内容：验证 nil 标签写库时存为空数组字符串。
func TestTagsValue_NilStoresEmptyArray(t *testing.T) {
	var tags Tags
	v, err := tags.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != "[]" {
		t.Fatalf("期望 []，实际为 %v", v)
	}
}

// 测试内容：验证标签序列化后再解析保持顺序与内容。
func TestTags_ScanPreservesOrder(t *testing.T) {
	v, err := Tags{"生活", "a\"b", "科技"}.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var got Tags
	if err := got.Scan(v); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 3 || got[0] != "生活" || got[1] != "a\"b" || got[2] != "科技" {
		t.Fatalf("标签不一致: %#v", got)
	}
}

// 测试内容：验证空值与空串解析为空列表而非 nil。
func TestTags_ScanEmptyInputs(t *testing.T) {
	for _, in := range []interface{}{nil, "", []byte("null")} {
		var got Tags
		if err := got.Scan(in); err != nil {
			t.Fatalf("Scan(%v): %v", in, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("期望空列表，实际为 %#v (输入 %v)", got, in)
		}
	}
}

// 测试内容：验证非法 JSON 返回错误。
func TestTags_ScanInvalidJSON(t *testing.T) {
	var got Tags
	if err := got.Scan("not-json"); err == nil {
		t.Fatalf("期望解析错误")
	}
	if err := got.Scan(42); err == nil {
		t.Fatalf("期望类型错误")
	}
}

// 测试内容：验证审核状态合法性判断。
func TestReviewStatusValid(t *testing.T) {
	if !ReviewStatusPending.Valid() || !ReviewStatusApproved.Valid() || !ReviewStatusRejected.Valid() {
		t.Fatalf("已知状态应当合法")
	}
	if ReviewStatus(9).Valid() {
		t.Fatalf("未知状态不应合法")
	}
}
