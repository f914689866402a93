package service

import (
	"encoding/json"
	"strings"

	"github.com/DaDaTzz/gallery-backend/internal/consts"
	"github.com/DaDaTzz/gallery-backend/internal/dto"
	"github.com/DaDaTzz/gallery-backend/internal/query"
)

// sortColumns 允许排序的字段，同时接受驼峰与下划线写法
var sortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"category":      "category",
	"picSize":       "pic_size",
	"pic_size":      "pic_size",
	"picWidth":      "pic_width",
	"pic_width":     "pic_width",
	"picHeight":     "pic_height",
	"pic_height":    "pic_height",
	"picScale":      "pic_scale",
	"pic_scale":     "pic_scale",
	"picFormat":     "pic_format",
	"pic_format":    "pic_format",
	"userId":        "user_id",
	"user_id":       "user_id",
	"createTime":    "create_time",
	"create_time":   "create_time",
	"editTime":      "edit_time",
	"edit_time":     "edit_time",
	"updateTime":    "update_time",
	"update_time":   "update_time",
	"reviewStatus":  "review_status",
	"review_status": "review_status",
	"reviewTime":    "review_time",
	"review_time":   "review_time",
}

// BuildPictureQuery 将查询请求转换为与存储无关的过滤条件，条件之间为“且”
func BuildPictureQuery(req *dto.PictureQueryRequest) query.Spec {
	var spec query.Spec
	if req == nil {
		return spec
	}

	if text := strings.TrimSpace(req.SearchText); text != "" {
		spec.And(query.AnyOf{
			query.Contains{Field: "name", Text: text},
			query.Contains{Field: "introduction", Text: text},
		})
	}

	if req.ID != nil {
		spec.And(query.Eq{Field: "id", Value: *req.ID})
	}
	if req.UserID != nil {
		spec.And(query.Eq{Field: "user_id", Value: *req.UserID})
	}
	if strings.TrimSpace(req.Category) != "" {
		spec.And(query.Eq{Field: "category", Value: req.Category})
	}
	if req.PicSize != nil {
		spec.And(query.Eq{Field: "pic_size", Value: *req.PicSize})
	}
	if req.PicWidth != nil {
		spec.And(query.Eq{Field: "pic_width", Value: *req.PicWidth})
	}
	if req.PicHeight != nil {
		spec.And(query.Eq{Field: "pic_height", Value: *req.PicHeight})
	}
	if req.PicScale != nil {
		spec.And(query.Eq{Field: "pic_scale", Value: *req.PicScale})
	}
	if strings.TrimSpace(req.PicFormat) != "" {
		spec.And(query.Eq{Field: "pic_format", Value: req.PicFormat})
	}
	if req.ReviewStatus != nil {
		spec.And(query.Eq{Field: "review_status", Value: *req.ReviewStatus})
	}
	if req.ReviewerID != nil {
		spec.And(query.Eq{Field: "reviewer_id", Value: *req.ReviewerID})
	}

	if strings.TrimSpace(req.Name) != "" {
		spec.And(query.Contains{Field: "name", Text: req.Name})
	}
	if strings.TrimSpace(req.Introduction) != "" {
		spec.And(query.Contains{Field: "introduction", Text: req.Introduction})
	}
	if strings.TrimSpace(req.ReviewMessage) != "" {
		spec.And(query.Contains{Field: "review_message", Text: req.ReviewMessage})
	}

	// 标签以 JSON 数组存储，按带引号的元素匹配，避免“生活”命中“生活家”
	for _, tag := range req.Tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		quoted, err := json.Marshal(tag)
		if err != nil {
			continue
		}
		spec.And(query.Contains{Field: "tags", Text: string(quoted)})
	}

	if column, ok := sortColumns[req.SortField]; ok {
		spec.Order = &query.Order{Field: column, Asc: isAscending(req.SortOrder)}
	}
	return spec
}

func isAscending(order string) bool {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case consts.SortOrderAscend, "asc", "ascending":
		return true
	}
	return false
}
