package dto

import (
	"time"

	"github.com/DaDaTzz/gallery-backend/internal/model"
)

// PictureQueryRequest 图片分页查询条件，数值类条件为 nil 表示不过滤
type PictureQueryRequest struct {
	PaginationRequest
	ID            *uint               `json:"id"`
	Name          string              `json:"name"`
	Introduction  string              `json:"introduction"`
	Category      string              `json:"category"`
	Tags          []string            `json:"tags"`
	PicSize       *int64              `json:"pic_size"`
	PicWidth      *int                `json:"pic_width"`
	PicHeight     *int                `json:"pic_height"`
	PicScale      *float64            `json:"pic_scale"`
	PicFormat     string              `json:"pic_format"`
	SearchText    string              `json:"search_text"`
	UserID        *uint               `json:"user_id"`
	ReviewStatus  *model.ReviewStatus `json:"review_status"`
	ReviewMessage string              `json:"review_message"`
	ReviewerID    *uint               `json:"reviewer_id"`
}

// PictureEditRequest 用户编辑与管理员更新共用，未传的字段保持不变
type PictureEditRequest struct {
	ID           uint     `json:"id"`
	Name         *string  `json:"name"`
	Introduction *string  `json:"introduction"`
	Category     *string  `json:"category"`
	Tags         []string `json:"tags"`
}

type PictureUploadRequest struct {
	ID uint `form:"id"`
}

type PictureReviewRequest struct {
	ID            uint                `json:"id"`
	ReviewStatus  *model.ReviewStatus `json:"review_status"`
	ReviewMessage string              `json:"review_message"`
}

// UploadPictureResult 文件处理结果
type UploadPictureResult struct {
	URL       string
	Name      string
	PicSize   int64
	PicWidth  int
	PicHeight int
	PicScale  float64
	PicFormat string
}

type PictureTagCategory struct {
	TagList      []string `json:"tag_list"`
	CategoryList []string `json:"category_list"`
}

// PictureView 图片展示对象，不落库
type PictureView struct {
	ID            uint               `json:"id"`
	URL           string             `json:"url"`
	Name          string             `json:"name"`
	Introduction  string             `json:"introduction"`
	Category      string             `json:"category"`
	Tags          []string           `json:"tags"`
	PicSize       int64              `json:"pic_size"`
	PicWidth      int                `json:"pic_width"`
	PicHeight     int                `json:"pic_height"`
	PicScale      float64            `json:"pic_scale"`
	PicFormat     string             `json:"pic_format"`
	UserID        uint               `json:"user_id"`
	CreateTime    time.Time          `json:"create_time"`
	EditTime      *time.Time         `json:"edit_time"`
	UpdateTime    time.Time          `json:"update_time"`
	ReviewStatus  model.ReviewStatus `json:"review_status"`
	ReviewMessage string             `json:"review_message"`
	ReviewerID    *uint              `json:"reviewer_id"`
	ReviewTime    *time.Time         `json:"review_time"`
	User          *UserView          `json:"user"`
}

// NewPictureView 逐字段转换，User 由调用方补充
func NewPictureView(p *model.Picture) PictureView {
	tags := make([]string, len(p.Tags))
	copy(tags, p.Tags)
	return PictureView{
		ID:            p.ID,
		URL:           p.URL,
		Name:          p.Name,
		Introduction:  p.Introduction,
		Category:      p.Category,
		Tags:          tags,
		PicSize:       p.PicSize,
		PicWidth:      p.PicWidth,
		PicHeight:     p.PicHeight,
		PicScale:      p.PicScale,
		PicFormat:     p.PicFormat,
		UserID:        p.UserID,
		CreateTime:    p.CreateTime,
		EditTime:      p.EditTime,
		UpdateTime:    p.UpdateTime,
		ReviewStatus:  p.ReviewStatus,
		ReviewMessage: p.ReviewMessage,
		ReviewerID:    p.ReviewerID,
		ReviewTime:    p.ReviewTime,
	}
}

// ToModel 还原为持久化记录，丢弃关联用户
func (v PictureView) ToModel() *model.Picture {
	tags := make(model.Tags, len(v.Tags))
	copy(tags, v.Tags)
	return &model.Picture{
		ID:            v.ID,
		URL:           v.URL,
		Name:          v.Name,
		Introduction:  v.Introduction,
		Category:      v.Category,
		Tags:          tags,
		PicSize:       v.PicSize,
		PicWidth:      v.PicWidth,
		PicHeight:     v.PicHeight,
		PicScale:      v.PicScale,
		PicFormat:     v.PicFormat,
		UserID:        v.UserID,
		CreateTime:    v.CreateTime,
		EditTime:      v.EditTime,
		UpdateTime:    v.UpdateTime,
		ReviewStatus:  v.ReviewStatus,
		ReviewMessage: v.ReviewMessage,
		ReviewerID:    v.ReviewerID,
		ReviewTime:    v.ReviewTime,
	}
}
