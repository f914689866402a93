package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ReviewStatus 审核状态，数值与存量数据保持一致
type ReviewStatus int

const (
	ReviewStatusPending  ReviewStatus = 0
	ReviewStatusApproved ReviewStatus = 1
	ReviewStatusRejected ReviewStatus = 2
)

// Valid 判断是否为已知的审核状态
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}

func (s ReviewStatus) String() string {
	switch s {
	case ReviewStatusPending:
		return "待审核"
	case ReviewStatusApproved:
		return "通过"
	case ReviewStatusRejected:
		return "拒绝"
	}
	return "未知"
}

type Picture struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	URL           string       `json:"url" gorm:"size:512;not null"`
	Name          string       `json:"name" gorm:"size:128;index"`
	Introduction  string       `json:"introduction" gorm:"type:text"`
	Category      string       `json:"category" gorm:"size:64;index"`
	Tags          Tags         `json:"tags" gorm:"type:text"`
	PicSize       int64        `json:"pic_size"`
	PicWidth      int          `json:"pic_width"`
	PicHeight     int          `json:"pic_height"`
	PicScale      float64      `json:"pic_scale"`
	PicFormat     string       `json:"pic_format" gorm:"size:32"`
	UserID        uint         `json:"user_id" gorm:"not null;index"`
	CreateTime    time.Time    `json:"create_time" gorm:"autoCreateTime"`
	EditTime      *time.Time   `json:"edit_time"`
	UpdateTime    time.Time    `json:"update_time" gorm:"autoUpdateTime"`
	ReviewStatus  ReviewStatus `json:"review_status" gorm:"not null;default:0;index"`
	ReviewMessage string       `json:"review_message" gorm:"size:2048"`
	ReviewerID    *uint        `json:"reviewer_id"`
	ReviewTime    *time.Time   `json:"review_time"`
}

// Tags 以 JSON 数组字符串形式存储在单列中，保持原有顺序
type Tags []string

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Tags) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*t = Tags{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return errors.New("tags: unsupported column type")
	}
	parsed, err := ParseTags(string(raw))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTags 解析 JSON 数组字符串；空串视为空列表
func ParseTags(raw string) (Tags, error) {
	if raw == "" {
		return Tags{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []string{}
	}
	return Tags(list), nil
}
