package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/DaDaTzz/gallery-backend/internal/model"
	"github.com/DaDaTzz/gallery-backend/internal/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pictureColumns 可用于过滤与排序的列
var pictureColumns = map[string]bool{
	"id":             true,
	"url":            true,
	"name":           true,
	"introduction":   true,
	"category":       true,
	"tags":           true,
	"pic_size":       true,
	"pic_width":      true,
	"pic_height":     true,
	"pic_scale":      true,
	"pic_format":     true,
	"user_id":        true,
	"create_time":    true,
	"edit_time":      true,
	"update_time":    true,
	"review_status":  true,
	"review_message": true,
	"reviewer_id":    true,
	"review_time":    true,
}

type PictureRepository struct {
	db *gorm.DB
}

func (r *PictureRepository) FindByID(ctx context.Context, id uint) (*model.Picture, error) {
	var picture model.Picture
	if err := r.db.WithContext(ctx).First(&picture, id).Error; err != nil {
		return nil, err
	}
	return &picture, nil
}

func (r *PictureRepository) Create(ctx context.Context, picture *model.Picture) error {
	return r.db.WithContext(ctx).Create(picture).Error
}

func (r *PictureRepository) UpdateByID(ctx context.Context, id uint, updates map[string]interface{}) (bool, error) {
	if len(updates) == 0 {
		return false, nil
	}
	for col := range updates {
		if !pictureColumns[col] || col == "id" {
			return false, fmt.Errorf("unknown picture column %q", col)
		}
	}
	res := r.db.WithContext(ctx).Model(&model.Picture{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PictureRepository) DeleteByID(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Picture{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PictureRepository) Page(ctx context.Context, spec query.Spec, page, pageSize int) ([]model.Picture, int64, error) {
	var pictures []model.Picture
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Picture{})
	for _, p := range spec.Where {
		expr, err := toExpression(p)
		if err != nil {
			return nil, 0, err
		}
		if expr != nil {
			tx = tx.Where(expr)
		}
	}

	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if spec.Order != nil {
		if !pictureColumns[spec.Order.Field] {
			return nil, 0, fmt.Errorf("unknown picture column %q", spec.Order.Field)
		}
		tx = tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: spec.Order.Field},
			Desc:   !spec.Order.Asc,
		})
	}

	offset := (page - 1) * pageSize
	if err := tx.Offset(offset).Limit(pageSize).Find(&pictures).Error; err != nil {
		return nil, 0, err
	}
	return pictures, total, nil
}

// likeEscaper 转义 LIKE 通配符，使 Contains 按字面匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func toExpression(p query.Predicate) (clause.Expression, error) {
	switch v := p.(type) {
	case query.Eq:
		if !pictureColumns[v.Field] {
			return nil, fmt.Errorf("unknown picture column %q", v.Field)
		}
		return clause.Eq{Column: clause.Column{Name: v.Field}, Value: v.Value}, nil
	case query.Contains:
		if !pictureColumns[v.Field] {
			return nil, fmt.Errorf("unknown picture column %q", v.Field)
		}
		return clause.Expr{
			SQL:  "? LIKE ? ESCAPE ?",
			Vars: []interface{}{clause.Column{Name: v.Field}, "%" + likeEscaper.Replace(v.Text) + "%", `\`},
		}, nil
	case query.AnyOf:
		exprs := make([]clause.Expression, 0, len(v))
		for _, sub := range v {
			expr, err := toExpression(sub)
			if err != nil {
				return nil, err
			}
			if expr != nil {
				exprs = append(exprs, expr)
			}
		}
		switch len(exprs) {
		case 0:
			return nil, nil
		case 1:
			// 单元素的 OrConditions 会被 gorm 以 OR 拼接到前一个条件上
			return exprs[0], nil
		}
		return clause.Or(exprs...), nil
	default:
		return nil, fmt.Errorf("unsupported predicate %T", p)
	}
}
