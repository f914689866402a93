package service

import (
	"context"
	"errors"
	"log"

	"github.com/DaDaTzz/gallery-backend/internal/common"
	"github.com/DaDaTzz/gallery-backend/internal/consts"
	"github.com/DaDaTzz/gallery-backend/internal/dto"
	"github.com/DaDaTzz/gallery-backend/internal/model"
	"github.com/DaDaTzz/gallery-backend/internal/utils"

	"gorm.io/gorm"
)

// FillReviewParams 管理员提交直接过审，其余情况重置为待审核。
// 非管理员不会清空上一次的审核人与审核时间。
func (p *ReviewPolicy) FillReviewParams(picture *model.Picture, actor *model.User) {
	if isAdmin(actor) {
		now := timeNow()
		reviewerID := actor.ID
		picture.ReviewStatus = model.ReviewStatusApproved
		picture.ReviewMessage = consts.AutoApproveMessage
		picture.ReviewerID = &reviewerID
		picture.ReviewTime = &now
		return
	}
	picture.ReviewStatus = model.ReviewStatusPending
}

// reviewColumns FillReviewParams 之后需要写回的列
func reviewColumns(picture *model.Picture, actor *model.User) map[string]interface{} {
	cols := map[string]interface{}{"review_status": picture.ReviewStatus}
	if isAdmin(actor) {
		cols["review_message"] = picture.ReviewMessage
		cols["reviewer_id"] = picture.ReviewerID
		cols["review_time"] = picture.ReviewTime
	}
	return cols
}

// ReviewPicture 管理员人工审核
func (p *ReviewPolicy) ReviewPicture(ctx context.Context, req dto.PictureReviewRequest, actor *model.User) error {
	if req.ReviewStatus == nil ||
		(*req.ReviewStatus != model.ReviewStatusApproved && *req.ReviewStatus != model.ReviewStatusRejected) {
		return common.NewValidationError("审核状态错误")
	}
	if req.ID == 0 {
		return common.NewValidationError("图片 id 不能为空")
	}
	if utils.ExceedsRunes(req.ReviewMessage, consts.MaxReviewMessageLength) {
		return common.NewValidationError("审核信息过长")
	}

	picture, err := p.pictureStore.FindByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewNotFoundError("图片不存在")
		}
		log.Printf("ReviewPicture find error: %v", err)
		return common.NewInternalError("查询图片失败")
	}
	newStatus := *req.ReviewStatus
	if picture.ReviewStatus == newStatus {
		return common.NewValidationError("请勿重复审核")
	}
	if !isAdmin(actor) {
		return common.NewForbiddenError("需要管理员权限才能审核")
	}

	now := timeNow()
	reviewerID := actor.ID
	ok, err := p.pictureStore.UpdateByID(ctx, req.ID, map[string]interface{}{
		"reviewer_id":    &reviewerID,
		"review_status":  newStatus,
		"review_message": req.ReviewMessage,
		"review_time":    &now,
	})
	if err != nil {
		log.Printf("ReviewPicture update error: %v", err)
		return common.NewInternalError("审核失败")
	}
	if !ok {
		return common.NewInternalError("审核失败")
	}
	return nil
}
