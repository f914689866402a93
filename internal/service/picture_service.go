package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/DaDaTzz/gallery-backend/internal/common"
	"github.com/DaDaTzz/gallery-backend/internal/consts"
	"github.com/DaDaTzz/gallery-backend/internal/dto"
	"github.com/DaDaTzz/gallery-backend/internal/model"
	"github.com/DaDaTzz/gallery-backend/internal/utils"

	"gorm.io/gorm"
)

// canModify 作者本人或管理员
func canModify(picture *model.Picture, actor *model.User) bool {
	return actor != nil && (picture.UserID == actor.ID || actor.Admin)
}

// ValidatePicture 校验已存在图片的基本字段
func ValidatePicture(picture *model.Picture) error {
	if picture == nil {
		return common.NewValidationError("参数为空")
	}
	if picture.ID == 0 {
		return common.NewValidationError("图片 id 不能为空")
	}
	if picture.URL != "" && utils.ExceedsRunes(picture.URL, consts.MaxPictureURLLength) {
		return common.NewValidationError("url 过长")
	}
	if picture.Introduction != "" && utils.ExceedsRunes(picture.Introduction, consts.MaxIntroductionLength) {
		return common.NewValidationError("简介过长")
	}
	return nil
}

func (s *PictureService) findPicture(ctx context.Context, id uint) (*model.Picture, error) {
	picture, err := s.pictureStore.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("图片不存在")
		}
		log.Printf("find picture %d error: %v", id, err)
		return nil, common.NewInternalError("查询图片失败")
	}
	return picture, nil
}

// Upload 上传新图片，或在 req.ID 指定时替换已有图片的文件
func (s *PictureService) Upload(ctx context.Context, file *multipart.FileHeader, req dto.PictureUploadRequest, actor *model.User) (*dto.PictureView, error) {
	if actor == nil {
		return nil, common.NewUnauthorizedError("请先登录")
	}

	var existing *model.Picture
	if req.ID > 0 {
		var err error
		existing, err = s.findPicture(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		if !canModify(existing, actor) {
			return nil, common.NewForbiddenError("无权操作该图片")
		}
	}

	prefix := fmt.Sprintf("%s/%d", consts.UploadPathPrefix, actor.ID)
	result, err := s.files.Process(ctx, file, prefix)
	if err != nil {
		return nil, err
	}

	picture := &model.Picture{
		URL:       result.URL,
		Name:      utils.SanitizeText(result.Name),
		Tags:      model.Tags{},
		PicSize:   result.PicSize,
		PicWidth:  result.PicWidth,
		PicHeight: result.PicHeight,
		PicScale:  result.PicScale,
		PicFormat: result.PicFormat,
		UserID:    actor.ID,
	}
	if utils.ExceedsRunes(picture.URL, consts.MaxPictureURLLength) {
		s.removeFile(picture.URL)
		return nil, common.NewValidationError("url 过长")
	}
	s.reviewPolicy.FillReviewParams(picture, actor)

	if existing == nil {
		if err := s.pictureStore.Create(ctx, picture); err != nil {
			s.removeFile(picture.URL)
			log.Printf("Upload create error: %v", err)
			return nil, common.NewInternalError("图片上传失败，数据库操作失败")
		}
	} else {
		now := timeNow()
		updates := reviewColumns(picture, actor)
		updates["url"] = picture.URL
		updates["name"] = picture.Name
		updates["pic_size"] = picture.PicSize
		updates["pic_width"] = picture.PicWidth
		updates["pic_height"] = picture.PicHeight
		updates["pic_scale"] = picture.PicScale
		updates["pic_format"] = picture.PicFormat
		updates["edit_time"] = &now

		ok, err := s.pictureStore.UpdateByID(ctx, existing.ID, updates)
		if err != nil || !ok {
			s.removeFile(picture.URL)
			if err != nil {
				log.Printf("Upload update error: %v", err)
			}
			return nil, common.NewInternalError("图片上传失败，数据库操作失败")
		}
		if existing.URL != picture.URL {
			s.removeFile(existing.URL)
		}
		if picture, err = s.findPicture(ctx, existing.ID); err != nil {
			return nil, err
		}
	}

	view := s.views.ToView(ctx, picture)
	return &view, nil
}

// applyEdit 合并请求中出现的字段，文本统一去除 HTML
func applyEdit(picture *model.Picture, req dto.PictureEditRequest) {
	if req.Name != nil {
		picture.Name = utils.SanitizeText(*req.Name)
	}
	if req.Introduction != nil {
		picture.Introduction = utils.SanitizeText(*req.Introduction)
	}
	if req.Category != nil {
		picture.Category = utils.SanitizeText(*req.Category)
	}
	if req.Tags != nil {
		picture.Tags = model.Tags(utils.SanitizeTags(req.Tags))
	}
}

func validateEditRequest(req dto.PictureEditRequest) error {
	if req.ID == 0 {
		return common.NewValidationError("图片 id 不能为空")
	}
	if req.Introduction != nil && utils.ExceedsRunes(*req.Introduction, consts.MaxIntroductionLength) {
		return common.NewValidationError("简介过长")
	}
	return nil
}

func editColumns(picture *model.Picture) map[string]interface{} {
	return map[string]interface{}{
		"name":         picture.Name,
		"introduction": picture.Introduction,
		"category":     picture.Category,
		"tags":         picture.Tags,
	}
}

// Edit 作者或管理员编辑图片信息，非管理员编辑后需重新审核
func (s *PictureService) Edit(ctx context.Context, req dto.PictureEditRequest, actor *model.User) error {
	if actor == nil {
		return common.NewUnauthorizedError("请先登录")
	}
	if err := validateEditRequest(req); err != nil {
		return err
	}

	picture, err := s.findPicture(ctx, req.ID)
	if err != nil {
		return err
	}
	if !canModify(picture, actor) {
		return common.NewForbiddenError("无权编辑该图片")
	}

	applyEdit(picture, req)
	if err := ValidatePicture(picture); err != nil {
		return err
	}
	now := timeNow()
	picture.EditTime = &now
	s.reviewPolicy.FillReviewParams(picture, actor)

	updates := editColumns(picture)
	for k, v := range reviewColumns(picture, actor) {
		updates[k] = v
	}
	updates["edit_time"] = picture.EditTime
	return s.update(ctx, picture.ID, updates)
}

// AdminUpdate 管理员更新图片信息，不记录编辑时间
func (s *PictureService) AdminUpdate(ctx context.Context, req dto.PictureEditRequest, actor *model.User) error {
	if !isAdmin(actor) {
		return common.NewForbiddenError("需要管理员权限")
	}
	if err := validateEditRequest(req); err != nil {
		return err
	}

	picture, err := s.findPicture(ctx, req.ID)
	if err != nil {
		return err
	}
	applyEdit(picture, req)
	if err := ValidatePicture(picture); err != nil {
		return err
	}
	s.reviewPolicy.FillReviewParams(picture, actor)

	updates := editColumns(picture)
	for k, v := range reviewColumns(picture, actor) {
		updates[k] = v
	}
	return s.update(ctx, picture.ID, updates)
}

func (s *PictureService) update(ctx context.Context, id uint, updates map[string]interface{}) error {
	ok, err := s.pictureStore.UpdateByID(ctx, id, updates)
	if err != nil {
		log.Printf("update picture %d error: %v", id, err)
		return common.NewInternalError("操作失败")
	}
	if !ok {
		return common.NewInternalError("操作失败")
	}
	return nil
}

// Delete 作者或管理员删除图片，记录删除后再尝试清理文件
func (s *PictureService) Delete(ctx context.Context, id uint, actor *model.User) error {
	if actor == nil {
		return common.NewUnauthorizedError("请先登录")
	}
	if id == 0 {
		return common.NewValidationError("图片 id 不能为空")
	}

	picture, err := s.findPicture(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(picture, actor) {
		return common.NewForbiddenError("无权删除该图片")
	}

	ok, err := s.pictureStore.DeleteByID(ctx, id)
	if err != nil {
		log.Printf("delete picture %d error: %v", id, err)
		return common.NewInternalError("删除失败")
	}
	if !ok {
		return common.NewInternalError("删除失败")
	}
	s.removeFile(picture.URL)
	return nil
}

func (s *PictureService) removeFile(url string) {
	if url == "" {
		return
	}
	if err := s.files.Remove(url); err != nil {
		log.Printf("⚠️ 清理图片文件失败 %s: %v", url, err)
	}
}

// GetView 获取图片详情；非管理员只能查看已过审图片
func (s *PictureService) GetView(ctx context.Context, id uint, actor *model.User) (*dto.PictureView, error) {
	if id == 0 {
		return nil, common.NewValidationError("图片 id 不能为空")
	}
	picture, err := s.findPicture(ctx, id)
	if err != nil {
		return nil, err
	}
	if picture.ReviewStatus != model.ReviewStatusApproved && !isAdmin(actor) {
		return nil, common.NewForbiddenError("图片未过审")
	}
	view := s.views.ToView(ctx, picture)
	return &view, nil
}

func normalizePagination(req *dto.PictureQueryRequest) {
	if req.Current < 1 {
		req.Current = consts.DefaultPage
	}
	if req.PageSize < 1 {
		req.PageSize = consts.DefaultPageSize
	}
}

func (s *PictureService) page(ctx context.Context, req *dto.PictureQueryRequest) (dto.PageResult[model.Picture], error) {
	spec := BuildPictureQuery(req)
	list, total, err := s.pictureStore.Page(ctx, spec, req.Current, req.PageSize)
	if err != nil {
		log.Printf("list pictures error: %v", err)
		return dto.PageResult[model.Picture]{}, common.NewInternalError("获取图片列表失败")
	}
	if list == nil {
		list = []model.Picture{}
	}
	return dto.PageResult[model.Picture]{
		Current: req.Current,
		Size:    req.PageSize,
		Total:   total,
		Records: list,
	}, nil
}

// ListAdminPage 管理员分页查询原始记录，不限制单页大小
func (s *PictureService) ListAdminPage(ctx context.Context, req dto.PictureQueryRequest, actor *model.User) (dto.PageResult[model.Picture], error) {
	if !isAdmin(actor) {
		return dto.PageResult[model.Picture]{}, common.NewForbiddenError("需要管理员权限")
	}
	normalizePagination(&req)
	return s.page(ctx, &req)
}

// ListPublicPage 公开分页；非管理员只能看到已过审图片
func (s *PictureService) ListPublicPage(ctx context.Context, req dto.PictureQueryRequest, actor *model.User) (dto.PageResult[dto.PictureView], error) {
	normalizePagination(&req)
	if req.PageSize > consts.MaxPublicPageSize {
		return dto.PageResult[dto.PictureView]{}, common.NewValidationError(fmt.Sprintf("单页最多 %d 条", consts.MaxPublicPageSize))
	}
	if !isAdmin(actor) {
		approved := model.ReviewStatusApproved
		req.ReviewStatus = &approved
	}

	page, err := s.page(ctx, &req)
	if err != nil {
		return dto.PageResult[dto.PictureView]{}, err
	}
	return s.views.ToViewPage(ctx, page), nil
}

// ListMyPage 当前用户自己的图片，包含全部审核状态
func (s *PictureService) ListMyPage(ctx context.Context, req dto.PictureQueryRequest, actor *model.User) (dto.PageResult[dto.PictureView], error) {
	if actor == nil {
		return dto.PageResult[dto.PictureView]{}, common.NewUnauthorizedError("请先登录")
	}
	normalizePagination(&req)
	if req.PageSize > consts.MaxPublicPageSize {
		return dto.PageResult[dto.PictureView]{}, common.NewValidationError(fmt.Sprintf("单页最多 %d 条", consts.MaxPublicPageSize))
	}
	ownerID := actor.ID
	req.UserID = &ownerID

	page, err := s.page(ctx, &req)
	if err != nil {
		return dto.PageResult[dto.PictureView]{}, err
	}
	return s.views.ToViewPage(ctx, page), nil
}

// Review 管理员审核
func (s *PictureService) Review(ctx context.Context, req dto.PictureReviewRequest, actor *model.User) error {
	return s.reviewPolicy.ReviewPicture(ctx, req, actor)
}

func (s *PictureService) TagCategories() dto.PictureTagCategory {
	tags := make([]string, len(consts.PictureTags))
	copy(tags, consts.PictureTags)
	categories := make([]string, len(consts.PictureCategories))
	copy(categories, consts.PictureCategories)
	return dto.PictureTagCategory{TagList: tags, CategoryList: categories}
}
