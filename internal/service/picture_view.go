package service

import (
	"context"
	"log"

	"github.com/DaDaTzz/gallery-backend/internal/dto"
	"github.com/DaDaTzz/gallery-backend/internal/model"
)

// ToView 组装单个展示对象；作者查询失败时 User 为空
func (a *PictureViewAssembler) ToView(ctx context.Context, picture *model.Picture) dto.PictureView {
	view := dto.NewPictureView(picture)
	if picture.UserID > 0 {
		user, err := a.userService.GetByID(ctx, picture.UserID)
		if err != nil {
			log.Printf("ToView load user %d error: %v", picture.UserID, err)
		}
		view.User = a.userService.GetPublicProfile(user)
	}
	return view
}

// ToViewPage 一次性批量查询作者并保持记录顺序
func (a *PictureViewAssembler) ToViewPage(ctx context.Context, page dto.PageResult[model.Picture]) dto.PageResult[dto.PictureView] {
	result := dto.PageResult[dto.PictureView]{
		Current: page.Current,
		Size:    page.Size,
		Total:   page.Total,
		Records: make([]dto.PictureView, 0, len(page.Records)),
	}
	if len(page.Records) == 0 {
		return result
	}

	seen := make(map[uint]bool, len(page.Records))
	ids := make([]uint, 0, len(page.Records))
	for _, p := range page.Records {
		if p.UserID > 0 && !seen[p.UserID] {
			seen[p.UserID] = true
			ids = append(ids, p.UserID)
		}
	}

	users := make(map[uint]*model.User, len(ids))
	if len(ids) > 0 {
		list, err := a.userService.ListByIDs(ctx, ids)
		if err != nil {
			log.Printf("ToViewPage load users error: %v", err)
		}
		for i := range list {
			if _, ok := users[list[i].ID]; !ok {
				users[list[i].ID] = &list[i]
			}
		}
	}

	for i := range page.Records {
		view := dto.NewPictureView(&page.Records[i])
		if u, ok := users[page.Records[i].UserID]; ok {
			view.User = a.userService.GetPublicProfile(u)
		}
		result.Records = append(result.Records, view)
	}
	return result
}
