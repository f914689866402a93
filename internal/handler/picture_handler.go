package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/DaDaTzz/gallery-backend/internal/common"
	"github.com/DaDaTzz/gallery-backend/internal/common/httpx"
	"github.com/DaDaTzz/gallery-backend/internal/dto"

	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, err error, fallback string) {
	if _, ok := common.AsServiceError(err); !ok {
		log.Printf("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	}
	httpx.WriteServiceError(c, err, fallback)
}

// UploadPicture 上传图片；表单带 id 时替换已有图片
func (h *Handler) UploadPicture(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "validation", "error": "请选择文件"})
		return
	}

	var req dto.PictureUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "validation", "error": "id 参数错误"})
		return
	}

	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	view, err := h.pictureService.Upload(c.Request.Context(), file, req, actor)
	if err != nil {
		writeError(c, err, "上传失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) DeletePicture(c *gin.Context) {
	var req dto.DeleteRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	if err := h.pictureService.Delete(c.Request.Context(), req.ID, actor); err != nil {
		writeError(c, err, "删除失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// UpdatePicture 管理员更新图片信息
func (h *Handler) UpdatePicture(c *gin.Context) {
	var req dto.PictureEditRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	if err := h.pictureService.AdminUpdate(c.Request.Context(), req, actor); err != nil {
		writeError(c, err, "更新失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "更新成功"})
}

func (h *Handler) EditPicture(c *gin.Context) {
	var req dto.PictureEditRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	if err := h.pictureService.Edit(c.Request.Context(), req, actor); err != nil {
		writeError(c, err, "编辑失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "编辑成功"})
}

func (h *Handler) GetPictureView(c *gin.Context) {
	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": "validation", "error": "id 参数错误"})
		return
	}
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	view, err := h.pictureService.GetView(c.Request.Context(), uint(id), actor)
	if err != nil {
		writeError(c, err, "获取图片失败")
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListPicturePage 管理员分页查询原始记录
func (h *Handler) ListPicturePage(c *gin.Context) {
	var req dto.PictureQueryRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	page, err := h.pictureService.ListAdminPage(c.Request.Context(), req, actor)
	if err != nil {
		writeError(c, err, "获取图片列表失败")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) ListPictureViewPage(c *gin.Context) {
	var req dto.PictureQueryRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	page, err := h.pictureService.ListPublicPage(c.Request.Context(), req, actor)
	if err != nil {
		writeError(c, err, "获取图片列表失败")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) ListMyPictureViewPage(c *gin.Context) {
	var req dto.PictureQueryRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	page, err := h.pictureService.ListMyPage(c.Request.Context(), req, actor)
	if err != nil {
		writeError(c, err, "获取图片列表失败")
		return
	}
	c.JSON(http.StatusOK, page)
}

// ReviewPicture 管理员审核图片
func (h *Handler) ReviewPicture(c *gin.Context) {
	var req dto.PictureReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := h.currentActor(c)
	if !ok {
		return
	}

	if err := h.pictureService.Review(c.Request.Context(), req, actor); err != nil {
		writeError(c, err, "审核失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "审核成功"})
}

func (h *Handler) ListTagCategory(c *gin.Context) {
	c.JSON(http.StatusOK, h.pictureService.TagCategories())
}
