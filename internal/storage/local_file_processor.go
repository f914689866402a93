package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"math"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/DaDaTzz/gallery-backend/internal/common"
	"github.com/DaDaTzz/gallery-backend/internal/config"
	"github.com/DaDaTzz/gallery-backend/internal/dto"
	"github.com/DaDaTzz/gallery-backend/internal/utils"

	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

type LocalFileProcessor struct {
	root      string
	urlPrefix string
	maxBytes  int64
}

func NewLocalFileProcessor(cfg config.UploadConfig) *LocalFileProcessor {
	root := cfg.Path
	if root == "" {
		root = "uploads/pictures"
	}
	prefix := cfg.URLPrefix
	if prefix == "" {
		prefix = "/pictures/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	maxMB := cfg.MaxSizeMB
	if maxMB <= 0 {
		maxMB = 10
	}
	return &LocalFileProcessor{root: root, urlPrefix: prefix, maxBytes: int64(maxMB) * 1024 * 1024}
}

// ProvideFileProcessor 读取当前上传配置构造处理器
func ProvideFileProcessor() FileProcessor {
	return NewLocalFileProcessor(config.Get().Upload)
}

func (p *LocalFileProcessor) Process(ctx context.Context, file *multipart.FileHeader, prefix string) (*dto.UploadPictureResult, error) {
	if file == nil {
		return nil, common.NewValidationError("请选择文件")
	}
	if file.Size <= 0 {
		return nil, common.NewValidationError("文件为空")
	}
	if file.Size > p.maxBytes {
		return nil, common.NewValidationError(fmt.Sprintf("文件大小不能超过 %dMB", p.maxBytes/1024/1024))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !utils.IsAllowedImageExt(ext) {
		return nil, common.NewValidationError("不支持的文件格式: " + ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, common.NewInternalError("无法读取上传文件")
	}
	defer func() { _ = src.Close() }()

	if ok, msg := utils.ValidateImageContent(src, ext); !ok {
		return nil, common.NewValidationError(msg)
	}

	imgCfg, _, err := image.DecodeConfig(src)
	if err != nil || imgCfg.Width <= 0 || imgCfg.Height <= 0 {
		return nil, common.NewValidationError("无法解析图片尺寸")
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, common.NewInternalError("重置文件读取位置失败")
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rootAbs, err := filepath.Abs(p.root)
	if err != nil {
		return nil, common.NewInternalError("系统错误: 上传目录解析失败")
	}
	dir, err := utils.SecureJoin(rootAbs, prefix)
	if err != nil {
		log.Printf("SecureJoin dir error: %v", err)
		return nil, common.NewInternalError("系统错误: 非法存储目录")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("MkdirAll error: %v", err)
		return nil, common.NewInternalError("系统错误: 无法创建存储目录")
	}
	// 目录创建后再次检查链路
	if err := utils.EnsureNoSymlinkBetween(rootAbs, dir); err != nil {
		log.Printf("Upload dir security check failed: %v", err)
		return nil, common.NewInternalError("系统错误: 存储目录存在符号链接风险")
	}

	filename := uuid.New().String() + ext
	dst, err := utils.SecureJoin(dir, filename)
	if err != nil {
		return nil, common.NewInternalError("系统错误: 非法文件路径")
	}

	out, err := os.Create(dst)
	if err != nil {
		return nil, common.NewInternalError("系统错误: 无法创建文件")
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return nil, common.NewInternalError("文件保存失败")
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return nil, common.NewInternalError("文件保存失败")
	}

	return &dto.UploadPictureResult{
		URL:       p.urlPrefix + path.Join(filepath.ToSlash(prefix), filename),
		Name:      strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename)),
		PicSize:   file.Size,
		PicWidth:  imgCfg.Width,
		PicHeight: imgCfg.Height,
		PicScale:  roundScale(imgCfg.Width, imgCfg.Height),
		PicFormat: strings.TrimPrefix(ext, "."),
	}, nil
}

// Remove 删除由 Process 写入的文件，文件已不存在时不报错
func (p *LocalFileProcessor) Remove(url string) error {
	rel, ok := strings.CutPrefix(url, p.urlPrefix)
	if !ok || rel == "" {
		return fmt.Errorf("url %q 不属于本地存储", url)
	}
	target, err := utils.SecureJoin(p.root, rel)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func roundScale(width, height int) float64 {
	if height == 0 {
		return 0
	}
	return math.Round(float64(width)/float64(height)*100) / 100
}
