package storage

import (
	"context"
	"mime/multipart"

	"github.com/DaDaTzz/gallery-backend/internal/dto"
)

// FileProcessor 负责上传文件的校验、落盘与元信息提取
type FileProcessor interface {
	Process(ctx context.Context, file *multipart.FileHeader, prefix string) (*dto.UploadPictureResult, error)
	Remove(url string) error
}
