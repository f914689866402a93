package utils

import (
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

var allowedImageTypes = map[string]map[string]bool{
	"image/jpeg": {".jpg": true, ".jpeg": true},
	"image/png":  {".png": true},
	"image/gif":  {".gif": true},
	"image/webp": {".webp": true},
}

// IsAllowedImageExt 判断扩展名是否为支持的图片格式
func IsAllowedImageExt(ext string) bool {
	ext = strings.ToLower(ext)
	for _, exts := range allowedImageTypes {
		if exts[ext] {
			return true
		}
	}
	return false
}

// ValidateImageContent checks if the file content matches the extension.
func ValidateImageContent(reader io.ReadSeeker, ext string) (bool, string) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return false, "读取文件内容失败"
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return false, "重置文件读取位置失败"
	}

	contentType := http.DetectContentType(buffer[:n])
	if exts, ok := allowedImageTypes[contentType]; ok && exts[strings.ToLower(ext)] {
		return true, ""
	}

	return false, "文件真实类型(" + contentType + ")与扩展名(" + ext + ")不匹配或不支持"
}

// ExceedsRunes 按字符数而非字节数判断长度
func ExceedsRunes(s string, limit int) bool {
	return utf8.RuneCountInString(s) > limit
}
