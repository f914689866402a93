package testutils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/DaDaTzz/gallery-backend/internal/model"

	"gorm.io/gorm"
)

// PNG 生成指定尺寸的纯色 PNG
func PNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// MinimalPNG 4x2 的测试图片
func MinimalPNG(t *testing.T) []byte {
	return PNG(t, 4, 2)
}

// CreateUser 写入一个用户
func CreateUser(t *testing.T, gdb *gorm.DB, username string, admin bool) *model.User {
	t.Helper()
	u := &model.User{Username: username, Nickname: username + "_nick", Admin: admin}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// CreatePicture 写入一张图片，未指定时默认归属 owner
func CreatePicture(t *testing.T, gdb *gorm.DB, p *model.Picture) *model.Picture {
	t.Helper()
	if p.URL == "" {
		p.URL = "/pictures/public/1/x.png"
	}
	if err := gdb.Create(p).Error; err != nil {
		t.Fatalf("create picture: %v", err)
	}
	return p
}
