package testutils

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"
)

// MultipartBody 构造只包含一个 file 字段及若干普通字段的表单
func MultipartBody(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("WriteField failed: %v", err)
		}
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}
	return &body, writer.FormDataContentType()
}

// FileHeader 将内容包装为上传接口收到的 *multipart.FileHeader
func FileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	body, contentType := MultipartBody(t, filename, content, nil)
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	if err := req.ParseMultipartForm(int64(len(content)) + 1024); err != nil {
		t.Fatalf("ParseMultipartForm failed: %v", err)
	}
	files := req.MultipartForm.File["file"]
	if len(files) != 1 {
		t.Fatalf("expected 1 file header, got %d", len(files))
	}
	return files[0]
}
