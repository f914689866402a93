package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/DaDaTzz/gallery-backend/internal/dto"
	"github.com/DaDaTzz/gallery-backend/internal/model"
	"github.com/DaDaTzz/gallery-backend/internal/repository"
	"github.com/DaDaTzz/gallery-backend/internal/testutils"

	"gorm.io/gorm"
)

// fakeFiles 记录处理与删除调用，不落盘
type fakeFiles struct {
	mu      sync.Mutex
	seq     int
	err     error
	prefix  string
	name    string
	removed []string
}

func (f *fakeFiles) Process(_ context.Context, file *multipart.FileHeader, prefix string) (*dto.UploadPictureResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.seq++
	f.prefix = prefix
	name := f.name
	if name == "" {
		name = "upload"
	}
	return &dto.UploadPictureResult{
		URL:       "/pictures/" + prefix + "/" + string(rune('a'+f.seq)) + ".png",
		Name:      name,
		PicSize:   file.Size,
		PicWidth:  300,
		PicHeight: 200,
		PicScale:  1.5,
		PicFormat: "png",
	}, nil
}

func (f *fakeFiles) Remove(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, url)
	return nil
}

// failingPictureStore 写操作返回错误或未命中
type failingPictureStore struct {
	repository.PictureStore
	writeErr  error
	noRowsHit bool
}

func (s *failingPictureStore) Create(ctx context.Context, p *model.Picture) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	return s.PictureStore.Create(ctx, p)
}

func (s *failingPictureStore) UpdateByID(ctx context.Context, id uint, updates map[string]interface{}) (bool, error) {
	if s.writeErr != nil {
		return false, s.writeErr
	}
	if s.noRowsHit {
		return false, nil
	}
	return s.PictureStore.UpdateByID(ctx, id, updates)
}

// countingUserStore 统计批量查询次数
type countingUserStore struct {
	repository.UserStore
	findByIDsCalls int
	findByIDCalls  int
	lastIDs        []uint
}

func (s *countingUserStore) FindByIDs(ctx context.Context, ids []uint) ([]model.User, error) {
	s.findByIDsCalls++
	s.lastIDs = append([]uint(nil), ids...)
	return s.UserStore.FindByIDs(ctx, ids)
}

func (s *countingUserStore) FindByID(ctx context.Context, id uint) (*model.User, error) {
	s.findByIDCalls++
	return s.UserStore.FindByID(ctx, id)
}

type testEnv struct {
	db       *gorm.DB
	pictures repository.PictureStore
	users    repository.UserStore
	files    *fakeFiles
	svc      *PictureService
	policy   *ReviewPolicy
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutils.SetupDB(t)
	pictures := repository.NewPictureRepository(gdb)
	users := repository.NewUserRepository(gdb)
	return buildEnv(gdb, pictures, users)
}

func buildEnv(gdb *gorm.DB, pictures repository.PictureStore, users repository.UserStore) *testEnv {
	files := &fakeFiles{}
	userService := NewUserService(users)
	policy := NewReviewPolicy(pictures)
	views := NewPictureViewAssembler(userService)
	return &testEnv{
		db:       gdb,
		pictures: pictures,
		users:    users,
		files:    files,
		policy:   policy,
		svc:      NewPictureService(pictures, userService, files, policy, views),
	}
}

func fixedNow(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	prev := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = prev })
	return now
}

func strPtr(s string) *string { return &s }

func statusPtr(s model.ReviewStatus) *model.ReviewStatus { return &s }

var errBoom = errors.New("boom")

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
