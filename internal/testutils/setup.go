package testutils

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/DaDaTzz/gallery-backend/internal/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testDBSeq int64

// SetupDB 为每个测试创建独立的内存 SQLite 库并完成迁移，同时替换全局 db.DB。
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	seq := atomic.AddInt64(&testDBSeq, 1)
	dsn := fmt.Sprintf("file:gallery_%d?mode=memory&cache=shared", seq)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	prevDB := db.DB
	t.Cleanup(func() {
		if db.DB == gdb {
			db.DB = prevDB
		}
		_ = sqlDB.Close()
	})

	if err := gdb.AutoMigrate(db.Models()...); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	db.DB = gdb
	return gdb
}
