package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/DaDaTzz/gallery-backend/internal/config"
	"github.com/DaDaTzz/gallery-backend/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Models 返回需要自动迁移的全部模型
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Picture{},
	}
}

// Dialector 根据数据库配置构造 gorm 方言
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Type {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.Name,
		)
		if cfg.SSL {
			dsn += "&tls=true"
		}
		return mysql.Open(dsn), nil
	case "postgres":
		sslMode := "disable"
		if cfg.SSL {
			sslMode = "require"
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Shanghai",
			cfg.Host,
			cfg.User,
			cfg.Password,
			cfg.Name,
			cfg.Port,
			sslMode,
		)
		return postgres.Open(dsn), nil
	case "sqlite", "":
		// 自动创建数据库目录
		dbDir := filepath.Dir(cfg.Filename)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("无法创建数据库目录 '%s': %w", dbDir, err)
		}
		// 启用 WAL 模式和繁忙等待，提升 SQLite 并发性能
		dsn := cfg.Filename + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库类型: %s", cfg.Type)
	}
}

func InitDB() {
	var err error
	cfg := config.Get()

	dialector, err := Dialector(cfg.Database)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	DB, err = gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatal("❌ 数据库连接失败: ", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("❌ 无法获取 sql.DB: ", err)
	}

	if cfg.Database.Type == "sqlite" || cfg.Database.Type == "" {
		// SQLite 建议单连接写
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetMaxIdleConns(10)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := DB.AutoMigrate(Models()...); err != nil {
		log.Fatal("❌ 数据库迁移失败: ", err)
	}

	log.Printf("✅ 数据库(%s)连接成功，表结构已同步", cfg.Database.Type)
}

// CloseDB 关闭底层连接
func CloseDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
