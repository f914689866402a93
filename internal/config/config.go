package config

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 用于管理应用配置

const (
	envPrefix        = "GALLERY"
	devJWTSecret     = "gallery_dev_secret"
	defaultConfigDir = "config"
)

var (
	// 使用 atomic.Value 存储 *Config，实现无锁读取
	appConfig atomic.Value
	configMu  sync.Mutex // 仅用于写操作互斥
	configDir = defaultConfigDir
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port          string   `mapstructure:"port"`
	Mode          string   `mapstructure:"mode"`
	CORSOrigins   []string `mapstructure:"cors_origins"`
	MaxBodySizeMB int      `mapstructure:"max_body_size_mb"`
}

type DatabaseConfig struct {
	Type     string `mapstructure:"type"`     // sqlite, mysql, postgres
	Filename string `mapstructure:"filename"` // for sqlite
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"` // database name
	SSL      bool   `mapstructure:"ssl"`  // enable TLS/SSL
}

type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

type UploadConfig struct {
	Path         string `mapstructure:"path"`
	URLPrefix    string `mapstructure:"url_prefix"`
	MaxSizeMB    int    `mapstructure:"max_size_mb"`
	CacheControl string `mapstructure:"cache_control"` // 静态图片的 Cache-Control
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type RateLimitConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	UploadRPS   float64 `mapstructure:"upload_rps"`
	UploadBurst int     `mapstructure:"upload_burst"`
}

// Get 获取当前配置的快照（高性能无锁）
func Get() Config {
	val := appConfig.Load()
	if val == nil {
		return Config{}
	}
	c, ok := val.(*Config)
	if !ok {
		return Config{}
	}
	return *c
}

func GetConfigDir() string {
	return configDir
}

// Set 直接替换当前配置，供测试与命令行工具使用
func Set(cfg Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig.Store(&cfg)
}

func InitConfig(customConfigDir string) {
	v := initViper(customConfigDir)
	loadAndStore(v)
	enforceJWTSecretSafety()
	log.Println("✅ 配置加载成功")
}

// loadDotEnv 依次加载工作目录与配置目录下的 .env，已存在的环境变量不会被覆盖
func loadDotEnv(dir string) {
	for _, file := range []string{".env", filepath.Join(dir, ".env")} {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("⚠️  加载 %s 失败: %v", file, err)
		}
	}
}

func initViper(customConfigDir string) *viper.Viper {
	v := viper.New()

	customConfigDir = strings.TrimSpace(customConfigDir)
	if customConfigDir == "" {
		customConfigDir = defaultConfigDir
	}
	configDir = customConfigDir

	loadDotEnv(configDir)

	// 设置配置文件路径
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 设置默认值
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.max_body_size_mb", 2)
	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.filename", "database/gallery.db")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "root")
	v.SetDefault("database.name", "gallery")
	v.SetDefault("database.ssl", false)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("upload.path", "uploads/pictures")
	v.SetDefault("upload.url_prefix", "/pictures/")
	v.SetDefault("upload.max_size_mb", 10)
	v.SetDefault("upload.cache_control", "public, max-age=2592000")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "gallery")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.upload_rps", 1.0)
	v.SetDefault("rate_limit.upload_burst", 5)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			log.Println("⚠️  未找到配置文件，将仅使用环境变量或默认值")
		} else {
			log.Fatalf("❌ 读取配置文件失败: %v", err)
		}
	}

	// 规则：所有环境变量必须以 GALLERY_ 开头
	// 例如：yaml 中的 server.port 对应环境变量 GALLERY_SERVER_PORT
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	// server.port 需要匹配 SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return v
}

// loadAndStore 解析并原子更新配置
func loadAndStore(v *viper.Viper) {
	configMu.Lock()
	defer configMu.Unlock()

	var tempConfig Config
	if err := v.Unmarshal(&tempConfig); err != nil {
		log.Printf("❌ 配置解析失败: %v", err)
		return
	}

	if tempConfig.Server.Mode != "release" && tempConfig.JWT.Secret == "" {
		log.Println("⚠️ [开发模式警告] 未设置 JWT Secret，将使用默认不安全密钥进行开发")
		tempConfig.JWT.Secret = devJWTSecret
	}
	if !strings.HasSuffix(tempConfig.Upload.URLPrefix, "/") {
		tempConfig.Upload.URLPrefix += "/"
	}

	appConfig.Store(&tempConfig)
}

// InsecureJWTSecret 判断密钥是否为空或仍为开发默认值
func InsecureJWTSecret(secret string) bool {
	return secret == "" || secret == devJWTSecret
}

func enforceJWTSecretSafety() {
	curr := Get()
	if curr.Server.Mode == "release" && InsecureJWTSecret(curr.JWT.Secret) {
		log.Fatal("❌ [安全严重错误] 生产模式(release)下必须设置安全的 JWT Secret！\n请设置环境变量 GALLERY_JWT_SECRET 或在配置文件中指定 jwt.secret")
	}
}
