package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 存储后端
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Semester SemesterConfig `mapstructure:"semester"`
	Export   ExportConfig   `mapstructure:"export"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port      int        `mapstructure:"port"`
	BaseURL   string     `mapstructure:"base_url"`
	BodyLimit int64      `mapstructure:"body_limit"` // 请求体上限（字节）
	CORS      CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// StorageConfig 本地记录存储配置
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // file | postgres | redis
	Dir    string `mapstructure:"dir"`    // file 驱动的数据目录
}

// DatabaseConfig PostgreSQL 数据库配置（storage.driver=postgres 时使用）
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 连接最大生命周期（分钟）
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 配置（存储后端与导出限流共用）
type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// SemesterConfig 学期定义
type SemesterConfig struct {
	File string `mapstructure:"file"` // 为空时使用内置学期
}

// ExportConfig 导出配置
type ExportConfig struct {
	ChromePath      string        `mapstructure:"chrome_path"` // 为空时自动查找
	Timeout         time.Duration `mapstructure:"timeout"`
	ViewportWidth   int           `mapstructure:"viewport_width"`
	ViewportHeight  int           `mapstructure:"viewport_height"`
	Scale           float64       `mapstructure:"scale"`
	SettleDelay     time.Duration `mapstructure:"settle_delay"`
	RateLimit       int           `mapstructure:"rate_limit"` // 每窗口最多导出次数，0 表示不限
	RateLimitWindow time.Duration `mapstructure:"rate_limit_window"`
}

// BackupConfig 定时备份配置
type BackupConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"`
	Dir     string `mapstructure:"dir"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > .env > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	// .env 仅在存在时加载，不覆盖已有环境变量
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("读取 .env 失败: %w", err)
	}

	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://127.0.0.1:8080")
	v.SetDefault("server.body_limit", 6<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("storage.driver", StorageFile)
	v.SetDefault("storage.dir", "./data")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "bnu_planner")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Shanghai")
	v.SetDefault("db.max_open_conns", 5)
	v.SetDefault("db.max_idle_conns", 2)
	v.SetDefault("db.conn_max_lifetime", 60)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "planner:")

	v.SetDefault("semester.file", "")

	v.SetDefault("export.chrome_path", "")
	v.SetDefault("export.timeout", "30s")
	v.SetDefault("export.viewport_width", 1440)
	v.SetDefault("export.viewport_height", 1000)
	v.SetDefault("export.scale", 4)
	v.SetDefault("export.settle_delay", "300ms")
	v.SetDefault("export.rate_limit", 10)
	v.SetDefault("export.rate_limit_window", "1m")

	v.SetDefault("backup.enabled", false)
	v.SetDefault("backup.cron", "0 3 * * *")
	v.SetDefault("backup.dir", "./data/backups")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	switch c.Storage.Driver {
	case StorageFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("配置校验失败: storage.dir 不能为空")
		}
	case StoragePostgres, StorageRedis:
	default:
		return fmt.Errorf("配置校验失败: 未知的 storage.driver %q", c.Storage.Driver)
	}
	if c.Backup.Enabled && (c.Backup.Cron == "" || c.Backup.Dir == "") {
		return fmt.Errorf("配置校验失败: 启用备份时 backup.cron 与 backup.dir 不能为空")
	}
	if c.Export.Scale <= 0 {
		return fmt.Errorf("配置校验失败: export.scale 必须大于 0")
	}
	return nil
}
