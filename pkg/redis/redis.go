package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bnu-planner/config"
)

// Client Redis 客户端封装
// 用于记录存储后端（storage.driver=redis）与导出限流
type Client struct {
	rdb    goredis.UniversalClient
	prefix string
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return NewWithClient(rdb, cfg.KeyPrefix, logger), nil
}

// NewWithClient 包装已有连接
func NewWithClient(rdb goredis.UniversalClient, prefix string, logger *zap.Logger) *Client {
	return &Client{rdb: rdb, prefix: prefix, logger: logger}
}

func (c *Client) key(k string) string {
	return c.prefix + k
}

// ── 记录存储 ──

// Get 读取记录；键不存在时 found=false
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

// Put 覆盖写入记录，不设过期时间
func (c *Client) Put(ctx context.Context, key string, value []byte) error {
	return c.rdb.Set(ctx, c.key(key), value, 0).Err()
}

// ── 限流 ──

const rateLimitPrefix = "ratelimit:"

// CheckRateLimit 固定窗口计数；返回 true 表示本次请求仍在配额内
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	k := c.key(rateLimitPrefix + key)
	n, err := c.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, k, window).Err(); err != nil {
			c.logger.Warn("设置限流窗口失败", zap.String("key", k), zap.Error(err))
		}
	}
	return n <= int64(limit), nil
}

// Ping 健康检查
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
