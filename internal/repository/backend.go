package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bnu-planner/internal/model"
)

// Backend 键值记录存储，语义对应浏览器本地存储：按键读写整条记录
type Backend interface {
	// Get 读取记录；记录不存在时 found=false 且 err=nil
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Put 覆盖写入记录
	Put(ctx context.Context, key string, value []byte) error
}

// ErrInvalidRecordKey 记录键只允许字母、数字、下划线与短横线
var ErrInvalidRecordKey = errors.New("无效的记录键")

var recordKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ── 文件后端 ──

type fileBackend struct {
	dir string
}

// NewFileBackend 创建文件后端，每条记录保存为 <dir>/<key>.json
func NewFileBackend(dir string) (Backend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}
	return &fileBackend{dir: dir}, nil
}

func (b *fileBackend) path(key string) (string, error) {
	if !recordKeyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRecordKey, key)
	}
	return filepath.Join(b.dir, key+".json"), nil
}

func (b *fileBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	p, err := b.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Put 先写临时文件再重命名，避免写一半时进程退出留下损坏的记录
func (b *fileBackend) Put(_ context.Context, key string, value []byte) error {
	p, err := b.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}

// ── PostgreSQL 后端 ──

type gormBackend struct {
	db *gorm.DB
}

// NewGormBackend 创建基于 planner_records 表的后端
func NewGormBackend(db *gorm.DB) Backend {
	return &gormBackend{db: db}
}

func (b *gormBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rec model.PlannerRecord
	err := b.db.WithContext(ctx).
		Where("key = ?", key).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(rec.Value), true, nil
}

func (b *gormBackend) Put(ctx context.Context, key string, value []byte) error {
	rec := model.PlannerRecord{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}
	return b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
}
