package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"bnu-planner/internal/model"
)

// BackupFile 备份文件内容
type BackupFile struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Semester    string         `json:"semester"`
	Courses     []model.Course `json:"courses"`
	Notes       model.Notes    `json:"notes"`
}

// BackupService 将当前课程与备注写成 JSON 备份
type BackupService interface {
	// Snapshot 写入一份备份，返回文件路径
	Snapshot(ctx context.Context) (string, error)
}

type backupService struct {
	store    *PlannerStore
	dir      string
	semester string
	now      Clock
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewBackupService 创建 BackupService 实例
func NewBackupService(store *PlannerStore, dir, semesterName string, metrics *MetricsService, logger *zap.Logger) BackupService {
	return &backupService{
		store:    store,
		dir:      dir,
		semester: semesterName,
		now:      time.Now,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *backupService) Snapshot(_ context.Context) (path string, err error) {
	defer func() { s.metrics.ObserveBackup(err) }()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("创建备份目录失败: %w", err)
	}

	snap := s.store.Snapshot()
	now := s.now()
	data, err := json.MarshalIndent(BackupFile{
		GeneratedAt: now,
		Semester:    s.semester,
		Courses:     snap.Courses,
		Notes:       snap.Notes,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("编码备份失败: %w", err)
	}

	path = filepath.Join(s.dir, fmt.Sprintf("planner-backup-%s.json", now.Format("20060102-150405")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("写入备份失败: %w", err)
	}

	s.logger.Info("已写入备份",
		zap.String("path", path),
		zap.Int("courses", len(snap.Courses)),
		zap.Int("notes", len(snap.Notes)),
	)
	return path, nil
}

// ── 定时备份 ──

// BackupScheduler 按 cron 表达式定时执行备份
type BackupScheduler struct {
	cron   *cron.Cron
	spec   string
	logger *zap.Logger
}

// NewBackupScheduler 注册备份任务；spec 为标准 5 段 cron 表达式
func NewBackupScheduler(spec string, backup BackupService, logger *zap.Logger) (*BackupScheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := backup.Snapshot(ctx); err != nil {
			logger.Error("定时备份失败", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("无效的备份 cron 表达式 %q: %w", spec, err)
	}
	return &BackupScheduler{cron: c, spec: spec, logger: logger}, nil
}

// Start 启动调度
func (s *BackupScheduler) Start() {
	s.cron.Start()
	s.logger.Info("定时备份已启动", zap.String("cron", s.spec))
}

// Stop 停止调度，等待正在执行的备份结束
func (s *BackupScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("等待备份任务结束超时")
	}
}
