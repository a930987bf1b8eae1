package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"bnu-planner/internal/model"
	pkgerrors "bnu-planner/pkg/errors"
)

// PlannerRepository 课程列表与备注两条记录的读写接口
type PlannerRepository interface {
	// LoadCourses 读取课程列表；记录缺失或损坏时返回空列表
	LoadCourses(ctx context.Context) ([]model.Course, error)
	SaveCourses(ctx context.Context, courses []model.Course) error
	// LoadNotes 读取备注；记录缺失或损坏时返回空表
	LoadNotes(ctx context.Context) (model.Notes, error)
	SaveNotes(ctx context.Context, notes model.Notes) error
}

type plannerRepo struct {
	backend Backend
	logger  *zap.Logger
}

// NewPlannerRepo 创建 PlannerRepository 实例
func NewPlannerRepo(backend Backend, logger *zap.Logger) PlannerRepository {
	return &plannerRepo{backend: backend, logger: logger}
}

func (r *plannerRepo) LoadCourses(ctx context.Context) ([]model.Course, error) {
	var stored []storedCourse
	found, err := r.load(ctx, model.RecordCourses, &stored)
	if err != nil {
		return nil, err
	}
	if !found {
		return []model.Course{}, nil
	}

	courses, changed := migrateCourses(stored)
	if changed {
		if err := r.SaveCourses(ctx, courses); err != nil {
			// 写回失败不影响本次加载，下次启动会再次迁移
			r.logger.Warn("写回升级后的课程记录失败", zap.Error(err))
		} else {
			r.logger.Info("已升级旧版课程记录", zap.Int("count", len(courses)))
		}
	}
	return courses, nil
}

func (r *plannerRepo) SaveCourses(ctx context.Context, courses []model.Course) error {
	if courses == nil {
		courses = []model.Course{}
	}
	return r.save(ctx, model.RecordCourses, courses)
}

func (r *plannerRepo) LoadNotes(ctx context.Context) (model.Notes, error) {
	var notes model.Notes
	found, err := r.load(ctx, model.RecordNotes, &notes)
	if err != nil {
		return nil, err
	}
	if !found || notes == nil {
		return model.Notes{}, nil
	}
	return notes, nil
}

func (r *plannerRepo) SaveNotes(ctx context.Context, notes model.Notes) error {
	if notes == nil {
		notes = model.Notes{}
	}
	return r.save(ctx, model.RecordNotes, notes)
}

// load 读取并解码记录。解码失败属于 StorageDecodeError：记录日志后按"不存在"处理。
func (r *plannerRepo) load(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, found, err := r.backend.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("读取记录 %s 失败: %w", key, err)
	}
	if !found || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		decodeErr := &pkgerrors.StorageDecodeError{Key: key, Err: err}
		r.logger.Warn("存储记录损坏，使用空默认值", zap.String("key", key), zap.Error(decodeErr))
		return false, nil
	}
	return true, nil
}

func (r *plannerRepo) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("编码记录 %s 失败: %w", key, err)
	}
	if err := r.backend.Put(ctx, key, data); err != nil {
		return fmt.Errorf("写入记录 %s 失败: %w", key, err)
	}
	return nil
}

