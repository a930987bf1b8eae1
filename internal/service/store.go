package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"bnu-planner/internal/model"
	"bnu-planner/internal/repository"
)

// PlannerStore 课程列表与备注的内存状态，启动时加载一次，之后每次修改立即写回存储。
// 写操作在写锁内完成"修改 → 持久化"，持久化失败时回滚内存状态。
type PlannerStore struct {
	mu      sync.RWMutex
	repo    repository.PlannerRepository
	logger  *zap.Logger
	courses []model.Course
	notes   model.Notes
}

// Snapshot 某一时刻的完整状态副本
type Snapshot struct {
	Courses []model.Course `json:"courses"`
	Notes   model.Notes    `json:"notes"`
}

// NewPlannerStore 从存储加载状态
func NewPlannerStore(ctx context.Context, repo repository.PlannerRepository, logger *zap.Logger) (*PlannerStore, error) {
	courses, err := repo.LoadCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("加载课程失败: %w", err)
	}
	notes, err := repo.LoadNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("加载备注失败: %w", err)
	}
	logger.Info("已加载本地记录",
		zap.Int("courses", len(courses)),
		zap.Int("notes", len(notes)),
	)
	return &PlannerStore{
		repo:    repo,
		logger:  logger,
		courses: courses,
		notes:   notes,
	}, nil
}

// Courses 课程列表副本，按添加顺序
func (s *PlannerStore) Courses() []model.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCourses(s.courses)
}

// Note 读取备注，不存在时返回空串
func (s *PlannerStore) Note(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes[key]
}

// Snapshot 状态副本
func (s *PlannerStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notes := make(model.Notes, len(s.notes))
	for k, v := range s.notes {
		notes[k] = v
	}
	return Snapshot{Courses: cloneCourses(s.courses), Notes: notes}
}

// AppendCourse 追加课程并持久化
func (s *PlannerStore) AppendCourse(ctx context.Context, c model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(cloneCourses(s.courses), c)
	if err := s.repo.SaveCourses(ctx, next); err != nil {
		return err
	}
	s.courses = next
	return nil
}

// RemoveCourse 按 ID 删除课程；ID 不存在时不写存储，返回 removed=false
func (s *PlannerStore) RemoveCourse(ctx context.Context, id string) (removed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Course, 0, len(s.courses))
	for _, c := range s.courses {
		if c.ID == id {
			removed = true
			continue
		}
		next = append(next, c)
	}
	if !removed {
		return false, nil
	}
	if err := s.repo.SaveCourses(ctx, next); err != nil {
		return false, err
	}
	s.courses = next
	return true, nil
}

// SetNote 写入备注；content 为空时删除该键
func (s *PlannerStore) SetNote(ctx context.Context, key, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.notes[key]
	if content == "" {
		if !existed {
			return nil
		}
		delete(s.notes, key)
	} else {
		if existed && prev == content {
			return nil
		}
		s.notes[key] = content
	}

	if err := s.repo.SaveNotes(ctx, s.notes); err != nil {
		// 回滚
		if existed {
			s.notes[key] = prev
		} else {
			delete(s.notes, key)
		}
		return err
	}
	return nil
}

func cloneCourses(in []model.Course) []model.Course {
	out := make([]model.Course, len(in))
	for i, c := range in {
		weekdays := make([]int, len(c.Weekdays))
		copy(weekdays, c.Weekdays)
		c.Weekdays = weekdays
		out[i] = c
	}
	return out
}
