package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"bnu-planner/internal/model"
	"bnu-planner/internal/semester"
)

// ── Mock PlannerRepository ──

type mockPlannerRepo struct {
	courses     []model.Course
	notes       model.Notes
	saveErr     error
	courseSaves int
	noteSaves   int
}

func newMockPlannerRepo() *mockPlannerRepo {
	return &mockPlannerRepo{courses: []model.Course{}, notes: model.Notes{}}
}

func (m *mockPlannerRepo) LoadCourses(_ context.Context) ([]model.Course, error) {
	return cloneCourses(m.courses), nil
}

func (m *mockPlannerRepo) SaveCourses(_ context.Context, courses []model.Course) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.courseSaves++
	m.courses = cloneCourses(courses)
	return nil
}

func (m *mockPlannerRepo) LoadNotes(_ context.Context) (model.Notes, error) {
	out := make(model.Notes, len(m.notes))
	for k, v := range m.notes {
		out[k] = v
	}
	return out, nil
}

func (m *mockPlannerRepo) SaveNotes(_ context.Context, notes model.Notes) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.noteSaves++
	m.notes = make(model.Notes, len(notes))
	for k, v := range notes {
		m.notes[k] = v
	}
	return nil
}

// ── 测试辅助 ──

func loadTestTerm(t *testing.T) *semester.Term {
	t.Helper()
	term, err := semester.Load("")
	if err != nil {
		t.Fatalf("加载内置学期失败: %v", err)
	}
	return term
}

func newTestStore(t *testing.T, repo *mockPlannerRepo) *PlannerStore {
	t.Helper()
	store, err := NewPlannerStore(context.Background(), repo, zap.NewNop())
	if err != nil {
		t.Fatalf("NewPlannerStore 失败: %v", err)
	}
	return store
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
