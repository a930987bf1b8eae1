package service

import (
	"context"
	"errors"
	"testing"

	"bnu-planner/internal/model"
)

func TestPlannerStore_LoadsOnce(t *testing.T) {
	repo := newMockPlannerRepo()
	repo.courses = []model.Course{{ID: "1", Name: "A", Weekdays: []int{1}, StartWeek: 1, EndWeek: 2, Color: "#3b82f6"}}
	repo.notes = model.Notes{"2026-03-02": "开学"}

	store := newTestStore(t, repo)

	// 加载后修改底层存储不影响内存状态
	repo.courses = nil
	if got := store.Courses(); len(got) != 1 || got[0].ID != "1" {
		t.Errorf("期望加载 1 门课，实际 %+v", got)
	}
	if store.Note("2026-03-02") != "开学" {
		t.Error("备注应已加载")
	}
}

func TestPlannerStore_ReturnsCopies(t *testing.T) {
	repo := newMockPlannerRepo()
	repo.courses = []model.Course{{ID: "1", Name: "A", Weekdays: []int{1}, StartWeek: 1, EndWeek: 2}}
	store := newTestStore(t, repo)

	got := store.Courses()
	got[0].Name = "changed"
	got[0].Weekdays[0] = 7

	snap := store.Snapshot()
	snap.Notes["2026-03-03"] = "x"

	again := store.Courses()
	if again[0].Name != "A" || again[0].Weekdays[0] != 1 {
		t.Error("Courses 应返回深拷贝")
	}
	if store.Note("2026-03-03") != "" {
		t.Error("Snapshot 应返回副本")
	}
}

func TestPlannerStore_SetNoteRollback(t *testing.T) {
	repo := newMockPlannerRepo()
	repo.notes = model.Notes{"2026-03-02": "原内容"}
	store := newTestStore(t, repo)
	repo.saveErr = errors.New("read-only")
	ctx := context.Background()

	if err := store.SetNote(ctx, "2026-03-02", "新内容"); err == nil {
		t.Fatal("期望返回存储错误")
	}
	if store.Note("2026-03-02") != "原内容" {
		t.Error("覆盖失败后应恢复原内容")
	}

	if err := store.SetNote(ctx, "2026-03-02", ""); err == nil {
		t.Fatal("期望返回存储错误")
	}
	if store.Note("2026-03-02") != "原内容" {
		t.Error("删除失败后应恢复原内容")
	}

	if err := store.SetNote(ctx, "2026-03-09", "新增"); err == nil {
		t.Fatal("期望返回存储错误")
	}
	if store.Note("2026-03-09") != "" {
		t.Error("新增失败后不应留下记录")
	}
}

func TestPlannerStore_SetNoteSkipsNoop(t *testing.T) {
	repo := newMockPlannerRepo()
	store := newTestStore(t, repo)
	ctx := context.Background()

	_ = store.SetNote(ctx, "2026-03-02", "")
	_ = store.SetNote(ctx, "2026-03-02", "a")
	_ = store.SetNote(ctx, "2026-03-02", "a")
	if repo.noteSaves != 1 {
		t.Errorf("无变化时不应写存储，期望 1 次写入，实际 %d", repo.noteSaves)
	}
}
