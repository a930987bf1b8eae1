package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bnu-planner/internal/model"
)

func setupTestDayService(t *testing.T, now time.Time) (DayService, *mockPlannerRepo) {
	t.Helper()
	repo := newMockPlannerRepo()
	repo.courses = []model.Course{
		{ID: "1", Name: "量子力学", Weekdays: []int{1, 3}, StartWeek: 1, EndWeek: 16, Color: "#3b82f6"},
		{ID: "2", Name: "体育", Weekdays: []int{6}, StartWeek: 1, EndWeek: 18, Color: "#10b981"},
	}
	repo.notes = model.Notes{"2026-04-06": "补课"}
	return NewDayService(loadTestTerm(t), newTestStore(t, repo), fixedClock(now)), repo
}

// ── ResolveDay ──

func TestDayService_ResolveDay_FirstDay(t *testing.T) {
	svc, _ := setupTestDayService(t, time.Date(2026, time.March, 2, 15, 30, 0, 0, time.Local))

	b := svc.ResolveDay(context.Background(), date(2026, time.March, 2))
	if b.DateKey != "2026-03-02" {
		t.Errorf("期望 2026-03-02，实际 %s", b.DateKey)
	}
	if b.WeekNum == nil || *b.WeekNum != 1 {
		t.Errorf("期望第 1 周，实际 %v", b.WeekNum)
	}
	if !b.IsToday {
		t.Error("与当前日期相同应标记为今天")
	}
	if b.IsWeekend {
		t.Error("周一不是周末")
	}
	if b.Weekday != 1 {
		t.Errorf("期望 ISO 星期 1，实际 %d", b.Weekday)
	}
	if len(b.Courses) != 1 || b.Courses[0].Name != "量子力学" {
		t.Errorf("期望 量子力学，实际 %+v", b.Courses)
	}
}

func TestDayService_ResolveDay_HolidayWithCourseAndNote(t *testing.T) {
	svc, _ := setupTestDayService(t, date(2026, time.March, 2))

	b := svc.ResolveDay(context.Background(), date(2026, time.April, 6))
	if b.WeekNum == nil || *b.WeekNum != 6 {
		t.Errorf("期望第 6 周，实际 %v", b.WeekNum)
	}
	if len(b.Events) != 1 || b.Events[0].Title != "清明节放假" {
		t.Errorf("期望 清明节放假，实际 %+v", b.Events)
	}
	if len(b.Courses) != 1 {
		t.Errorf("假期不影响课程解析，期望 1 门课，实际 %d", len(b.Courses))
	}
	if b.Note != "补课" {
		t.Errorf("期望备注 补课，实际 %q", b.Note)
	}
	if b.IsToday {
		t.Error("不应标记为今天")
	}
}

func TestDayService_ResolveDay_BeforeSemester(t *testing.T) {
	svc, _ := setupTestDayService(t, date(2026, time.March, 2))

	b := svc.ResolveDay(context.Background(), date(2026, time.February, 28))
	if b.WeekNum != nil {
		t.Errorf("学期开始前周次应为空，实际 %d", *b.WeekNum)
	}
	if len(b.Courses) != 0 {
		t.Errorf("学期开始前不应有课程，实际 %d", len(b.Courses))
	}
	if !b.IsWeekend {
		t.Error("2026-02-28 是周六")
	}
}

// ── ResolveMonth ──

func TestDayService_ResolveMonth_March(t *testing.T) {
	svc, _ := setupTestDayService(t, date(2026, time.March, 2))

	view, err := svc.ResolveMonth(context.Background(), 2026, time.March)
	if err != nil {
		t.Fatalf("ResolveMonth 失败: %v", err)
	}
	if view.Title != "2026年3月" {
		t.Errorf("期望标题 2026年3月，实际 %s", view.Title)
	}
	if len(view.Rows) != 6 {
		t.Fatalf("2026年3月应有 6 行，实际 %d", len(view.Rows))
	}

	first := view.Rows[0]
	if first.Week != nil {
		t.Errorf("首行（仅 3月1日）周次应为空，实际 %d", *first.Week)
	}
	for i := 0; i < 6; i++ {
		if first.Days[i] != nil {
			t.Errorf("首行第 %d 格应为空格", i)
		}
	}
	if first.Days[6] == nil || first.Days[6].DateKey != "2026-03-01" {
		t.Error("首行最后一格应为 3月1日")
	}
	if len(first.Days[6].Events) != 1 {
		t.Error("3月1日应有注册日事项")
	}

	second := view.Rows[1]
	if second.Week == nil || *second.Week != 1 {
		t.Errorf("第二行应为第 1 周，实际 %v", second.Week)
	}
	if !second.Days[0].IsToday {
		t.Error("3月2日应标记为今天")
	}

	last := view.Rows[5]
	if last.Week == nil || *last.Week != 5 {
		t.Errorf("末行应为第 5 周，实际 %v", last.Week)
	}
	if last.Days[1].DateKey != "2026-03-31" || last.Days[2] != nil {
		t.Error("末行应以 3月31日（周二）结束")
	}
}

func TestDayService_ResolveMonth_OutOfRange(t *testing.T) {
	svc, _ := setupTestDayService(t, date(2026, time.March, 2))

	for _, m := range []time.Month{time.February, time.July, 0, 13} {
		if _, err := svc.ResolveMonth(context.Background(), 2026, m); !errors.Is(err, ErrMonthOutOfRange) {
			t.Errorf("月份 %d 期望 ErrMonthOutOfRange，实际 %v", m, err)
		}
	}
}

// ── ResolveWeek ──

func TestDayService_ResolveWeek(t *testing.T) {
	svc, _ := setupTestDayService(t, date(2026, time.March, 2))

	view, err := svc.ResolveWeek(context.Background(), 6)
	if err != nil {
		t.Fatalf("ResolveWeek 失败: %v", err)
	}
	if len(view.Days) != 7 {
		t.Fatalf("一周应有 7 天，实际 %d", len(view.Days))
	}
	if view.Days[0].DateKey != "2026-04-06" || view.Days[6].DateKey != "2026-04-12" {
		t.Errorf("第 6 周应为 04-06 至 04-12，实际 %s 至 %s", view.Days[0].DateKey, view.Days[6].DateKey)
	}
	for i, d := range view.Days {
		if d.Weekday != i+1 {
			t.Errorf("下标 %d 应为 ISO 星期 %d，实际 %d", i, i+1, d.Weekday)
		}
		if d.WeekNum == nil || *d.WeekNum != 6 {
			t.Errorf("%s 应属于第 6 周", d.DateKey)
		}
	}
	if len(view.Days[5].Courses) != 1 || view.Days[5].Courses[0].Name != "体育" {
		t.Errorf("周六应有体育课，实际 %+v", view.Days[5].Courses)
	}
}

func TestDayService_ResolveWeek_OutOfRange(t *testing.T) {
	svc, _ := setupTestDayService(t, date(2026, time.March, 2))
	for _, w := range []int{0, -1, 19} {
		if _, err := svc.ResolveWeek(context.Background(), w); !errors.Is(err, ErrWeekOutOfRange) {
			t.Errorf("周次 %d 期望 ErrWeekOutOfRange，实际 %v", w, err)
		}
	}
}

// ── Semester ──

func TestDayService_Semester(t *testing.T) {
	svc, _ := setupTestDayService(t, date(2026, time.March, 2))
	info := svc.Semester()
	if info.Anchor != "2026-03-02" || info.LastDay != "2026-07-05" || info.MaxWeeks != 18 {
		t.Errorf("学期信息不正确: %+v", info)
	}
	if len(info.Months) != 4 || info.Months[0].Label != "2026年3月" {
		t.Errorf("可浏览月份不正确: %+v", info.Months)
	}
}
