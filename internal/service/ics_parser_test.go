package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"bnu-planner/internal/model"
)

func icsCalendar(events ...string) string {
	lines := []string{"BEGIN:VCALENDAR", "VERSION:2.0", "PRODID:-//test//CN"}
	for _, e := range events {
		lines = append(lines, "BEGIN:VEVENT")
		lines = append(lines, strings.Split(strings.TrimSpace(e), "\n")...)
		lines = append(lines, "END:VEVENT")
	}
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

const (
	icsMondayCourse = `UID:1
SUMMARY:量子力学
LOCATION:教二 101
DTSTART:20260302T080000
DTEND:20260302T093500
RRULE:FREQ=WEEKLY;COUNT=16`

	icsWednesdayCourse = `UID:2
SUMMARY:量子力学
DTSTART:20260304T100000
DTEND:20260304T113500
RRULE:FREQ=WEEKLY;UNTIL=20260415T235959Z
EXDATE:20260311T100000`

	icsSingleLecture = `UID:3
SUMMARY:讲座
DTSTART:20260410T140000
DTEND:20260410T160000`

	icsBeforeSemester = `UID:4
SUMMARY:寒假补课
DTSTART:20260115T080000
DTEND:20260115T100000`
)

// ── ParseICS ──

func TestParseICS_MergesByName(t *testing.T) {
	data := icsCalendar(icsMondayCourse, icsWednesdayCourse, icsSingleLecture, icsBeforeSemester)

	drafts, err := ParseICS(strings.NewReader(data), testCal)
	if err != nil {
		t.Fatalf("ParseICS 失败: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("期望 2 门课程（学期外事件被忽略），实际 %d: %+v", len(drafts), drafts)
	}

	qm := drafts[0]
	if qm.Name != "量子力学" {
		t.Errorf("首门课程应为 量子力学，实际 %s", qm.Name)
	}
	if len(qm.Weekdays) != 2 || qm.Weekdays[0] != 1 || qm.Weekdays[1] != 3 {
		t.Errorf("上课日应合并为 [1 3]，实际 %v", qm.Weekdays)
	}
	if qm.StartWeek != 1 || qm.EndWeek != 16 {
		t.Errorf("周次应为 1-16，实际 %d-%d", qm.StartWeek, qm.EndWeek)
	}
	if qm.Location != "教二 101" {
		t.Errorf("地点应取自 LOCATION，实际 %q", qm.Location)
	}
	if qm.Color != model.CoursePalette[0].Hex {
		t.Errorf("首门课程颜色应为调色板第一色，实际 %s", qm.Color)
	}

	lecture := drafts[1]
	if len(lecture.Weekdays) != 1 || lecture.Weekdays[0] != 5 {
		t.Errorf("讲座应在周五，实际 %v", lecture.Weekdays)
	}
	if lecture.StartWeek != 6 || lecture.EndWeek != 6 {
		t.Errorf("讲座应在第 6 周，实际 %d-%d", lecture.StartWeek, lecture.EndWeek)
	}
	if lecture.Color != model.CoursePalette[1].Hex {
		t.Errorf("第二门课程颜色应为调色板第二色，实际 %s", lecture.Color)
	}
}

func TestParseICS_ClipsToSemester(t *testing.T) {
	// 无 UNTIL/COUNT 的规则只展开到学期最后一天
	data := icsCalendar(`UID:9
SUMMARY:长期课程
DTSTART:20260303T080000
RRULE:FREQ=WEEKLY`)

	drafts, err := ParseICS(strings.NewReader(data), testCal)
	if err != nil {
		t.Fatalf("ParseICS 失败: %v", err)
	}
	if len(drafts) != 1 || drafts[0].StartWeek != 1 || drafts[0].EndWeek != 18 {
		t.Errorf("期望 1-18 周，实际 %+v", drafts)
	}
}

// ── ImportICS ──

func TestImportService_ImportICS(t *testing.T) {
	repo := newMockPlannerRepo()
	store := newTestStore(t, repo)
	courses := NewCourseService(store, testCal, nil, zap.NewNop())
	svc := NewImportService(courses, testCal, zap.NewNop())

	data := icsCalendar(icsMondayCourse, icsWednesdayCourse, icsSingleLecture)
	result, err := svc.ImportICS(context.Background(), strings.NewReader(data))
	if err != nil {
		t.Fatalf("ImportICS 失败: %v", err)
	}
	if len(result.Imported) != 2 || len(result.Skipped) != 0 {
		t.Errorf("期望导入 2 门、跳过 0 门，实际 %d / %d", len(result.Imported), len(result.Skipped))
	}
	if len(repo.courses) != 2 {
		t.Errorf("导入的课程应已持久化，实际 %d", len(repo.courses))
	}
}

func TestImportService_ImportICS_Empty(t *testing.T) {
	store := newTestStore(t, newMockPlannerRepo())
	svc := NewImportService(NewCourseService(store, testCal, nil, zap.NewNop()), testCal, zap.NewNop())

	_, err := svc.ImportICS(context.Background(), strings.NewReader(icsCalendar(icsBeforeSemester)))
	if !errors.Is(err, ErrICSEmpty) {
		t.Errorf("期望 ErrICSEmpty，实际 %v", err)
	}
}

func TestImportService_ImportICS_Garbage(t *testing.T) {
	store := newTestStore(t, newMockPlannerRepo())
	svc := NewImportService(NewCourseService(store, testCal, nil, zap.NewNop()), testCal, zap.NewNop())

	if _, err := svc.ImportICS(context.Background(), strings.NewReader("not a calendar")); err == nil {
		t.Error("无效内容应返回错误")
	}
	if len(store.Courses()) != 0 {
		t.Error("导入失败不应新增课程")
	}
}
