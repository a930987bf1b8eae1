package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bnu-planner/internal/calendar"
	"bnu-planner/internal/dto"
	"bnu-planner/internal/model"
	"bnu-planner/internal/semester"
)

// ── 日历视图业务错误 ──

var (
	ErrWeekOutOfRange  = errors.New("周次超出学期范围")
	ErrMonthOutOfRange = errors.New("月份不在学期可浏览范围内")
)

// Clock 当前时间来源，测试中注入固定时间
type Clock func() time.Time

// DayService 将日期解析为展示所需的完整数据：周次、事项、课程、备注
type DayService interface {
	Semester() dto.SemesterResponse
	ResolveDay(ctx context.Context, date time.Time) dto.DayBundle
	ResolveMonth(ctx context.Context, year int, month time.Month) (*dto.MonthView, error)
	ResolveWeek(ctx context.Context, week int) (*dto.WeekView, error)
}

type dayService struct {
	term  *semester.Term
	store *PlannerStore
	clock Clock
}

// NewDayService 创建 DayService 实例；clock 为空时使用 time.Now
func NewDayService(term *semester.Term, store *PlannerStore, clock Clock) DayService {
	if clock == nil {
		clock = time.Now
	}
	return &dayService{term: term, store: store, clock: clock}
}

// ────────────────────── Semester ──────────────────────

func (s *dayService) Semester() dto.SemesterResponse {
	cal := s.term.Calendar()
	months := make([]dto.MonthRef, 0, len(s.term.Months()))
	for _, m := range s.term.Months() {
		months = append(months, dto.MonthRef{
			Year:  m.Year,
			Month: int(m.Month),
			Label: monthTitle(m.Year, m.Month),
		})
	}
	return dto.SemesterResponse{
		Name:     s.term.Name(),
		School:   s.term.School(),
		Anchor:   calendar.DateKeyOf(cal.Anchor()),
		LastDay:  calendar.DateKeyOf(cal.LastDay()),
		MaxWeeks: cal.MaxWeeks(),
		Months:   months,
	}
}

// ────────────────────── ResolveDay ──────────────────────

func (s *dayService) ResolveDay(_ context.Context, date time.Time) dto.DayBundle {
	r := s.newResolver()
	return r.resolve(date)
}

// ────────────────────── ResolveMonth ──────────────────────

func (s *dayService) ResolveMonth(_ context.Context, year int, month time.Month) (*dto.MonthView, error) {
	if month < time.January || month > time.December || !s.term.HasMonth(year, month) {
		return nil, ErrMonthOutOfRange
	}

	r := s.newResolver()
	grid := calendar.MonthGrid(year, month, s.term.Calendar())
	view := &dto.MonthView{
		Year:  year,
		Month: int(month),
		Title: monthTitle(year, month),
		Rows:  make([]dto.MonthRow, 0, len(grid)),
	}
	for _, row := range grid {
		mr := dto.MonthRow{Days: make([]*dto.DayBundle, 7)}
		if row.HasWeek {
			w := row.Week
			mr.Week = &w
		}
		for i, cell := range row.Cells {
			if cell.Blank() {
				continue
			}
			b := r.resolve(cell.Date)
			mr.Days[i] = &b
		}
		view.Rows = append(view.Rows, mr)
	}
	return view, nil
}

// ────────────────────── ResolveWeek ──────────────────────

func (s *dayService) ResolveWeek(_ context.Context, week int) (*dto.WeekView, error) {
	cal := s.term.Calendar()
	if !cal.InRange(week) {
		return nil, ErrWeekOutOfRange
	}

	r := s.newResolver()
	dates := cal.DatesInWeek(week)
	view := &dto.WeekView{Week: week, Days: make([]dto.DayBundle, 0, len(dates))}
	// 下标 i 对应 ISO 星期 i+1
	for _, d := range dates {
		view.Days = append(view.Days, r.resolve(d))
	}
	return view, nil
}

// ── 单日解析 ──

// dayResolver 持有同一时刻的状态快照，保证一次视图内的数据一致
type dayResolver struct {
	cal      calendar.Semester
	events   []model.AcademicEvent
	courses  []model.Course
	notes    model.Notes
	todayKey string
}

func (s *dayService) newResolver() *dayResolver {
	snap := s.store.Snapshot()
	return &dayResolver{
		cal:      s.term.Calendar(),
		events:   s.term.Events(),
		courses:  snap.Courses,
		notes:    snap.Notes,
		todayKey: calendar.DateKeyOf(s.clock()),
	}
}

func (r *dayResolver) resolve(date time.Time) dto.DayBundle {
	key := calendar.DateKeyOf(date)
	week, hasWeek := r.cal.WeekNumber(date)
	weekday := calendar.ISOWeekdayOf(date)

	b := dto.DayBundle{
		DateKey:   key,
		Day:       date.Day(),
		Weekday:   int(weekday),
		IsToday:   key == r.todayKey,
		IsWeekend: calendar.IsWeekend(date),
		Events:    EventsOn(key, r.events),
		Courses:   dto.NewCourseResponses(CoursesActiveOn(week, hasWeek, weekday, r.courses)),
		Note:      r.notes[key],
	}
	if hasWeek {
		b.WeekNum = &week
	}
	return b
}

func monthTitle(year int, month time.Month) string {
	return fmt.Sprintf("%d年%d月", year, int(month))
}
