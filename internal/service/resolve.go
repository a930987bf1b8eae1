package service

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"

	"bnu-planner/internal/calendar"
	"bnu-planner/internal/model"
)

// ── 纯函数：课程与校历事项的按日筛选 ──

// CoursesActiveOn 返回在该周次、该 ISO 星期上课的课程，保持添加顺序。
// hasWeek=false（日期早于第 1 周）时没有任何课程。
func CoursesActiveOn(week int, hasWeek bool, weekday calendar.ISOWeekday, courses []model.Course) []model.Course {
	out := make([]model.Course, 0)
	if !hasWeek {
		return out
	}
	for _, c := range courses {
		if c.HasWeekday(int(weekday)) && c.CoversWeek(week) {
			out = append(out, c)
		}
	}
	return out
}

// EventsOn 返回日期键完全相同的校历事项，保持原顺序，不修改输入
func EventsOn(dateKey string, events []model.AcademicEvent) []model.AcademicEvent {
	out := make([]model.AcademicEvent, 0)
	for _, e := range events {
		if e.Date == dateKey {
			out = append(out, e)
		}
	}
	return out
}

var errNoValidWeekday = errors.New("课程没有有效的上课日")

// rruleWeekdays 下标 d-1 对应 ISO 星期 d
var rruleWeekdays = [...]rrule.Weekday{
	rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU,
}

// courseRule 课程的每周重复规则：从起始周周一到结束周周日，按上课日重复
func courseRule(c model.Course, sem calendar.Semester) (*rrule.RRule, error) {
	byDay := make([]rrule.Weekday, 0, len(c.Weekdays))
	for _, d := range c.Weekdays {
		if !calendar.ISOWeekday(d).Valid() {
			continue
		}
		byDay = append(byDay, rruleWeekdays[d-1])
	}
	if len(byDay) == 0 {
		return nil, errNoValidWeekday
	}
	return rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   sem.DatesInWeek(c.StartWeek)[0],
		Until:     sem.DatesInWeek(c.EndWeek)[6],
		Byweekday: byDay,
		Wkst:      rrule.MO,
	})
}

// CourseOccurrences 展开课程在学期内的全部上课日期（升序）
func CourseOccurrences(c model.Course, sem calendar.Semester) []time.Time {
	if len(c.Weekdays) == 0 || c.StartWeek < 1 || c.EndWeek < c.StartWeek {
		return nil
	}
	r, err := courseRule(c, sem)
	if err != nil {
		return nil
	}
	return r.All()
}
