package calendar

import "time"

// Semester 学期周次模型：以第 1 周第 1 天为锚点，所有周次都相对锚点计算
type Semester struct {
	anchor   time.Time
	maxWeeks int
}

// NewSemester 创建学期模型，锚点截断到当天零点
func NewSemester(anchor time.Time, maxWeeks int) Semester {
	return Semester{anchor: startOfDay(anchor), maxWeeks: maxWeeks}
}

// Anchor 第 1 周第 1 天
func (s Semester) Anchor() time.Time { return s.anchor }

// MaxWeeks 学期总周数
func (s Semester) MaxWeeks() int { return s.maxWeeks }

// WeekNumber 计算日期所在的学期周次（从 1 开始）。
// 日期早于锚点时返回 ok=false，调用方必须分支处理，这不是错误。
func (s Semester) WeekNumber(t time.Time) (week int, ok bool) {
	days := daysBetween(s.anchor, t)
	if days < 0 {
		return 0, false
	}
	return days/7 + 1, true
}

// DatesInWeek 返回第 week 周周一到周日的 7 个日期。
// 不校验 week 是否超出 MaxWeeks，由调用方负责。
func (s Semester) DatesInWeek(week int) [7]time.Time {
	var dates [7]time.Time
	start := s.anchor.AddDate(0, 0, (week-1)*7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// InRange 周次是否在 1..MaxWeeks 内
func (s Semester) InRange(week int) bool {
	return week >= 1 && week <= s.maxWeeks
}

// LastDay 学期最后一天（第 MaxWeeks 周周日）
func (s Semester) LastDay() time.Time {
	return s.anchor.AddDate(0, 0, s.maxWeeks*7-1)
}
