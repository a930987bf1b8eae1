package calendar

import "time"

// ISOWeekday 课程使用的星期编号：1=周一 … 7=周日
type ISOWeekday int

const (
	Monday ISOWeekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayLabels = [...]string{"一", "二", "三", "四", "五", "六", "日"}

// ToISOWeekday 原生星期（0=周日）→ ISO 星期（7=周日）。
// 两套编号之间只在这里和 Weekday() 中转换。
func ToISOWeekday(wd time.Weekday) ISOWeekday {
	if wd == time.Sunday {
		return Sunday
	}
	return ISOWeekday(wd)
}

// ISOWeekdayOf 返回日期的 ISO 星期
func ISOWeekdayOf(t time.Time) ISOWeekday {
	return ToISOWeekday(t.Weekday())
}

// Weekday ISO 星期 → 原生星期
func (d ISOWeekday) Weekday() time.Weekday {
	if d == Sunday {
		return time.Sunday
	}
	return time.Weekday(d)
}

// Valid 是否落在 1..7
func (d ISOWeekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// Label 中文短名，如 "一"；非法值返回空串
func (d ISOWeekday) Label() string {
	if !d.Valid() {
		return ""
	}
	return weekdayLabels[d-1]
}
