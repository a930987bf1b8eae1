// Package calendar 提供校历使用的纯日期运算：日期键、月份信息、学期周次换算。
//
// 所有函数均基于日期自身的日历字段（年/月/日）计算，不做 UTC 换算，
// 避免在非 UTC 时区的午夜附近把日期键算到前一天或后一天。
package calendar

import (
	"fmt"
	"time"
)

// DateKeyLayout 日期键格式 YYYY-MM-DD
const DateKeyLayout = "2006-01-02"

// Date 返回本地时区下指定日期的零点
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// DaysInMonth 返回某月天数。
// 利用"下个月第 0 天即本月最后一天"的归一化规则，闰年由 time 包自行处理。
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayOfMonth 返回某月 1 日的星期（time.Sunday=0 的原生编号）
func FirstWeekdayOfMonth(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// DateKey 由年月日生成零填充的日期键，不做日期归一化
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// DateKeyOf 由 time.Time 的本地日历字段生成日期键
func DateKeyOf(t time.Time) string {
	return DateKey(t.Year(), t.Month(), t.Day())
}

// ParseDateKey 严格解析 YYYY-MM-DD，返回本地时区零点
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("无效的日期键 %q: %w", key, err)
	}
	return t, nil
}

// IsWeekend 判断是否周六或周日
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// daysBetween 返回 from 到 to 相隔的整日数（按日历日期计算，忽略时分秒与夏令时）
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// startOfDay 截断到日期零点，保留原时区
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
