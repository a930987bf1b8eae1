package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"bnu-planner/internal/calendar"
	"bnu-planner/internal/model"
)

// ── ICS 解析器 ──────────────────────────────────────────────
//
// 将 iCalendar (RFC 5545) 课表解析为课程草稿：
//   - DTSTART 与 RRULE/EXDATE 展开出全部上课日期（rrule-go）
//   - 只保留落在学期 1..MaxWeeks 周内的日期
//   - 同名事件合并：上课日取并集，周次取最小起始周到最大结束周
//   - 颜色按出现顺序轮换调色板
// ─────────────────────────────────────────────────────────────

const icsMaxFileSize = 5 * 1024 * 1024 // 5MB

// parsedCourseEvent 解析中间结构
type parsedCourseEvent struct {
	Name     string
	Location string
	Weekdays map[int]bool
	MinWeek  int
	MaxWeek  int
}

// ParseICS 解析 ICS 内容为课程草稿，顺序为课程名首次出现的顺序
func ParseICS(reader io.Reader, sem calendar.Semester) ([]model.CourseDraft, error) {
	cal, err := ics.ParseCalendar(io.LimitReader(reader, icsMaxFileSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrICSParseFailed, err)
	}

	merged := make(map[string]*parsedCourseEvent)
	var order []string

	for _, evt := range cal.Events() {
		name, location, dates, ok := parseVEvent(evt, sem)
		if !ok {
			continue
		}
		pe, exists := merged[name]
		if !exists {
			pe = &parsedCourseEvent{Name: name, Weekdays: make(map[int]bool)}
			merged[name] = pe
			order = append(order, name)
		}
		if pe.Location == "" {
			pe.Location = location
		}
		for _, d := range dates {
			week, _ := sem.WeekNumber(d)
			pe.Weekdays[int(calendar.ISOWeekdayOf(d))] = true
			if pe.MinWeek == 0 || week < pe.MinWeek {
				pe.MinWeek = week
			}
			if week > pe.MaxWeek {
				pe.MaxWeek = week
			}
		}
	}

	drafts := make([]model.CourseDraft, 0, len(order))
	for i, name := range order {
		pe := merged[name]
		weekdays := make([]int, 0, len(pe.Weekdays))
		for d := 1; d <= 7; d++ {
			if pe.Weekdays[d] {
				weekdays = append(weekdays, d)
			}
		}
		drafts = append(drafts, model.CourseDraft{
			Name:      pe.Name,
			Weekdays:  weekdays,
			StartWeek: pe.MinWeek,
			EndWeek:   pe.MaxWeek,
			Color:     model.CoursePalette[i%len(model.CoursePalette)].Hex,
			Location:  pe.Location,
		})
	}
	return drafts, nil
}

// parseVEvent 解析单个 VEVENT，返回学期内的全部上课日期
func parseVEvent(evt *ics.VEvent, sem calendar.Semester) (name, location string, dates []time.Time, ok bool) {
	summary := evt.GetProperty(ics.ComponentPropertySummary)
	if summary == nil || strings.TrimSpace(summary.Value) == "" {
		return "", "", nil, false
	}
	name = strings.TrimSpace(summary.Value)
	if loc := evt.GetProperty(ics.ComponentPropertyLocation); loc != nil {
		location = strings.TrimSpace(loc.Value)
	}

	dtStart, err := parseICSDateTime(evt, ics.ComponentPropertyDtStart)
	if err != nil {
		return "", "", nil, false
	}

	for _, d := range expandOccurrences(evt, dtStart, sem) {
		week, hasWeek := sem.WeekNumber(d)
		if hasWeek && sem.InRange(week) {
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		return "", "", nil, false
	}
	return name, location, dates, true
}

// expandOccurrences 按 RRULE 展开；无 RRULE 或规则无法解析时视为单次事件
func expandOccurrences(evt *ics.VEvent, dtStart time.Time, sem calendar.Semester) []time.Time {
	rruleProp := evt.GetProperty(ics.ComponentPropertyRrule)
	if rruleProp == nil {
		return []time.Time{dtStart}
	}

	// 部分生成器会按 TEXT 规则转义分隔符
	value := strings.NewReplacer(`\;`, ";", `\,`, ",").Replace(rruleProp.Value)
	r, err := rrule.StrToRRule(value)
	if err != nil {
		return []time.Time{dtStart}
	}
	r.DTStart(dtStart)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range parseExDates(evt) {
		set.ExDate(ex)
	}

	// 学期最后一天的 24 点为上界，避免无 UNTIL/COUNT 的规则无限展开
	end := sem.LastDay().AddDate(0, 0, 1)
	return set.Between(sem.Anchor(), end, true)
}

// parseExDates 解析事件中所有 EXDATE（可能以逗号分隔多个值）
func parseExDates(evt *ics.VEvent) []time.Time {
	var out []time.Time
	for _, prop := range evt.Properties {
		if prop.IANAToken != string(ics.ComponentPropertyExdate) {
			continue
		}
		for _, v := range strings.Split(prop.Value, ",") {
			if t, err := parseICSTime(strings.TrimSpace(v), tzidOf(prop.ICalParameters)); err == nil {
				out = append(out, t)
			}
		}
	}
	return out
}

// parseICSDateTime 从 VEVENT 中解析日期时间属性，统一转为本地时区
func parseICSDateTime(evt *ics.VEvent, propName ics.ComponentProperty) (time.Time, error) {
	prop := evt.GetProperty(propName)
	if prop == nil {
		return time.Time{}, fmt.Errorf("missing property %s", propName)
	}
	return parseICSTime(prop.Value, tzidOf(prop.ICalParameters))
}

func parseICSTime(val, tzid string) (time.Time, error) {
	formats := []string{
		"20060102T150405Z",
		"20060102T150405",
		"20060102",
	}
	for _, layout := range formats {
		t, err := time.Parse(layout, val)
		if err != nil {
			continue
		}
		if strings.HasSuffix(layout, "Z") {
			return t.In(time.Local), nil
		}
		if tzid != "" {
			if tzLoc, err := time.LoadLocation(tzid); err == nil {
				return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, tzLoc).In(time.Local), nil
			}
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local), nil
	}
	return time.Time{}, fmt.Errorf("无法解析日期: %s", val)
}

func tzidOf(params map[string][]string) string {
	for k, v := range params {
		if strings.ToUpper(k) == "TZID" && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
