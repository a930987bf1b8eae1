package dto

import "bnu-planner/internal/model"

// ── 日历视图 DTO ──

// DayBundle 单日的完整展示数据
type DayBundle struct {
	DateKey   string                `json:"date_key"`
	Day       int                   `json:"day"`
	Weekday   int                   `json:"weekday"`  // ISO：1=周一 … 7=周日
	WeekNum   *int                  `json:"week_num"` // 早于学期第 1 周时为 null
	IsToday   bool                  `json:"is_today"`
	IsWeekend bool                  `json:"is_weekend"`
	Events    []model.AcademicEvent `json:"events"`
	Courses   []CourseResponse      `json:"courses"`
	Note      string                `json:"note"`
}

// MonthRow 月历中的一行，Days 固定 7 项，nil 为占位空格
type MonthRow struct {
	Week *int         `json:"week"`
	Days []*DayBundle `json:"days"`
}

// MonthView 月视图
type MonthView struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Title string     `json:"title"` // "2026年3月"
	Rows  []MonthRow `json:"rows"`
}

// WeekView 周视图，Days 为周一到周日
type WeekView struct {
	Week int         `json:"week"`
	Days []DayBundle `json:"days"`
}
