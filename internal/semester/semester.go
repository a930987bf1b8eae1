// Package semester 加载学期定义（锚点、总周数、可浏览月份与固定校历事项）。
package semester

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"bnu-planner/internal/calendar"
	"bnu-planner/internal/model"
)

//go:embed bnu_2026_spring.yaml
var defaultDefinition []byte

// ── 学期定义错误 ──

var (
	ErrAnchorInvalid   = errors.New("学期起始日期无效")
	ErrAnchorNotMonday = errors.New("学期起始日期必须是周一")
	ErrMaxWeeksInvalid = errors.New("学期总周数必须大于 0")
	ErrMonthInvalid    = errors.New("可浏览月份格式应为 YYYY-MM")
	ErrEventInvalid    = errors.New("校历事项无效")
)

// Definition 学期定义文件结构
type Definition struct {
	Name     string                `yaml:"name"`
	School   string                `yaml:"school"`
	Anchor   string                `yaml:"anchor"`
	MaxWeeks int                   `yaml:"max_weeks"`
	Months   []string              `yaml:"months"`
	Events   []model.AcademicEvent `yaml:"events"`
}

// Month 可浏览的月份
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Term 校验通过的学期
type Term struct {
	def    Definition
	cal    calendar.Semester
	months []Month
}

// Load 读取学期定义文件；path 为空时使用内置的北师大 2026 春季学期
func Load(path string) (*Term, error) {
	if path == "" {
		return Parse(defaultDefinition)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取学期定义失败: %w", err)
	}
	return Parse(data)
}

// Parse 解析并校验学期定义
func Parse(data []byte) (*Term, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("解析学期定义失败: %w", err)
	}
	return New(def)
}

// New 由定义构造学期
func New(def Definition) (*Term, error) {
	anchor, err := calendar.ParseDateKey(def.Anchor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnchorInvalid, err)
	}
	if anchor.Weekday() != time.Monday {
		return nil, ErrAnchorNotMonday
	}
	if def.MaxWeeks <= 0 {
		return nil, ErrMaxWeeksInvalid
	}

	months := make([]Month, 0, len(def.Months))
	for _, m := range def.Months {
		t, err := time.Parse("2006-01", m)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMonthInvalid, m)
		}
		months = append(months, Month{Year: t.Year(), Month: t.Month()})
	}

	for i, e := range def.Events {
		if _, err := calendar.ParseDateKey(e.Date); err != nil {
			return nil, fmt.Errorf("%w: 第 %d 项日期 %q", ErrEventInvalid, i+1, e.Date)
		}
		if e.Title == "" {
			return nil, fmt.Errorf("%w: 第 %d 项缺少标题", ErrEventInvalid, i+1)
		}
		if !e.Category.Valid() {
			return nil, fmt.Errorf("%w: 第 %d 项类别 %q", ErrEventInvalid, i+1, e.Category)
		}
	}

	return &Term{
		def:    def,
		cal:    calendar.NewSemester(anchor, def.MaxWeeks),
		months: months,
	}, nil
}

// Name 学期名称
func (t *Term) Name() string { return t.def.Name }

// School 学校名称
func (t *Term) School() string { return t.def.School }

// Calendar 周次模型
func (t *Term) Calendar() calendar.Semester { return t.cal }

// Months 可浏览月份
func (t *Term) Months() []Month {
	out := make([]Month, len(t.months))
	copy(out, t.months)
	return out
}

// HasMonth 是否可浏览
func (t *Term) HasMonth(year int, month time.Month) bool {
	for _, m := range t.months {
		if m.Year == year && m.Month == month {
			return true
		}
	}
	return false
}

// Events 固定校历事项的副本
func (t *Term) Events() []model.AcademicEvent {
	out := make([]model.AcademicEvent, len(t.def.Events))
	copy(out, t.def.Events)
	return out
}
