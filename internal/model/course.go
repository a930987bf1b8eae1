package model

// DefaultCourseColor 未指定颜色时使用的蓝色
const DefaultCourseColor = "#3b82f6"

// Course 用户自定义的周期课程。
// JSON 字段名与本地存储中的 courses 记录保持一致（驼峰）。
type Course struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Weekdays  []int  `json:"weekdays"` // 1=周一 … 7=周日
	StartWeek int    `json:"startWeek"`
	EndWeek   int    `json:"endWeek"`
	Color     string `json:"color"`
	Location  string `json:"location,omitempty"`
}

// HasWeekday 课程是否在该 ISO 星期上课
func (c *Course) HasWeekday(isoWeekday int) bool {
	for _, d := range c.Weekdays {
		if d == isoWeekday {
			return true
		}
	}
	return false
}

// CoversWeek 周次是否落在 [StartWeek, EndWeek]
func (c *Course) CoversWeek(week int) bool {
	return week >= c.StartWeek && week <= c.EndWeek
}

// CourseDraft 新增课程的输入，ID 由服务端分配
type CourseDraft struct {
	Name      string `validate:"required,max=100"`
	Weekdays  []int  `validate:"required,min=1,dive,min=1,max=7"`
	StartWeek int    `validate:"min=1"`
	EndWeek   int    `validate:"min=1,gtefield=StartWeek"`
	Color     string `validate:"omitempty,hexcolor"`
	Location  string `validate:"max=100"`
}

// PaletteColor 课程可选颜色
type PaletteColor struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
	Bg   string `json:"bg"`
	Text string `json:"text"`
}

// CoursePalette 固定调色板，Hex 为课程保存的颜色值
var CoursePalette = []PaletteColor{
	{Name: "蓝色", Hex: "#3b82f6", Bg: "#dbeafe", Text: "#1d4ed8"},
	{Name: "绿色", Hex: "#10b981", Bg: "#d1fae5", Text: "#047857"},
	{Name: "琥珀", Hex: "#f59e0b", Bg: "#fef3c7", Text: "#b45309"},
	{Name: "玫瑰", Hex: "#f43f5e", Bg: "#ffe4e6", Text: "#be123c"},
	{Name: "紫色", Hex: "#8b5cf6", Bg: "#ede9fe", Text: "#6d28d9"},
	{Name: "橙色", Hex: "#f97316", Bg: "#ffedd5", Text: "#c2410c"},
	{Name: "青色", Hex: "#06b6d4", Bg: "#cffafe", Text: "#0e7490"},
	{Name: "靛蓝", Hex: "#6366f1", Bg: "#e0e7ff", Text: "#4338ca"},
}

// LookupPalette 按 Hex 查找调色板颜色
func LookupPalette(hex string) (PaletteColor, bool) {
	for _, c := range CoursePalette {
		if c.Hex == hex {
			return c, true
		}
	}
	return PaletteColor{}, false
}
