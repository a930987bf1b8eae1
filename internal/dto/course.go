package dto

import "bnu-planner/internal/model"

// ── 课程模块 DTO ──

// CreateCourseRequest 新增课程请求；字段规则由 CourseService 统一校验
type CreateCourseRequest struct {
	Name      string `json:"name"`
	Weekdays  []int  `json:"weekdays"` // 1=周一 … 7=周日
	StartWeek int    `json:"start_week"`
	EndWeek   int    `json:"end_week"`
	Color     string `json:"color"`
	Location  string `json:"location"`
}

// ToDraft 转为课程草稿
func (r *CreateCourseRequest) ToDraft() model.CourseDraft {
	return model.CourseDraft{
		Name:      r.Name,
		Weekdays:  r.Weekdays,
		StartWeek: r.StartWeek,
		EndWeek:   r.EndWeek,
		Color:     r.Color,
		Location:  r.Location,
	}
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Weekdays  []int  `json:"weekdays"`
	StartWeek int    `json:"start_week"`
	EndWeek   int    `json:"end_week"`
	Color     string `json:"color"`
	Bg        string `json:"bg"`   // 调色板背景色
	Text      string `json:"text"` // 调色板文字色
	Location  string `json:"location,omitempty"`
}

// NewCourseResponse 由课程模型构造响应，颜色不在调色板内时退回默认色
func NewCourseResponse(c model.Course) CourseResponse {
	p, ok := model.LookupPalette(c.Color)
	if !ok {
		p, _ = model.LookupPalette(model.DefaultCourseColor)
	}
	weekdays := make([]int, len(c.Weekdays))
	copy(weekdays, c.Weekdays)
	return CourseResponse{
		ID:        c.ID,
		Name:      c.Name,
		Weekdays:  weekdays,
		StartWeek: c.StartWeek,
		EndWeek:   c.EndWeek,
		Color:     c.Color,
		Bg:        p.Bg,
		Text:      p.Text,
		Location:  c.Location,
	}
}

// NewCourseResponses 批量转换，保持顺序
func NewCourseResponses(courses []model.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}

// ImportSkipped 导入时被跳过的课程
type ImportSkipped struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ImportCoursesResponse ICS 导入结果
type ImportCoursesResponse struct {
	Imported []CourseResponse `json:"imported"`
	Skipped  []ImportSkipped  `json:"skipped"`
}
