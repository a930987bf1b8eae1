package dto

// ── 学期模块 DTO ──

// MonthRef 可浏览月份
type MonthRef struct {
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Label string `json:"label"` // "2026年3月"
}

// SemesterResponse 学期信息响应
type SemesterResponse struct {
	Name     string     `json:"name"`
	School   string     `json:"school"`
	Anchor   string     `json:"anchor"`   // 第 1 周周一
	LastDay  string     `json:"last_day"` // 第 MaxWeeks 周周日
	MaxWeeks int        `json:"max_weeks"`
	Months   []MonthRef `json:"months"`
}
