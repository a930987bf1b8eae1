package model

import "time"

// 本地存储中的两条独立记录
const (
	RecordNotes   = "notes"
	RecordCourses = "courses"
)

// Notes 日期键 → 备注内容
type Notes map[string]string

// PlannerRecord 键值记录表 — 对应 planner_records（postgres 存储后端）
type PlannerRecord struct {
	Key       string    `gorm:"type:varchar(64);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null"          json:"value"`
	UpdatedAt time.Time `gorm:"not null"                    json:"updated_at"`
}

// TableName 指定表名
func (PlannerRecord) TableName() string { return "planner_records" }
