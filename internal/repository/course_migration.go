package repository

import "bnu-planner/internal/model"

// ── 课程记录版本迁移 ──
//
// v1：单个上课日 weekday: int
// v2：多个上课日 weekdays: []int（当前版本）
//
// 版本按字段是否存在判定，只在加载时迁移一次；迁移后的列表会立即写回存储，
// 之后的加载读到的已是 v2。

const (
	courseSchemaV1 = 1
	courseSchemaV2 = 2
)

// storedCourse 存储中的课程记录，兼容 v1 与 v2 字段
type storedCourse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Weekday   *int   `json:"weekday,omitempty"`
	Weekdays  []int  `json:"weekdays"`
	StartWeek int    `json:"startWeek"`
	EndWeek   int    `json:"endWeek"`
	Color     string `json:"color"`
	Location  string `json:"location,omitempty"`
}

func (s storedCourse) schemaVersion() int {
	if s.Weekday != nil {
		return courseSchemaV1
	}
	return courseSchemaV2
}

// migrateCourses 将存储记录升级为当前模型；changed 表示需要写回
func migrateCourses(stored []storedCourse) (courses []model.Course, changed bool) {
	courses = make([]model.Course, 0, len(stored))
	for _, s := range stored {
		c := model.Course{
			ID:        s.ID,
			Name:      s.Name,
			Weekdays:  s.Weekdays,
			StartWeek: s.StartWeek,
			EndWeek:   s.EndWeek,
			Color:     s.Color,
			Location:  s.Location,
		}
		if s.schemaVersion() == courseSchemaV1 {
			c.Weekdays = []int{*s.Weekday}
			changed = true
		}
		if c.Weekdays == nil {
			c.Weekdays = []int{}
		}
		if c.Color == "" {
			c.Color = model.DefaultCourseColor
			changed = true
		}
		courses = append(courses, c)
	}
	return courses, changed
}
