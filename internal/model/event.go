package model

// EventCategory 校历事项类别
type EventCategory string

const (
	EventHoliday      EventCategory = "holiday"
	EventExam         EventCategory = "exam"
	EventGeneral      EventCategory = "event"
	EventRegistration EventCategory = "registration"
)

// Valid 是否为已知类别
func (c EventCategory) Valid() bool {
	switch c {
	case EventHoliday, EventExam, EventGeneral, EventRegistration:
		return true
	}
	return false
}

// AcademicEvent 校历固定事项，由学期定义静态给出，运行期不可变
type AcademicEvent struct {
	Date     string        `json:"date"     yaml:"date"` // YYYY-MM-DD
	Title    string        `json:"title"    yaml:"title"`
	Category EventCategory `json:"category" yaml:"category"`
}
