package service

import (
	"context"
	"errors"

	"bnu-planner/internal/model"
	"bnu-planner/internal/semester"
)

// ── 校历事项业务错误 ──

var ErrUnknownCategory = errors.New("未知的事项类别")

// EventService 固定校历事项查询
type EventService interface {
	// List 按类别筛选；category 为空返回全部
	List(ctx context.Context, category model.EventCategory) ([]model.AcademicEvent, error)
	// On 某一日的事项
	On(dateKey string) []model.AcademicEvent
}

type eventService struct {
	events []model.AcademicEvent
}

// NewEventService 创建 EventService 实例；事项在学期加载时确定，运行期不变
func NewEventService(term *semester.Term) EventService {
	return &eventService{events: term.Events()}
}

func (s *eventService) List(_ context.Context, category model.EventCategory) ([]model.AcademicEvent, error) {
	if category == "" {
		out := make([]model.AcademicEvent, len(s.events))
		copy(out, s.events)
		return out, nil
	}
	if !category.Valid() {
		return nil, ErrUnknownCategory
	}
	out := make([]model.AcademicEvent, 0)
	for _, e := range s.events {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *eventService) On(dateKey string) []model.AcademicEvent {
	return EventsOn(dateKey, s.events)
}
