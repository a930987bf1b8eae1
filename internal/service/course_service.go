package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bnu-planner/internal/calendar"
	"bnu-planner/internal/model"
	pkgerrors "bnu-planner/pkg/errors"
)

// CourseService 课程业务接口
//
// 课程只能新增与删除，不支持原地修改；列表顺序即添加顺序。
type CourseService interface {
	List(ctx context.Context) []model.Course
	// Add 校验草稿，分配新 ID 后追加并持久化；校验失败返回 *errors.ValidationError
	Add(ctx context.Context, draft model.CourseDraft) (*model.Course, error)
	// Delete 按 ID 删除；ID 不存在时什么都不做
	Delete(ctx context.Context, id string) error
	Palette() []model.PaletteColor
}

type courseService struct {
	store    *PlannerStore
	cal      calendar.Semester
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(store *PlannerStore, cal calendar.Semester, validate *validator.Validate, logger *zap.Logger) CourseService {
	if validate == nil {
		validate = validator.New()
	}
	return &courseService{store: store, cal: cal, validate: validate, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(_ context.Context) []model.Course {
	return s.store.Courses()
}

// ────────────────────── Add ──────────────────────

func (s *courseService) Add(ctx context.Context, draft model.CourseDraft) (*model.Course, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Location = strings.TrimSpace(draft.Location)
	draft.Color = strings.ToLower(strings.TrimSpace(draft.Color))
	draft.Weekdays = normalizeWeekdays(draft.Weekdays)

	if err := s.validate.Struct(draft); err != nil {
		return nil, toValidationError(err)
	}
	if draft.EndWeek > s.cal.MaxWeeks() {
		return nil, pkgerrors.NewValidation("end_week", fmt.Sprintf("结束周不能超过第 %d 周", s.cal.MaxWeeks()))
	}

	color := draft.Color
	if color == "" {
		color = model.DefaultCourseColor
	}
	if _, ok := model.LookupPalette(color); !ok {
		return nil, pkgerrors.NewValidation("color", "颜色必须取自调色板")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成课程 ID 失败: %w", err)
	}

	course := model.Course{
		ID:        id.String(),
		Name:      draft.Name,
		Weekdays:  draft.Weekdays,
		StartWeek: draft.StartWeek,
		EndWeek:   draft.EndWeek,
		Color:     color,
		Location:  draft.Location,
	}
	if err := s.store.AppendCourse(ctx, course); err != nil {
		s.logger.Error("保存课程失败", zap.String("name", course.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("新增课程",
		zap.String("id", course.ID),
		zap.String("name", course.Name),
		zap.Ints("weekdays", course.Weekdays),
	)
	return &course, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, id string) error {
	removed, err := s.store.RemoveCourse(ctx, id)
	if err != nil {
		s.logger.Error("删除课程失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if removed {
		s.logger.Info("删除课程", zap.String("id", id))
	}
	return nil
}

// ────────────────────── Palette ──────────────────────

func (s *courseService) Palette() []model.PaletteColor {
	out := make([]model.PaletteColor, len(model.CoursePalette))
	copy(out, model.CoursePalette)
	return out
}

// ── 辅助函数 ──

// normalizeWeekdays 去重并升序；越界值保留给校验器报告
func normalizeWeekdays(in []int) []int {
	if in == nil {
		return nil
	}
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, d := range in {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}

// toValidationError 将校验器的第一条错误转为面向用户的提示
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return pkgerrors.NewValidation("", "课程信息无效")
	}
	fe := verrs[0]
	field := fe.Field()
	switch {
	case field == "Name" && fe.Tag() == "max":
		return pkgerrors.NewValidation("name", "课程名称不能超过 100 个字符")
	case field == "Name":
		return pkgerrors.NewValidation("name", "课程名称不能为空")
	case field == "Weekdays":
		return pkgerrors.NewValidation("weekdays", "请至少选择一个上课日")
	case strings.HasPrefix(field, "Weekdays["):
		return pkgerrors.NewValidation("weekdays", "上课日必须在周一到周日之间")
	case field == "StartWeek":
		return pkgerrors.NewValidation("start_week", "起始周必须大于等于 1")
	case field == "EndWeek" && fe.Tag() == "gtefield":
		return pkgerrors.NewValidation("end_week", "结束周不能早于起始周")
	case field == "EndWeek":
		return pkgerrors.NewValidation("end_week", "结束周必须大于等于 1")
	case field == "Color":
		return pkgerrors.NewValidation("color", "颜色格式无效")
	case field == "Location":
		return pkgerrors.NewValidation("location", "上课地点不能超过 100 个字符")
	}
	return pkgerrors.NewValidation(strings.ToLower(field), "课程信息无效")
}
