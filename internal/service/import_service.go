package service

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"bnu-planner/internal/calendar"
	"bnu-planner/internal/dto"
	pkgerrors "bnu-planner/pkg/errors"
)

// ── 导入模块业务错误 ──

var (
	ErrICSParseFailed = errors.New("ICS 格式解析失败")
	ErrICSEmpty       = errors.New("ICS 中没有学期内的课程")
)

// ImportService 课表导入业务接口
type ImportService interface {
	// ImportICS 解析 ICS 并逐条新增课程；单条校验失败记入 Skipped，不影响其他课程
	ImportICS(ctx context.Context, reader io.Reader) (*dto.ImportCoursesResponse, error)
}

type importService struct {
	courses CourseService
	cal     calendar.Semester
	logger  *zap.Logger
}

// NewImportService 创建 ImportService 实例
func NewImportService(courses CourseService, cal calendar.Semester, logger *zap.Logger) ImportService {
	return &importService{courses: courses, cal: cal, logger: logger}
}

func (s *importService) ImportICS(ctx context.Context, reader io.Reader) (*dto.ImportCoursesResponse, error) {
	drafts, err := ParseICS(reader, s.cal)
	if err != nil {
		s.logger.Warn("ICS 解析失败", zap.Error(err))
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, ErrICSEmpty
	}

	result := &dto.ImportCoursesResponse{
		Imported: make([]dto.CourseResponse, 0, len(drafts)),
		Skipped:  make([]dto.ImportSkipped, 0),
	}
	for _, draft := range drafts {
		course, err := s.courses.Add(ctx, draft)
		if err != nil {
			var verr *pkgerrors.ValidationError
			if errors.As(err, &verr) {
				result.Skipped = append(result.Skipped, dto.ImportSkipped{Name: draft.Name, Reason: verr.Message})
				continue
			}
			return nil, err
		}
		result.Imported = append(result.Imported, dto.NewCourseResponse(*course))
	}

	s.logger.Info("ICS 导入完成",
		zap.Int("imported", len(result.Imported)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}
