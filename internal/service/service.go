package service

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"bnu-planner/config"
	"bnu-planner/internal/semester"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Store   *PlannerStore
	Course  CourseService
	Note    NoteService
	Event   EventService
	Day     DayService
	Import  ImportService
	Export  ExportService
	Backup  BackupService
	Metrics *MetricsService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	term *semester.Term,
	store *PlannerStore,
	raster Rasterizer,
	logger *zap.Logger,
) *Service {
	metrics := NewMetricsService(store)
	course := NewCourseService(store, term.Calendar(), validator.New(), logger)

	return &Service{
		Store:  store,
		Course: course,
		Note:   NewNoteService(store, logger),
		Event:  NewEventService(term),
		Day:    NewDayService(term, store, nil),
		Import: NewImportService(course, term.Calendar(), logger),
		Export: NewExportService(term, store, raster, ExportOptions{
			BaseURL: cfg.Server.BaseURL,
			Timeout: cfg.Export.Timeout,
		}, metrics, logger),
		Backup:  NewBackupService(store, cfg.Backup.Dir, term.Name(), metrics, logger),
		Metrics: metrics,
	}
}
